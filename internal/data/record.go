package data

// NotAvailable is substituted for every field the provider omitted or
// that could not be parsed.
const NotAvailable = "N/A"

// Coordinates is a latitude/longitude pair parsed from the provider's loc field.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ASN identifies the autonomous system announcing an address.
type ASN struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// Record is the normalized lookup result for one address.
// Every optional string field holds NotAvailable when unknown, never "".
// Coordinates is nil when the provider sent no usable location.
type Record struct {
	Address      string       `json:"ip"`
	Hostname     string       `json:"hostname"`
	City         string       `json:"city"`
	Region       string       `json:"region"`
	Country      string       `json:"country"`
	Location     string       `json:"loc"`
	Coordinates  *Coordinates `json:"coordinates"`
	Organization string       `json:"org"`
	PostalCode   string       `json:"postal"`
	Timezone     string       `json:"timezone"`
	ASN          ASN          `json:"asn"`
	ReverseDNS   string       `json:"reverse_dns"`
}

// EmptyRecord returns a record for address with every optional field set to NotAvailable.
func EmptyRecord(address string) Record {
	return Record{
		Address:      address,
		Hostname:     NotAvailable,
		City:         NotAvailable,
		Region:       NotAvailable,
		Country:      NotAvailable,
		Location:     NotAvailable,
		Organization: NotAvailable,
		PostalCode:   NotAvailable,
		Timezone:     NotAvailable,
		ASN:          ASN{Number: NotAvailable, Name: NotAvailable},
		ReverseDNS:   NotAvailable,
	}
}
