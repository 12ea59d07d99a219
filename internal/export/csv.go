// Package export serializes lookup records for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/TomasB/ipcheck/internal/data"
)

// Header lists the CSV column names in output order.
var Header = []string{
	"ip", "hostname", "city", "region", "country", "loc", "latitude", "longitude",
	"org", "postal", "timezone", "asn", "asn_name", "reverse_dns",
}

// WriteCSV writes rec as a header row followed by a single value row.
func WriteCSV(w io.Writer, rec data.Record) error {
	lat, lng := data.NotAvailable, data.NotAvailable
	if rec.Coordinates != nil {
		lat = strconv.FormatFloat(rec.Coordinates.Latitude, 'f', -1, 64)
		lng = strconv.FormatFloat(rec.Coordinates.Longitude, 'f', -1, 64)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.Write([]string{
		rec.Address, rec.Hostname, rec.City, rec.Region, rec.Country, rec.Location, lat, lng,
		rec.Organization, rec.PostalCode, rec.Timezone, rec.ASN.Number, rec.ASN.Name, rec.ReverseDNS,
	}); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// FileName returns the download name used for address.
func FileName(address string) string {
	return address + "_info.csv"
}
