package data

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// providerResponse mirrors the provider's JSON body. Fields stay raw so
// that absent, null, empty and wrongly typed values all go through text.
type providerResponse struct {
	Hostname json.RawMessage `json:"hostname"`
	City     json.RawMessage `json:"city"`
	Region   json.RawMessage `json:"region"`
	Country  json.RawMessage `json:"country"`
	Loc      json.RawMessage `json:"loc"`
	Org      json.RawMessage `json:"org"`
	Postal   json.RawMessage `json:"postal"`
	Timezone json.RawMessage `json:"timezone"`
	ASN      json.RawMessage `json:"asn"`
}

// decodeRecord turns a provider body into a Record for address.
func decodeRecord(address string, body []byte) (Record, error) {
	var resp providerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Record{}, err
	}

	rec := EmptyRecord(address)
	rec.Hostname = text(resp.Hostname)
	rec.City = text(resp.City)
	rec.Region = text(resp.Region)
	rec.Country = text(resp.Country)
	rec.Location = text(resp.Loc)
	rec.Coordinates = ParseCoordinates(rec.Location)
	rec.Organization = text(resp.Org)
	rec.PostalCode = text(resp.Postal)
	rec.Timezone = text(resp.Timezone)

	var asn map[string]json.RawMessage
	if json.Unmarshal(resp.ASN, &asn) == nil {
		rec.ASN = ASN{Number: text(asn["asn"]), Name: text(asn["name"])}
	}

	return rec, nil
}

// text maps one raw JSON value to its display string. Strings and numbers
// are kept; anything absent, null, blank or structured becomes NotAvailable.
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return NotAvailable
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
		return NotAvailable
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return NotAvailable
}

// ParseCoordinates parses a "lat,lng" string. It returns nil unless loc has
// exactly two comma-separated finite numeric parts.
func ParseCoordinates(loc string) *Coordinates {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return nil
	}

	lat, ok := parseFinite(parts[0])
	if !ok {
		return nil
	}
	lng, ok := parseFinite(parts[1])
	if !ok {
		return nil
	}

	return &Coordinates{Latitude: lat, Longitude: lng}
}

// parseFinite rejects NaN and infinities, which JSON cannot encode.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
