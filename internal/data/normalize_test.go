package data

import (
	"encoding/json"
	"testing"
)

func TestDecodeRecord_FieldMapping(t *testing.T) {
	tests := []struct {
		name string
		body string
		got  func(Record) string
		want string
	}{
		{name: "postal absent", body: `{}`, got: func(r Record) string { return r.PostalCode }, want: NotAvailable},
		{name: "postal null", body: `{"postal":null}`, got: func(r Record) string { return r.PostalCode }, want: NotAvailable},
		{name: "postal blank", body: `{"postal":"  "}`, got: func(r Record) string { return r.PostalCode }, want: NotAvailable},
		{name: "postal numeric", body: `{"postal":94043}`, got: func(r Record) string { return r.PostalCode }, want: "94043"},
		{name: "city object", body: `{"city":{"name":"x"}}`, got: func(r Record) string { return r.City }, want: NotAvailable},
		{name: "asn as string", body: `{"asn":"AS15169"}`, got: func(r Record) string { return r.ASN.Number }, want: NotAvailable},
		{name: "asn missing name", body: `{"asn":{"asn":"AS15169"}}`, got: func(r Record) string { return r.ASN.Name }, want: NotAvailable},
		{name: "asn number kept", body: `{"asn":{"asn":"AS15169"}}`, got: func(r Record) string { return r.ASN.Number }, want: "AS15169"},
		{name: "asn null", body: `{"asn":null}`, got: func(r Record) string { return r.ASN.Number }, want: NotAvailable},
		{name: "hostname trimmed", body: `{"hostname":" dns.google "}`, got: func(r Record) string { return r.Hostname }, want: "dns.google"},
		{name: "reverse dns untouched", body: `{"reverse_dns":"x"}`, got: func(r Record) string { return r.ReverseDNS }, want: NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := decodeRecord("8.8.8.8", []byte(tt.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := tt.got(rec); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDecodeRecord_NonFiniteLocation(t *testing.T) {
	rec, err := decodeRecord("8.8.8.8", []byte(`{"loc":"NaN,Inf"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Coordinates != nil {
		t.Errorf("expected no coordinates, got %+v", rec.Coordinates)
	}
	if rec.Location != "NaN,Inf" {
		t.Errorf("expected raw loc to be kept, got %s", rec.Location)
	}
	if _, err := json.Marshal(rec); err != nil {
		t.Errorf("expected record to encode as JSON, got %v", err)
	}
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		loc     string
		wantNil bool
		lat     float64
		lng     float64
	}{
		{loc: "-33.8,151.2", lat: -33.8, lng: 151.2},
		{loc: "37.4056, -122.0775", lat: 37.4056, lng: -122.0775},
		{loc: "invalid", wantNil: true},
		{loc: NotAvailable, wantNil: true},
		{loc: "1,2,3", wantNil: true},
		{loc: "1,", wantNil: true},
		{loc: "north,south", wantNil: true},
		{loc: "", wantNil: true},
		{loc: "NaN,0", wantNil: true},
		{loc: "Inf,1", wantNil: true},
		{loc: "1,-Infinity", wantNil: true},
		{loc: "NaN,Inf", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.loc, func(t *testing.T) {
			got := ParseCoordinates(tt.loc)
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil coordinates, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected coordinates, got nil")
			}
			if got.Latitude != tt.lat || got.Longitude != tt.lng {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.lat, tt.lng, got.Latitude, got.Longitude)
			}
		})
	}
}
