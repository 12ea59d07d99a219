package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/TomasB/ipcheck/internal/data"
	"github.com/TomasB/ipcheck/internal/export"
	"github.com/TomasB/ipcheck/internal/history"
	"github.com/fatih/color"
)

var (
	label   = color.New(color.Bold)
	failure = color.New(color.FgRed)
	success = color.New(color.FgGreen)
)

type field struct {
	name  string
	value func(data.Record) string
}

var recordFields = []field{
	{"IP Address", func(r data.Record) string { return r.Address }},
	{"Hostname", func(r data.Record) string { return r.Hostname }},
	{"City", func(r data.Record) string { return r.City }},
	{"Region", func(r data.Record) string { return r.Region }},
	{"Country", func(r data.Record) string { return r.Country }},
	{"Location", func(r data.Record) string { return r.Location }},
	{"Coordinates", coordinates},
	{"Organization", func(r data.Record) string { return r.Organization }},
	{"Postal", func(r data.Record) string { return r.PostalCode }},
	{"Timezone", func(r data.Record) string { return r.Timezone }},
	{"ASN", func(r data.Record) string { return r.ASN.Number + " - " + r.ASN.Name }},
	{"Reverse DNS", func(r data.Record) string { return r.ReverseDNS }},
}

func coordinates(r data.Record) string {
	if r.Coordinates == nil {
		return data.NotAvailable
	}
	return strconv.FormatFloat(r.Coordinates.Latitude, 'f', -1, 64) + ", " +
		strconv.FormatFloat(r.Coordinates.Longitude, 'f', -1, 64)
}

func printRecord(w io.Writer, rec data.Record) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range recordFields {
		fmt.Fprintf(tw, "%s\t%s\n", label.Sprint(f.name+":"), f.value(rec))
	}
	_ = tw.Flush()
}

func printComparison(w io.Writer, a, b data.Record) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range recordFields {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", label.Sprint(f.name+":"), f.value(a), f.value(b))
	}
	_ = tw.Flush()
}

func printHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history available.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s\n", label.Sprint("IP:"), e.Address)
		fmt.Fprintf(w, "%s %s, %s %s\n", label.Sprint("City:"), e.Record.City, label.Sprint("Region:"), e.Record.Region)
		fmt.Fprintln(w, "---")
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, failure.Sprint("error: ")+err.Error())
}

// exportRecord writes rec to <dir>/<ip>_info.csv and returns the path.
func exportRecord(dir string, rec data.Record) (string, error) {
	path := filepath.Join(dir, export.FileName(rec.Address))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, rec); err != nil {
		return "", err
	}
	return path, f.Close()
}
