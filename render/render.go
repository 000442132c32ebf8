// Package render presents a dtf.DiffCollection to people: one terminal table
// per diff category, or a standalone HTML report. Values are prettified in the
// format of the compared documents, so YAML inputs show YAML values
package render

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/qri-io/dtf"
	"github.com/qri-io/dtf/parse"
)

// Options configure rendering
type Options struct {
	// Color adds ANSI colour to terminal tables
	Color bool
	// PrinterFriendly swaps the HTML report's dark theme for a light one
	// suitable for printing
	PrinterFriendly bool
}

// Tables writes a table for every category present in dc, in the order key,
// type, value, array. Categories that were checked but found nothing are
// noted with a single line
func Tables(w io.Writer, dc *dtf.DiffCollection, wc *dtf.WorkingContext, opts Options) error {
	var sections []string
	if diffs, ok := dc.KeyDiffs(); ok {
		sections = append(sections, orNone(len(diffs), keyTitle, func() string { return KeyTable(diffs, wc, opts) }))
	}
	if diffs, ok := dc.TypeDiffs(); ok {
		sections = append(sections, orNone(len(diffs), typeTitle, func() string { return TypeTable(diffs, wc, opts) }))
	}
	if diffs, ok := dc.ValueDiffs(); ok {
		sections = append(sections, orNone(len(diffs), valueTitle, func() string { return ValueTable(diffs, wc, opts) }))
	}
	if diffs, ok := dc.ArrayDiffs(); ok {
		sections = append(sections, orNone(len(diffs), arrayTitle, func() string { return ArrayTable(diffs, wc, opts) }))
	}

	for _, s := range sections {
		if _, err := io.WriteString(w, s+"\n\n"); err != nil {
			return err
		}
	}
	return nil
}

func orNone(n int, title string, table func() string) string {
	if n == 0 {
		return title + ": none"
	}
	return table()
}

// Prettify formats a canonical value rendering for display. JSON values are
// indented, YAML values are converted to YAML block style. Values that fail
// to convert are returned unchanged
func Prettify(value string, f parse.Format) string {
	if f == parse.FormatYAML {
		out, err := yaml.JSONToYAML([]byte(value))
		if err != nil {
			return value
		}
		return strings.TrimSuffix(string(out), "\n")
	}

	buf := &bytes.Buffer{}
	if err := json.Indent(buf, []byte(value), "", "  "); err != nil {
		return value
	}
	return buf.String()
}

// formatOf picks the display format for a comparison from side A's label.
// both documents are expected to share a format
func formatOf(wc *dtf.WorkingContext) parse.Format {
	if wc == nil {
		return parse.FormatJSON
	}
	return parse.FormatOf(wc.SideA)
}
