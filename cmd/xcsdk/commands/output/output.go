// Package output renders command results as text tables or as JSON, YAML or
// TOML documents.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/xcsdk/internal/errors"
)

// Format selects how results are written.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat parses an --output value. The empty string is FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidOutput, "%q (want text, json, yaml or toml)", s)
	}
}

// Write renders doc in format. For FormatText the text callback is used
// instead.
func Write(w io.Writer, format Format, doc any, text func(io.Writer) error) error {
	if format == FormatText {
		return text(w)
	}
	return Encode(w, format, doc)
}

// Encode writes v as a JSON, YAML or TOML document. TOML requires v to
// encode as a table, so pass a struct or map rather than a slice.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encoding JSON")

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return errors.Wrap(enc.Close(), "encoding YAML")

	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return errors.Wrap(enc.Encode(v), "encoding TOML")

	default:
		return errors.Wrapf(errors.ErrInvalidOutput, "%q cannot be encoded", format)
	}
}

// Table writes aligned columns with a bold header row.
type Table struct {
	tw *tabwriter.Writer
}

// NewTable starts a table on w with the given column headers.
func NewTable(w io.Writer, headers ...string) *Table {
	t := &Table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	bold := color.New(color.Bold)
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = bold.Sprint(h)
	}
	fmt.Fprintln(t.tw, strings.Join(cells, "\t"))
	return t
}

// Row appends a row.
func (t *Table) Row(cells ...string) {
	fmt.Fprintln(t.tw, strings.Join(cells, "\t"))
}

// Flush writes the buffered table.
func (t *Table) Flush() error {
	return t.tw.Flush()
}

// Dim renders s in a muted color when color output is enabled.
func Dim(s string) string {
	return color.New(color.FgHiBlack).Sprint(s)
}

// orDash returns s, or "-" when s is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
