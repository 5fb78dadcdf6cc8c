// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dreammattress/storefront/pkg/errors"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatWide  Format = "wide" // table with every column
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter writes data in one format.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc adapts an encoding function to Formatter.
type FormatterFunc func(w io.Writer, data any) error

func (f FormatterFunc) Format(w io.Writer, data any) error { return f(w, data) }

// NewFormatter returns the encoder for format. Unknown formats render
// as a table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return FormatterFunc(writeJSON)
	case FormatYAML:
		return FormatterFunc(writeYAML)
	}
	return FormatterFunc(writeTable)
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeYAML(w io.Writer, data any) error {
	b, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return errors.WrapParse("yaml", "output", err)
	}
	_, err = w.Write(b)
	return err
}

// Align is a table column alignment.
type Align int

// Column alignments.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Data is tabular output. Headers are title cased when rendered.
type Data struct {
	Headers []string
	Rows    [][]string
	Align   []Align
}

// writeTable renders Data with tablewriter. Anything else is written as
// JSON.
func writeTable(w io.Writer, data any) error {
	d, ok := data.(Data)
	if !ok {
		return writeJSON(w, data)
	}

	var cfg tablewriter.Config
	if len(d.Align) > 0 {
		per := make([]tw.Align, len(d.Align))
		for i, a := range d.Align {
			per[i] = twAlign[a]
		}
		cfg.Header.Alignment = tw.CellAlignment{PerColumn: per}
		cfg.Row.Alignment = tw.CellAlignment{PerColumn: per}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))
	if len(d.Headers) > 0 {
		table.Header(cellsOf(d.Headers, Header)...)
	}
	for _, row := range d.Rows {
		if err := table.Append(cellsOf(row, nil)...); err != nil {
			return err
		}
	}
	return table.Render()
}

var twAlign = map[Align]tw.Align{
	AlignDefault: tw.Skip,
	AlignLeft:    tw.AlignLeft,
	AlignCenter:  tw.AlignCenter,
	AlignRight:   tw.AlignRight,
}

func cellsOf(values []string, conv func(string) string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		if conv != nil {
			v = conv(v)
		}
		cells[i] = v
	}
	return cells
}

var headerCase = cases.Title(language.English)

// Header turns a field key such as "main_image" into "Main Image".
func Header(key string) string {
	return headerCase.String(strings.NewReplacer("_", " ", "-", " ").Replace(key))
}

// DetectFormat returns the explicit format when given, a table on a
// terminal, and JSON when stdout is piped.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if fd := os.Stdout.Fd(); isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat converts s to a Format.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, "":
		return format, nil
	}
	return "", errors.NewValidationError("format", s, "must be one of: table, json, yaml, wide")
}
