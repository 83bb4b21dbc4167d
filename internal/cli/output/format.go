// Package output renders command results as tables, JSON or YAML.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format is an output format selected with --output.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses a --output value. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
	}
}

func (f Format) String() string {
	return string(f)
}

// Printer writes command results in one format.
type Printer struct {
	out    io.Writer
	format Format
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, format Format) *Printer {
	return &Printer{out: out, format: format}
}

// Format returns the printer's output format.
func (p *Printer) Format() Format {
	return p.format
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Print writes data as JSON or YAML, or renders table when the format is
// table. A nil table falls back to JSON.
func (p *Printer) Print(data any, table TableRenderer) error {
	switch p.format {
	case FormatJSON:
		return PrintJSON(p.out, data)
	case FormatYAML:
		return PrintYAML(p.out, data)
	case FormatTable:
		if table == nil {
			return PrintJSON(p.out, data)
		}
		return PrintTable(p.out, table)
	default:
		return fmt.Errorf("unknown format: %s", p.format)
	}
}

// PrintList is Print with a message in place of an empty table.
func (p *Printer) PrintList(data any, empty bool, emptyMsg string, table TableRenderer) error {
	if p.format == FormatTable && empty {
		p.Println(emptyMsg)
		return nil
	}
	return p.Print(data, table)
}

// Println prints a line. Nothing is printed in JSON or YAML mode so the
// structured output stays parseable.
func (p *Printer) Println(args ...any) {
	if p.format != FormatTable {
		return
	}
	_, _ = fmt.Fprintln(p.out, args...)
}
