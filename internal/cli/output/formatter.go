package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents the output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// Printer writes formatted data and status lines.
type Printer struct {
	out       io.Writer
	err       io.Writer
	format    Format
	formatter Formatter
}

// NewPrinter creates a printer writing data to out and diagnostics to errw.
func NewPrinter(out, errw io.Writer, format Format) *Printer {
	return &Printer{
		out:       out,
		err:       errw,
		format:    format,
		formatter: NewFormatter(format),
	}
}

// Format returns the active output format.
func (p *Printer) Format() Format {
	return p.format
}

// Out returns the data writer.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Err returns the diagnostics writer.
func (p *Printer) Err() io.Writer {
	return p.err
}

// Print formats data to the data writer.
func (p *Printer) Print(data any) error {
	return p.formatter.Format(p.out, data)
}

// Successf prints a success line.
func (p *Printer) Successf(format string, args ...any) {
	fmt.Fprintf(p.statusWriter(), "✓ "+format+"\n", args...)
}

// Infof prints an informational line.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.statusWriter(), format+"\n", args...)
}

// Warnf prints a warning line to the diagnostics writer.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintf(p.err, "! "+format+"\n", args...)
}

// Errorf prints a failure line to the diagnostics writer.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintf(p.err, "✗ "+format+"\n", args...)
}

func (p *Printer) statusWriter() io.Writer {
	if p.format == FormatTable {
		return p.out
	}
	return p.err
}
