package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aki/dsrename/internal/core/dataset"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	// FormatPretty represents human-readable output format
	FormatPretty OutputFormat = "pretty"
	// FormatJSON represents JSON output format
	FormatJSON OutputFormat = "json"
)

// ParseFormat converts a string to OutputFormat
func ParseFormat(s string) (OutputFormat, error) {
	switch s {
	case "pretty", "":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Formatter is the interface for output formatting
type Formatter interface {
	// Output writes data. Pretty output expects data already rendered.
	Output(data interface{}) error

	// OutputError reports a failed command on the error stream
	OutputError(err error) error

	// IsJSON returns true if this formatter outputs JSON
	IsJSON() bool
}

// prettyFormatter implements Formatter for human-readable output
type prettyFormatter struct {
	w, errW io.Writer
}

// NewPrettyFormatter creates a pretty formatter writing results to w and
// errors to errW
func NewPrettyFormatter(w, errW io.Writer) Formatter {
	return &prettyFormatter{w: w, errW: errW}
}

func (f *prettyFormatter) Output(data interface{}) error {
	if str, ok := data.(string); ok {
		_, err := io.WriteString(f.w, str)
		return err
	}
	_, err := fmt.Fprintln(f.w, data)
	return err
}

func (f *prettyFormatter) OutputError(err error) error {
	_, werr := fmt.Fprintf(f.errW, "%s %s\n", ErrorIcon, ErrorStyle.Render(err.Error()))
	return werr
}

func (f *prettyFormatter) IsJSON() bool {
	return false
}

// jsonFormatter implements Formatter for JSON output
type jsonFormatter struct {
	w, errW io.Writer
}

// NewJSONFormatter creates a JSON formatter writing results to w and
// errors to errW
func NewJSONFormatter(w, errW io.Writer) Formatter {
	return &jsonFormatter{w: w, errW: errW}
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (f *jsonFormatter) Output(data interface{}) error {
	return encode(f.w, data)
}

// jsonError is the error document written in JSON mode. Kind is set for
// dataset failures so scripts can branch on it.
type jsonError struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (f *jsonFormatter) OutputError(err error) error {
	out := jsonError{Error: err.Error()}
	if kind := dataset.KindOf(err); kind != dataset.KindUnknown {
		out.Kind = kind.String()
	}
	return encode(f.errW, out)
}

func (f *jsonFormatter) IsJSON() bool {
	return true
}

// NewFormatter creates a formatter of the given format
func NewFormatter(format OutputFormat, w, errW io.Writer) (Formatter, error) {
	switch format {
	case FormatPretty:
		return NewPrettyFormatter(w, errW), nil
	case FormatJSON:
		return NewJSONFormatter(w, errW), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// GlobalFormatter is the formatter selected by --output for the process
// streams
var GlobalFormatter Formatter = NewPrettyFormatter(os.Stdout, os.Stderr)

// SetGlobalFormatter sets the global formatter
func SetGlobalFormatter(format OutputFormat) error {
	f, err := NewFormatter(format, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	GlobalFormatter = f
	return nil
}
