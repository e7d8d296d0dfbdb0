package printer

import (
	"io"

	"github.com/joshuapare/eviokit/evio"
)

const (
	DefaultIndentSize      = 2
	DefaultMaxDepth        = 0
	DefaultMaxPayloadBytes = 32
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs an indented human-readable tree.
	FormatText Format = "text"

	// FormatJSON outputs one JSON document per printed structure.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per nesting level (text format only).
	// Default: 2
	IndentSize int

	// MaxDepth limits how deep the tree is printed (0 = unlimited).
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowPayload includes leaf payload bytes in output.
	// Default: true
	ShowPayload bool

	// MaxPayloadBytes limits how many payload bytes are displayed per leaf.
	// Longer payloads are truncated. Set to 0 for no limit.
	// Default: 32
	MaxPayloadBytes int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:          FormatText,
		IndentSize:      DefaultIndentSize,
		MaxDepth:        DefaultMaxDepth,
		ShowPayload:     true,
		MaxPayloadBytes: DefaultMaxPayloadBytes,
	}
}

// Printer writes decoded EVIO structures.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer writing to w.
//
// Example:
//
//	b, _ := f.EventBank(0, 0)
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintBank(b)
func New(w io.Writer, opts Options) *Printer {
	return &Printer{
		writer: w,
		opts:   opts,
	}
}

// PrintBank prints b and its descendants down to MaxDepth.
func (p *Printer) PrintBank(b *evio.Bank) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printBankJSON(b)
	case FormatText:
		return p.printBankText(b, 0)
	default:
		return p.printBankText(b, 0)
	}
}

// PrintTimeSlice prints the decoded fields of a ROC time-slice bank: the
// stream info followed by one line (or object) per payload.
func (p *Printer) PrintTimeSlice(ts *evio.RocTimeSliceBank) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printTimeSliceJSON(ts)
	default:
		return p.printTimeSliceText(ts)
	}
}

// truncate returns at most max bytes of data (0 = no limit) and whether
// anything was cut.
func truncate(data []byte, limit int) ([]byte, bool) {
	if limit == 0 || len(data) <= limit {
		return data, false
	}
	return data[:limit], true
}
