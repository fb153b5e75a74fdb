// Package printer renders an allocator's block directory as text or JSON.
package printer

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
)

const (
	DefaultMaxBlocks = 0
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs a human-readable table.
	FormatText Format = "text"

	// FormatJSON outputs a single JSON document.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for a Format other than text or json.
var ErrUnknownFormat = errors.New("printer: unknown format")

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowBlocks lists every block of the directory.
	// Default: true
	ShowBlocks bool

	// ShowFree includes free blocks in the listing. Summaries always
	// account for them.
	// Default: true
	ShowFree bool

	// ShowLinks adds the prev/next columns.
	// Default: false
	ShowLinks bool

	// ShowUsage prints the directory summary.
	// Default: true
	ShowUsage bool

	// ShowStats prints the allocator counters.
	// Default: false
	ShowStats bool

	// MaxBlocks limits how many blocks are listed (0 = unlimited).
	// Default: 0
	MaxBlocks int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:     FormatText,
		ShowBlocks: true,
		ShowFree:   true,
		ShowLinks:  false,
		ShowUsage:  true,
		ShowStats:  false,
		MaxBlocks:  DefaultMaxBlocks,
	}
}

// Source is the read side of an allocator.
type Source interface {
	Blocks() iter.Seq[alloc.BlockInfo]
	Usage() alloc.Usage
	Stats() alloc.Stats
}

// Printer writes a directory dump to an io.Writer.
type Printer struct {
	src    Source
	writer io.Writer
	opts   Options
	num    *message.Printer
}

// New creates a new Printer.
func New(src Source, w io.Writer, opts Options) *Printer {
	return &Printer{
		src:    src,
		writer: w,
		opts:   opts,
		num:    message.NewPrinter(language.English),
	}
}

// Print writes everything enabled in the options.
func (p *Printer) Print() error {
	switch p.opts.Format {
	case FormatText, "":
		return p.printText()
	case FormatJSON:
		return p.printJSON()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, p.opts.Format)
	}
}

// listed returns the blocks selected by the options and whether the listing
// was cut short by MaxBlocks.
func (p *Printer) listed() ([]alloc.BlockInfo, bool) {
	var out []alloc.BlockInfo
	for b := range p.src.Blocks() {
		if b.Free && !p.opts.ShowFree {
			continue
		}
		if p.opts.MaxBlocks > 0 && len(out) == p.opts.MaxBlocks {
			return out, true
		}
		out = append(out, b)
	}
	return out, false
}
