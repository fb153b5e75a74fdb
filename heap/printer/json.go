package printer

import (
	"encoding/json"

	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
)

// jsonDump is the document written in FormatJSON.
type jsonDump struct {
	Blocks    []alloc.BlockInfo `json:"blocks,omitempty"`
	Truncated bool              `json:"truncated,omitempty"`
	Usage     *alloc.Usage      `json:"usage,omitempty"`
	Stats     *alloc.Stats      `json:"stats,omitempty"`
}

func (p *Printer) printJSON() error {
	var doc jsonDump
	if p.opts.ShowBlocks {
		doc.Blocks, doc.Truncated = p.listed()
	}
	if p.opts.ShowUsage {
		u := p.src.Usage()
		doc.Usage = &u
	}
	if p.opts.ShowStats {
		s := p.src.Stats()
		doc.Stats = &s
	}

	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
