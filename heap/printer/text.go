package printer

import (
	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
)

func (p *Printer) printText() error {
	if p.opts.ShowBlocks {
		if err := p.printBlocksText(); err != nil {
			return err
		}
	}
	if p.opts.ShowUsage {
		if err := p.printUsageText(p.src.Usage()); err != nil {
			return err
		}
	}
	if p.opts.ShowStats {
		return p.printStatsText(p.src.Stats())
	}
	return nil
}

func (p *Printer) printBlocksText() error {
	blocks, truncated := p.listed()

	if p.opts.ShowLinks {
		p.num.Fprintf(p.writer, "%12s %12s %12s %-5s %12s %12s\n", "OFFSET", "PTR", "SIZE", "STATE", "PREV", "NEXT")
	} else {
		p.num.Fprintf(p.writer, "%12s %12s %12s %-5s\n", "OFFSET", "PTR", "SIZE", "STATE")
	}
	for _, b := range blocks {
		if p.opts.ShowLinks {
			p.num.Fprintf(p.writer, "%12d %12d %12d %-5s %12s %12s\n", b.Offset, b.Ptr, b.Size, state(b), p.link(b.Prev), p.link(b.Next))
			continue
		}
		p.num.Fprintf(p.writer, "%12d %12d %12d %-5s\n", b.Offset, b.Ptr, b.Size, state(b))
	}
	if truncated {
		p.num.Fprintf(p.writer, "... (showing first %d blocks)\n", p.opts.MaxBlocks)
	}
	return nil
}

func (p *Printer) printUsageText(u alloc.Usage) error {
	p.num.Fprintf(p.writer, "\nBlocks:       %d (%d used, %d free)\n", u.Blocks, u.UsedBlocks, u.FreeBlocks)
	p.num.Fprintf(p.writer, "Used bytes:   %d\n", u.UsedBytes)
	p.num.Fprintf(p.writer, "Free bytes:   %d\n", u.FreeBytes)
	p.num.Fprintf(p.writer, "Overhead:     %d\n", u.Overhead)
	p.num.Fprintf(p.writer, "Largest free: %d\n", u.LargestFree)
	_, err := p.num.Fprintf(p.writer, "Top:          %d\n", u.Top)
	return err
}

func (p *Printer) printStatsText(s alloc.Stats) error {
	p.num.Fprintf(p.writer, "\nMalloc calls:  %d (%d reused, %d grown)\n", s.AllocCalls, s.AllocFastPath, s.AllocSlowPath)
	p.num.Fprintf(p.writer, "Free calls:    %d\n", s.FreeCalls)
	p.num.Fprintf(p.writer, "Realloc calls: %d\n", s.ReallocCalls)
	p.num.Fprintf(p.writer, "Growth:        %d calls, %d bytes\n", s.GrowCalls, s.GrowBytes)
	p.num.Fprintf(p.writer, "Splits:        %d\n", s.SplitCount)
	_, err := p.num.Fprintf(p.writer, "Coalesced:     %d forward, %d backward\n", s.CoalesceForward, s.CoalesceBackward)
	return err
}

func state(b alloc.BlockInfo) string {
	if b.Free {
		return "free"
	}
	return "used"
}

func (p *Printer) link(off int) string {
	if off < 0 {
		return "-"
	}
	return p.num.Sprintf("%d", off)
}
