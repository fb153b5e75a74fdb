package main

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
	"github.com/ajiku17/PersonalOSAssignments/internal/workload"
)

const (
	defaultMapWidth = 64
	defaultMapRows  = 16
)

var (
	mapWidth int
	mapRows  int
)

var (
	// Color palette
	usedColor   = lipgloss.Color("#7D56F4")
	freeColor   = lipgloss.Color("#04B575")
	headerColor = lipgloss.Color("#FFA500")
	mutedColor  = lipgloss.Color("#666666")
	borderColor = lipgloss.Color("#383838")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(usedColor)

	usedStyle   = lipgloss.NewStyle().Foreground(usedColor)
	freeStyle   = lipgloss.NewStyle().Foreground(freeColor)
	headerStyle = lipgloss.NewStyle().Foreground(headerColor)
	legendStyle = lipgloss.NewStyle().Foreground(mutedColor)

	mapStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
)

// Cell glyphs.
const (
	glyphUsed   = "█"
	glyphFree   = "░"
	glyphHeader = "▒"
	glyphEmpty  = " "
)

func init() {
	cmd := newMapCmd()
	cmd.Flags().IntVar(&mapWidth, "width", defaultMapWidth, "Cells per row")
	cmd.Flags().IntVar(&mapRows, "rows", defaultMapRows, "Number of rows")
	rootCmd.AddCommand(cmd)
}

func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map [workload...]",
		Short: "Render a heap occupancy map",
		Long: `The map command runs the named workloads, if any, and draws the heap
from offset 0 to the top as a grid. Each cell covers an equal share of the
heap and shows whether that share is mostly used payload, free payload or
block headers.

Example:
  mmctl map --file heap.bin
  mmctl map malloc-big-simple --width 80 --rows 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(args)
		},
	}
	return cmd
}

func runMap(args []string) (err error) {
	if mapWidth <= 0 || mapRows <= 0 {
		return fmt.Errorf("--width and --rows must be positive")
	}

	a, closeHeap, err := openHeap()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeHeap()) }()

	if len(args) > 0 {
		if _, err := workload.Run(a, args...); err != nil {
			return err
		}
	}

	printInfo("%s\n", renderMap(a.Blocks(), a.Usage(), mapWidth, mapRows, !noColor))
	return nil
}

// cellKind classifies what dominates a map cell.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellUsed
	cellFree
	cellHeader
)

// cellBytes returns how many heap bytes one cell covers when top bytes are
// spread over at most cells cells.
func cellBytes(top, cells int) int {
	return max((top+cells-1)/cells, 1)
}

// classify returns the dominant kind of bytes in each cell.
func classify(blocks iter.Seq[alloc.BlockInfo], top, cells int) []cellKind {
	kinds := make([]cellKind, cells)
	if top == 0 {
		return kinds
	}
	per := cellBytes(top, cells)

	// Bytes of each kind per cell.
	used := make([]int, cells)
	free := make([]int, cells)
	hdr := make([]int, cells)

	add := func(counts []int, start, end int) {
		for start < end {
			cell := start / per
			next := min((cell+1)*per, end)
			counts[cell] += next - start
			start = next
		}
	}

	for b := range blocks {
		add(hdr, b.Offset, b.Offset+alloc.HeaderSize)
		if b.Free {
			add(free, int(b.Ptr), b.Offset+b.Footprint())
		} else {
			add(used, int(b.Ptr), b.Offset+b.Footprint())
		}
	}

	for i := range kinds {
		switch m := max(used[i], free[i], hdr[i]); {
		case m == 0:
			kinds[i] = cellEmpty
		case m == used[i]:
			kinds[i] = cellUsed
		case m == free[i]:
			kinds[i] = cellFree
		default:
			kinds[i] = cellHeader
		}
	}
	return kinds
}

// renderMap draws the heap as rows of width cells.
func renderMap(blocks iter.Seq[alloc.BlockInfo], u alloc.Usage, width, rows int, color bool) string {
	cells := width * rows
	per := cellBytes(u.Top, cells)
	// Drop rows a small heap cannot reach.
	rows = max(1, min(rows, ((u.Top+per-1)/per+width-1)/width))
	kinds := classify(blocks, u.Top, cells)

	paint := func(s lipgloss.Style, glyph string) string {
		if !color {
			return glyph
		}
		return s.Render(glyph)
	}

	var grid strings.Builder
	for r := range rows {
		if r > 0 {
			grid.WriteByte('\n')
		}
		for c := range width {
			i := r*width + c
			if i >= len(kinds) {
				grid.WriteString(glyphEmpty)
				continue
			}
			switch kinds[i] {
			case cellUsed:
				grid.WriteString(paint(usedStyle, glyphUsed))
			case cellFree:
				grid.WriteString(paint(freeStyle, glyphFree))
			case cellHeader:
				grid.WriteString(paint(headerStyle, glyphHeader))
			default:
				grid.WriteString(glyphEmpty)
			}
		}
	}

	title := fmt.Sprintf("Heap map: %s, %d blocks", formatBytes(int64(u.Top)), u.Blocks)
	legend := fmt.Sprintf("%s used %d   %s free %d   %s headers",
		paint(usedStyle, glyphUsed), u.UsedBlocks,
		paint(freeStyle, glyphFree), u.FreeBlocks,
		paint(headerStyle, glyphHeader))
	if u.Top > 0 {
		legend += fmt.Sprintf("   1 cell = %s", formatBytes(int64(per)))
	}

	body := grid.String()
	if color {
		title = titleStyle.Render(title)
		legend = legendStyle.Render(legend)
		body = mapStyle.Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, body, legend)
}
