package printer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajiku17/PersonalOSAssignments/heap"
	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
)

// newTestHeap builds a directory of three used blocks and one free block.
func newTestHeap(t *testing.T) *alloc.Allocator {
	t.Helper()

	a, err := alloc.New(heap.NewMemRegion(0), nil)
	require.NoError(t, err)

	var ps []alloc.Ptr
	for _, size := range []int{40000, 16, 8, 24} {
		p, err := a.Malloc(size)
		require.NoError(t, err)
		ps = append(ps, p)
	}
	require.NoError(t, a.Free(ps[2]))
	return a
}

func TestPrinter_Text(t *testing.T) {
	a := newTestHeap(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ShowStats = true
	require.NoError(t, New(a, &buf, opts).Print())

	output := buf.String()
	t.Logf("Text output:\n%s", output)

	require.Contains(t, output, "OFFSET")
	require.Contains(t, output, "40,000", "sizes are grouped")
	require.Contains(t, output, "free")
	require.Contains(t, output, "Blocks:       4 (3 used, 1 free)")
	require.Contains(t, output, "Malloc calls:  4 (0 reused, 4 grown)")
	require.NotContains(t, output, "PREV")
}

func TestPrinter_TextLinksAndFilters(t *testing.T) {
	a := newTestHeap(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ShowLinks = true
	opts.ShowFree = false
	opts.ShowUsage = false
	require.NoError(t, New(a, &buf, opts).Print())

	output := buf.String()
	require.Contains(t, output, "PREV")
	require.NotContains(t, output, "free")
	require.NotContains(t, output, "Blocks:")

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 4, "header plus three used blocks")
	require.Contains(t, lines[1], " - ", "the head has no predecessor")
}

func TestPrinter_MaxBlocks(t *testing.T) {
	a := newTestHeap(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.MaxBlocks = 2
	opts.ShowUsage = false
	require.NoError(t, New(a, &buf, opts).Print())
	require.Contains(t, buf.String(), "showing first 2 blocks")
}

func TestPrinter_JSON(t *testing.T) {
	a := newTestHeap(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.ShowStats = true
	require.NoError(t, New(a, &buf, opts).Print())

	var result struct {
		Blocks []alloc.BlockInfo `json:"blocks"`
		Usage  alloc.Usage       `json:"usage"`
		Stats  alloc.Stats       `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result.Blocks, 4)
	require.True(t, result.Blocks[2].Free)
	require.Equal(t, a.Usage(), result.Usage)
	require.Equal(t, a.Stats(), result.Stats)
}

func TestPrinter_UnknownFormat(t *testing.T) {
	a := newTestHeap(t)
	opts := DefaultOptions()
	opts.Format = "reg"
	err := New(a, &bytes.Buffer{}, opts).Print()
	require.ErrorIs(t, err, ErrUnknownFormat)
}
