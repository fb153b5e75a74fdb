package main

import (
	"strings"
	"testing"

	"github.com/ajiku17/PersonalOSAssignments/heap"
	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
)

func TestRenderMap(t *testing.T) {
	a, err := alloc.New(heap.NewMemRegion(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	// Two blocks of 320 bytes each: 10 cells of 64 bytes, five per block.
	if _, err := a.Malloc(288); err != nil {
		t.Fatal(err)
	}
	p, err := a.Malloc(288)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Free(p); err != nil {
		t.Fatal(err)
	}

	out := renderMap(a.Blocks(), a.Usage(), 10, 1, false)
	assertContains(t, out, []string{
		"Heap map: 640 B, 2 blocks",
		"█████░░░░░",
		"used 1",
		"free 1",
		"1 cell = 64 B",
	})
}

func TestRenderMap_SmallHeapTrimsRows(t *testing.T) {
	a, err := alloc.New(heap.NewMemRegion(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Malloc(8); err != nil {
		t.Fatal(err)
	}

	// 40 bytes at one byte per cell fit in a single row of 64.
	out := renderMap(a.Blocks(), a.Usage(), 64, 16, false)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected title, one grid row and legend, got %d lines:\n%s", len(lines), out)
	}
	if got := strings.Count(lines[1], glyphHeader); got != alloc.HeaderSize {
		t.Errorf("header cells = %d, want %d", got, alloc.HeaderSize)
	}
	if got := strings.Count(lines[1], glyphUsed); got != 8 {
		t.Errorf("used cells = %d, want 8", got)
	}
}

func TestRenderMap_EmptyHeap(t *testing.T) {
	a, err := alloc.New(heap.NewMemRegion(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	out := renderMap(a.Blocks(), a.Usage(), 8, 4, false)
	assertContains(t, out, []string{"Heap map: 0 B, 0 blocks"})
	assertNotContains(t, out, []string{"1 cell"})
}

func TestMapCommand(t *testing.T) {
	resetFlags(t)
	mapWidth, mapRows = 32, 4

	output, err := captureOutput(t, func() error {
		return runMap([]string{"malloc-simple"})
	})
	if err != nil {
		t.Fatalf("runMap() error: %v", err)
	}
	assertContains(t, output, []string{"Heap map: 36 B, 1 blocks", glyphFree})

	mapWidth = 0
	if _, err := captureOutput(t, func() error { return runMap(nil) }); err == nil {
		t.Error("expected an error for zero width")
	}
}
