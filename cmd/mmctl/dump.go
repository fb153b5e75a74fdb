package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajiku17/PersonalOSAssignments/heap/printer"
	"github.com/ajiku17/PersonalOSAssignments/internal/workload"
)

var (
	dumpLinks     bool
	dumpUsedOnly  bool
	dumpStats     bool
	dumpMaxBlocks int
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpLinks, "links", false, "Show prev/next links")
	cmd.Flags().BoolVar(&dumpUsedOnly, "used-only", false, "List only used blocks")
	cmd.Flags().BoolVar(&dumpStats, "stats", false, "Include allocator counters")
	cmd.Flags().IntVar(&dumpMaxBlocks, "max-blocks", 0, "List at most this many blocks (0 = all)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [workload...]",
		Short: "Print the block directory",
		Long: `The dump command runs the named workloads, if any, and prints every
block of the heap with its offset, payload pointer, size and state.
Without workloads it prints the heap as loaded, which is mostly useful
with --file.

Example:
  mmctl dump --file heap.bin
  mmctl dump malloc-simple --links
  mmctl dump malloc-big-simple --json --max-blocks 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) (err error) {
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

	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	opts.ShowLinks = dumpLinks
	opts.ShowFree = !dumpUsedOnly
	opts.ShowStats = dumpStats
	opts.MaxBlocks = dumpMaxBlocks
	if quiet {
		return nil
	}
	return printer.New(a, os.Stdout, opts).Print()
}
