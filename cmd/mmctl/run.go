package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajiku17/PersonalOSAssignments/heap/alloc"
	"github.com/ajiku17/PersonalOSAssignments/internal/logger"
	"github.com/ajiku17/PersonalOSAssignments/internal/workload"
	"github.com/ajiku17/PersonalOSAssignments/internal/writer"
)

var (
	runNoCheck bool
	runSave    string
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVar(&runNoCheck, "no-check", false, "Skip the invariant check after the workloads")
	cmd.Flags().StringVar(&runSave, "save", "", "Save the final heap image to this path (reopen it with --file)")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [workload...]",
		Short: "Run allocator workloads",
		Long: `The run command runs the named workloads (all of them by default) in
order on one heap, then checks the block directory invariants.

Example:
  mmctl run
  mmctl run malloc-small-reuse realloc-small-reuse
  mmctl run --limit 65536 --json
  mmctl run malloc-simple --save heap.img`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

// runReport is the JSON document printed by run.
type runReport struct {
	Results []workload.Result `json:"results"`
	Usage   alloc.Usage       `json:"usage"`
	Stats   alloc.Stats       `json:"stats"`
	Check   string            `json:"check"`
}

func runRun(args []string) (err error) {
	a, closeHeap, err := openHeap()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeHeap()) }()

	results, runErr := workload.Run(a, args...)
	if errors.Is(runErr, workload.ErrUnknown) {
		return runErr
	}
	for _, res := range results {
		if res.OK() {
			logger.Info("workload finished", "name", res.Name, "duration", res.Duration, "grow_calls", res.GrowCalls)
		} else {
			logger.Error("workload failed", "name", res.Name, "error", res.Err)
		}
	}

	var checkErr error
	if !runNoCheck {
		checkErr = a.Check()
	}

	if jsonOut {
		report := runReport{Results: results, Usage: a.Usage(), Stats: a.Stats(), Check: checkStatus(checkErr)}
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		printResults(results, a.Usage(), checkErr)
	}

	if checkErr != nil {
		runErr = errors.Join(runErr, fmt.Errorf("heap check failed: %w", checkErr))
	}
	if runSave != "" {
		printVerbose("Saving heap image: %s\n", runSave)
		w := newImageWriter(runSave)
		if err := w.WriteImage(a.Region().Bytes()); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("failed to save heap image: %w", err))
		}
	}
	return runErr
}

// newImageWriter returns the sink for --save.
var newImageWriter = func(path string) writer.Writer {
	return &writer.FileWriter{Path: path}
}

func checkStatus(err error) string {
	switch {
	case runNoCheck:
		return "skipped"
	case err != nil:
		return err.Error()
	default:
		return "ok"
	}
}

func printResults(results []workload.Result, u alloc.Usage, checkErr error) {
	p := message.NewPrinter(language.English)

	printInfo("%-22s %-6s %12s %8s %14s\n", "WORKLOAD", "RESULT", "TIME", "GROWS", "TOP")
	for _, res := range results {
		status := "ok"
		if !res.OK() {
			status = "FAIL"
		}
		printInfo("%-22s %-6s %12s %8s %14s\n",
			res.Name, status,
			res.Duration.Round(time.Microsecond),
			p.Sprintf("%d", res.GrowCalls),
			p.Sprintf("%d", res.TopAfter))
		if !res.OK() {
			printInfo("  %s\n", res.Error)
		}
	}

	printInfo("\nHeap: %s in %s blocks (%s free), top %s\n",
		formatBytes(int64(u.UsedBytes+u.FreeBytes)),
		p.Sprintf("%d", u.Blocks),
		p.Sprintf("%d", u.FreeBlocks),
		formatBytes(int64(u.Top)))
	printVerbose("Overhead: %s, largest free block: %s\n", formatBytes(int64(u.Overhead)), formatBytes(int64(u.LargestFree)))
	if runNoCheck {
		return
	}
	if checkErr != nil {
		printError("invariant check failed: %v\n", checkErr)
		return
	}
	printInfo("Invariants: %s\n", strings.ToUpper(checkStatus(nil)))
}
