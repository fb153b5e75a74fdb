package main

import (
	"github.com/spf13/cobra"

	"github.com/ajiku17/PersonalOSAssignments/internal/workload"
)

func init() {
	rootCmd.AddCommand(newListCmd())
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available workloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList()
		},
	}
}

type workloadInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func runList() error {
	all := workload.All()
	if jsonOut {
		infos := make([]workloadInfo, len(all))
		for i, w := range all {
			infos[i] = workloadInfo{w.Name, w.Description}
		}
		return printJSON(infos)
	}
	for _, w := range all {
		printInfo("%-22s %s\n", w.Name, w.Description)
	}
	return nil
}
