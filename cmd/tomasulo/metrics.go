package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var metricsCycles uint64

var metricsCmd = &cobra.Command{
	Use:   "metrics <program.asm>",
	Short: "Run a program headlessly and print only the final metrics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCore()
		if err != nil {
			return err
		}
		if err := loadProgramFile(c, args[0]); err != nil {
			return err
		}

		if metricsCycles > 0 {
			c.RunCycles(metricsCycles)
		} else {
			c.Run()
		}

		stats := c.Stats()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "run_id=%s cycle=%d committed=%d total_instructions=%d stalls=%d mispredictions=%d ipc=%.3f\n",
			c.RunID(), stats.Cycle, stats.Committed, stats.TotalInstructions, stats.Stalls, stats.Mispredictions, stats.IPC())

		return c.Err()
	},
}

func init() {
	metricsCmd.Flags().Uint64Var(&metricsCycles, "cycles", 0, "stop after this many cycles (0 = run to halt)")
}
