package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gopherarch/tomasulo-sim/timing/core"
)

var runCycles uint64

var runCmd = &cobra.Command{
	Use:   "run <program.asm>",
	Short: "Load a program and execute it to halt, or to a cycle bound",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCore()
		if err != nil {
			return err
		}
		if err := loadProgramFile(c, args[0]); err != nil {
			return err
		}

		logger.Info("run starting", "program", args[0], "run_id", c.RunID())

		if runCycles > 0 {
			c.RunCycles(runCycles)
		} else {
			c.Run()
		}

		printSnapshot(cmd.OutOrStdout(), c)

		if err := c.Err(); err != nil {
			logger.Error("run ended in a fatal error", "err", err)
			return err
		}
		logger.Info("run finished", "halted", c.Halted(), "committed", c.Stats().Committed)
		return nil
	},
}

func init() {
	runCmd.Flags().Uint64Var(&runCycles, "cycles", 0, "stop after this many cycles (0 = run to halt)")
}

// printSnapshot renders the final architectural registers and run
// metrics, close to the teacher's cmd/m2sim run summary style.
func printSnapshot(w io.Writer, c *core.Core) {
	snap := c.Snapshot()

	fmt.Fprintf(w, "run_id: %s\n", snap.RunID)
	fmt.Fprintf(w, "halted: %v\n", snap.Halted)
	if snap.Error != "" {
		fmt.Fprintf(w, "error: %s\n", snap.Error)
	}

	fmt.Fprintln(w, "\nregisters:")
	for i, v := range snap.Registers {
		if v == 0 {
			continue
		}
		fmt.Fprintf(w, "  R%d = %d\n", i, v)
	}

	fmt.Fprintln(w, "\nmetrics:")
	fmt.Fprintf(w, "  cycle:              %d\n", snap.Metrics.Cycle)
	fmt.Fprintf(w, "  committed:          %d\n", snap.Metrics.Committed)
	fmt.Fprintf(w, "  total_instructions: %d\n", snap.Metrics.TotalInstructions)
	fmt.Fprintf(w, "  stalls:             %d\n", snap.Metrics.Stalls)
	fmt.Fprintf(w, "  mispredictions:     %d\n", snap.Metrics.Mispredictions)
	fmt.Fprintf(w, "  ipc:                %.3f\n", snap.Metrics.IPC())
}
