package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:   "step <program.asm>",
	Short: "Load a program and single-step it, printing state after each cycle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCore()
		if err != nil {
			return err
		}
		if err := loadProgramFile(c, args[0]); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		in := bufio.NewScanner(cmd.InOrStdin())

		fmt.Fprintln(out, "press enter to advance one cycle, 'q' to quit")
		for !c.Halted() && c.Err() == nil {
			if !in.Scan() {
				break
			}
			if in.Text() == "q" {
				break
			}

			c.Tick()
			stats := c.Stats()
			fmt.Fprintf(out, "cycle %d: committed=%d stalls=%d mispredictions=%d\n",
				stats.Cycle, stats.Committed, stats.Stalls, stats.Mispredictions)
			for _, rob := range c.Engine.Snapshot().ROB {
				fmt.Fprintf(out, "  rob[%d] %s dest=%d ready=%v speculative=%v stage=%s\n",
					rob.RobID, rob.Kind, rob.Dest, rob.Ready, rob.Speculative, rob.Stage)
			}
		}

		if err := c.Err(); err != nil {
			logger.Error("step run ended in a fatal error", "err", err)
			return err
		}
		return nil
	},
}
