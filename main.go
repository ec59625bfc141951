// Package main provides a pointer to the real entry point.
// tomasulo is a cycle-accurate Tomasulo's-algorithm pipeline simulator.
//
// For the full CLI, use: go run ./cmd/tomasulo
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("tomasulo - Tomasulo's-algorithm pipeline simulator")
	fmt.Println("")
	fmt.Println("Usage: tomasulo [command] <program.asm>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run      execute a program to halt, or to a cycle bound")
	fmt.Println("  step     single-step a program, printing state each cycle")
	fmt.Println("  metrics  run headlessly and print only the final metrics")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/tomasulo' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/tomasulo' instead.")
	}
}
