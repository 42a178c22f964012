// Package main provides a pointer to pipesim's real entry point.
// Pipesim is a cycle-accurate five-stage MIPS-like pipeline simulator.
//
// For the full CLI, use: go run ./cmd/pipesim <F|N> <program-file>
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("pipesim - five-stage pipeline simulator")
	fmt.Println("")
	fmt.Println("Usage: pipesim <F|N> <program-file>")
	fmt.Println("")
	fmt.Println("  F    enable EX->EX forwarding")
	fmt.Println("  N    disable forwarding")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/pipesim <F|N> <program-file>' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: you provided arguments. Use 'go run ./cmd/pipesim' instead.")
	}
}
