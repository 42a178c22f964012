// Command pipesim runs the five-stage pipeline simulator over a
// source program, emitting a pipeline diagram and register dump
// after every simulated cycle.
//
// Usage:
//
//	pipesim <F|N> <program-file>
//
// The first argument selects EX->EX forwarding (F) or no forwarding
// (N); the second names the instruction file to load.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/pipesim/loader"
	"github.com/sarchlab/pipesim/timing/core"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(stderr, "usage: pipesim <F|N> <program-file>")
		return 1
	}

	forwarding, err := parseForwarding(args[0])
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	prog, err := loader.Load(args[1])
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	sim := core.New(prog, forwarding, stdout)
	if err := sim.Run(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}

func parseForwarding(flag string) (bool, error) {
	switch flag {
	case "F":
		return true, nil
	case "N":
		return false, nil
	default:
		return false, fmt.Errorf("pipesim: forwarding selector must be %q or %q, got %q", "F", "N", flag)
	}
}
