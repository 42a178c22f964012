// Package core wires the register file, the pipeline scheduler, and
// the renderer into one simulation run: the single place that owns
// every piece of state for the duration of a program.
package core

import (
	"io"

	"github.com/sarchlab/pipesim/emu"
	"github.com/sarchlab/pipesim/loader"
	"github.com/sarchlab/pipesim/render"
	"github.com/sarchlab/pipesim/timing/pipeline"
)

// Simulator drives a single simulation run: a program, a register
// file, and the scheduler that advances them cycle by cycle, emitting
// the pipeline diagram and register dump to w after every cycle.
type Simulator struct {
	regs       *emu.RegisterFile
	scheduler  *pipeline.Scheduler
	forwarding bool
	out        io.Writer
}

// New creates a Simulator for program, writing its output to w.
// forwarding selects EX->EX forwarding (true) or no forwarding
// (false).
func New(program *loader.Program, forwarding bool, w io.Writer) *Simulator {
	regs := emu.NewRegisterFile()
	return &Simulator{
		regs:       regs,
		scheduler:  pipeline.NewScheduler(program, regs, forwarding),
		forwarding: forwarding,
		out:        w,
	}
}

// Registers returns the simulator's register file, for inspecting
// final values after Run.
func (s *Simulator) Registers() *emu.RegisterFile {
	return s.regs
}

// Run executes the simulation until the issued program retires or the
// cycle cap (pipeline.CycleCap) is reached, writing the start banner,
// one block per cycle, and the end banner to the Simulator's writer.
func (s *Simulator) Run() error {
	render.WriteStartBanner(s.out, s.forwarding)

	for cycle := 0; cycle < pipeline.CycleCap; cycle++ {
		if err := s.scheduler.Tick(); err != nil {
			return err
		}
		render.WriteCycle(s.out, s.scheduler.Rows(), s.regs)
		if s.scheduler.Finished() {
			break
		}
	}

	render.WriteEndBanner(s.out)
	return nil
}
