// Package render formats the pipeline diagram and register dump that
// follow every simulated cycle, plus the start/end banners.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/pipesim/emu"
	"github.com/sarchlab/pipesim/timing/pipeline"
)

const (
	separatorWidth = 82
	textColumn     = 20
	stageColumn    = 4
)

// WriteStartBanner writes the simulation's opening banner, naming the
// forwarding mode in effect.
func WriteStartBanner(w io.Writer, forwarding bool) {
	if forwarding {
		fmt.Fprintln(w, "START OF SIMULATION (forwarding)")
	} else {
		fmt.Fprintln(w, "START OF SIMULATION (no forwarding)")
	}
}

// WriteEndBanner writes the simulation's closing banner.
func WriteEndBanner(w io.Writer) {
	fmt.Fprintln(w, "END OF SIMULATION")
}

// WriteCycle writes one cycle's block: the separator, the pipeline
// table for rows, and the register dump for regs.
func WriteCycle(w io.Writer, rows []pipeline.RowView, regs *emu.RegisterFile) {
	fmt.Fprintln(w, strings.Repeat("-", separatorWidth))
	writeHeader(w)
	for _, row := range rows {
		writeRow(w, row)
	}
	fmt.Fprintln(w)
	writeRegisters(w, regs)
}

func writeHeader(w io.Writer) {
	fmt.Fprintf(w, "%-*s", textColumn, "CPU Cycles ===>")
	for c := 1; c <= pipeline.CycleCap; c++ {
		writeStageField(w, strconv.Itoa(c), c == pipeline.CycleCap)
	}
	fmt.Fprintln(w)
}

func writeRow(w io.Writer, row pipeline.RowView) {
	fmt.Fprintf(w, "%-*s", textColumn, row.Text)
	for c := 1; c <= pipeline.CycleCap; c++ {
		writeStageField(w, row.Stages[c].String(), c == pipeline.CycleCap)
	}
	fmt.Fprintln(w)
}

func writeStageField(w io.Writer, text string, last bool) {
	if last {
		fmt.Fprint(w, text)
		return
	}
	fmt.Fprintf(w, "%-*s", stageColumn, text)
}

// writeRegisters prints $s0..$s7 then $t0..$t9, four per row. The
// wrap condition on the $t loop reproduces a quirk of the reference
// implementation's register dump: it terminates a row either every
// fourth register (counting $s8 registers already printed) or
// unconditionally after the very last $t register, so the final
// short row still ends in a newline.
func writeRegisters(w io.Writer, regs *emu.RegisterFile) {
	for i := 0; i < emu.SCount; i++ {
		text := fmt.Sprintf("$s%d = %d", i, regs.SValue(i))
		writeRegisterField(w, text, i%4 == 3)
	}
	for i := 0; i < emu.TCount; i++ {
		text := fmt.Sprintf("$t%d = %d", i, regs.TValue(i))
		writeRegisterField(w, text, (i+emu.SCount)%4 == 3 || i == emu.TCount-1)
	}
}

func writeRegisterField(w io.Writer, text string, terminate bool) {
	if terminate {
		fmt.Fprintln(w, text)
		return
	}
	fmt.Fprintf(w, "%-*s", textColumn, text)
}
