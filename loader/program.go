// Package loader reads a source program: a text file of one
// instruction or label per line, split into a label-free instruction
// sequence and a label-to-index table.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/pipesim/insts"
)

// MaxInstructions is the largest instruction sequence accepted from
// source (spec §6.2: at most 10 instruction lines).
const MaxInstructions = 10

// ErrTooManyInstructions is returned when the source has more than
// MaxInstructions instruction lines.
var ErrTooManyInstructions = errors.New("loader: too many instructions")

// ErrDuplicateLabel is returned when the same label is defined twice.
var ErrDuplicateLabel = errors.New("loader: duplicate label")

// Program is the loaded, label-free instruction sequence plus the
// label-to-index table the branch resolver consults.
type Program struct {
	Instructions []insts.Instruction
	Labels       map[string]int
}

// Load reads the file at path and decodes it into a Program.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: cannot open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read decodes a Program from r. bufio.Scanner's default line split
// strips both "\n" and a preceding "\r", so CRLF, bare LF, and a
// trailing line with no newline are all accepted uniformly.
func Read(r io.Reader) (*Program, error) {
	prog := &Program{Labels: make(map[string]int)}
	decoder := insts.NewDecoder()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, ":") {
			label := strings.TrimSuffix(line, ":")
			if _, dup := prog.Labels[label]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
			}
			prog.Labels[label] = len(prog.Instructions)
			continue
		}

		inst, err := decoder.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("loader: line %q: %w", line, err)
		}

		if len(prog.Instructions) >= MaxInstructions {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyInstructions, MaxInstructions)
		}
		prog.Instructions = append(prog.Instructions, inst)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: read error: %w", err)
	}

	return prog, nil
}
