// Package pathdata reads and writes the path mini-language used by
// the d attribute of <path> elements.
package pathdata

import "github.com/pkg/errors"

// DefaultPrecision is the number of decimals kept when a path is
// formatted without an explicit precision.
const DefaultPrecision = 3

var ErrInvalidPath = errors.New("invalid path data")

// Command is a single path segment. Op is the command letter as it
// appears in the source: upper case for absolute coordinates, lower
// case for relative ones.
type Command struct {
	Op   byte
	Args []float64
}

// Path is a sequence of commands. Implicit repetitions found in the
// source are expanded, so every Command carries exactly ArgCount(Op)
// arguments.
type Path []Command

// ArgCount returns the number of arguments a command takes, or -1 if
// op is not a path command.
func ArgCount(op byte) int {
	switch op {
	case 'M', 'm', 'L', 'l', 'T', 't':
		return 2
	case 'H', 'h', 'V', 'v':
		return 1
	case 'C', 'c':
		return 6
	case 'S', 's', 'Q', 'q':
		return 4
	case 'A', 'a':
		return 7
	case 'Z', 'z':
		return 0
	}
	return -1
}

// IsAbsolute reports whether the command uses absolute coordinates.
func (c Command) IsAbsolute() bool {
	return 'A' <= c.Op && c.Op <= 'Z'
}

func M(x, y float64) Command {
	return Command{Op: 'M', Args: []float64{x, y}}
}

func L(x, y float64) Command {
	return Command{Op: 'L', Args: []float64{x, y}}
}

// A is an absolute elliptical arc
func A(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) Command {
	return Command{Op: 'A', Args: []float64{rx, ry, rotation, flag(largeArc), flag(sweep), x, y}}
}

func Z() Command {
	return Command{Op: 'z'}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
