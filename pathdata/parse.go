package pathdata

import (
	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2/strconv"
)

type scanner struct {
	b   []byte
	pos int
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.b) && isSpace(s.b[s.pos]) {
		s.pos++
	}
}

// skipSeparator consumes whitespace with at most one comma in it
func (s *scanner) skipSeparator() {
	s.skipSpace()
	if s.pos < len(s.b) && s.b[s.pos] == ',' {
		s.pos++
		s.skipSpace()
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.b)
}

func (s *scanner) number() (float64, error) {
	f, n := strconv.ParseFloat(s.b[s.pos:])
	if n == 0 {
		return 0, s.errorf("expected a number")
	}
	s.pos += n
	return f, nil
}

// Arc flags are a single 0 or 1 and need no separator after them
func (s *scanner) flag() (float64, error) {
	if s.eof() {
		return 0, s.errorf("expected an arc flag")
	}
	switch s.b[s.pos] {
	case '0':
		s.pos++
		return 0, nil
	case '1':
		s.pos++
		return 1, nil
	}
	return 0, s.errorf("expected an arc flag")
}

func (s *scanner) errorf(msg string) error {
	return errors.Wrapf(ErrInvalidPath, "%s at offset %d", msg, s.pos)
}

// Parse reads path data. On error the commands read before the error
// are returned along with it, matching how renderers draw a path up
// to the first error.
func Parse(src string) (Path, error) {
	s := &scanner{b: []byte(src)}
	var path Path
	var op byte

	for {
		s.skipSpace()
		if s.eof() {
			return path, nil
		}

		c := s.b[s.pos]
		if ArgCount(c) >= 0 {
			op = c
			s.pos++
		} else if op == 0 {
			return path, s.errorf("path must start with a command")
		} else if ArgCount(op) == 0 {
			return path, s.errorf("unexpected data after closepath")
		}
		if len(path) == 0 && op != 'M' && op != 'm' {
			return path, s.errorf("path must start with a moveto")
		}

		n := ArgCount(op)
		cmd := Command{Op: op}
		if n > 0 {
			cmd.Args = make([]float64, n)
		}
		for i := range n {
			if i > 0 {
				s.skipSeparator()
			} else {
				s.skipSpace()
			}

			var err error
			if (op == 'A' || op == 'a') && (i == 3 || i == 4) {
				cmd.Args[i], err = s.flag()
			} else {
				cmd.Args[i], err = s.number()
			}
			if err != nil {
				return path, err
			}
		}
		path = append(path, cmd)

		if n > 0 {
			s.skipSeparator()
		}
		// coordinates following a moveto are implicit linetos
		switch op {
		case 'M':
			op = 'L'
		case 'm':
			op = 'l'
		}
	}
}

// ParseNumbers reads a list of numbers separated by whitespace and
// optional commas, as found in the points attribute of <polyline> and
// <polygon>. The numbers read before an error are returned with it.
func ParseNumbers(src string) ([]float64, error) {
	s := &scanner{b: []byte(src)}
	var list []float64
	s.skipSpace()
	for !s.eof() {
		f, err := s.number()
		if err != nil {
			return list, err
		}
		list = append(list, f)
		s.skipSeparator()
	}
	return list, nil
}
