package svgo

import "fmt"

func (e *ParseError) Error() string {
	prefix := ""
	if e.Path != "" {
		prefix = e.Path + ": "
	}
	return fmt.Sprintf(
		"%s%s at line %d, column %d\n -> '%s' <-- around here",
		prefix,
		e.Err,
		e.LineNumber,
		e.Column,
		e.Line,
	)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
