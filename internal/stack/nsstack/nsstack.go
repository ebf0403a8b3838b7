// Package nsstack tracks the namespace prefixes declared by the
// elements that are open while a document is parsed.
package nsstack

import "github.com/lestrrat-go/svgo/internal/stack"

type binding struct {
	prefix string
	uri    string
}

// Stack holds the bindings in scope. Later bindings shadow earlier ones
// with the same prefix; the default namespace is bound to "".
type Stack struct {
	bindings stack.Stack[binding]
}

func New() Stack {
	return Stack{}
}

func (s *Stack) Push(prefix, uri string) {
	s.bindings.Push(binding{prefix: prefix, uri: uri})
}

// Pop removes the n most recent bindings, one when n is omitted
func (s *Stack) Pop(n ...int) {
	s.bindings.Pop(n...)
}

func (s *Stack) Len() int {
	return s.bindings.Len()
}

// Lookup returns the URI bound to prefix, searching from the most
// recent binding.
func (s *Stack) Lookup(prefix string) (string, bool) {
	for b := range s.bindings.Backward {
		if b.prefix == prefix {
			return b.uri, true
		}
	}
	return "", false
}
