package svgo

import "github.com/lestrrat-go/svgo/internal/stack"

// frameStack tracks the open elements while parsing
type frameStack struct {
	frames stack.Stack[*elementFrame]
}

func (s *frameStack) Push(f *elementFrame) {
	s.frames.Push(f)
}

// Pop removes and returns the innermost open element
func (s *frameStack) Pop() *elementFrame {
	f := s.PeekOne()
	s.frames.Pop()
	return f
}

func (s *frameStack) PeekOne() *elementFrame {
	f, _ := s.frames.Top()
	return f
}
