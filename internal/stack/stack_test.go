package stack_test

import (
	"testing"

	"github.com/lestrrat-go/svgo/internal/stack"
	"github.com/stretchr/testify/require"
)

func TestStack(t *testing.T) {
	var s stack.Stack[string]
	_, ok := s.Top()
	require.False(t, ok, "empty stack has no top")

	for _, v := range []string{"svg", "g", "path"} {
		s.Push(v)
	}
	top, ok := s.Top()
	require.True(t, ok)
	require.Equal(t, "path", top)

	var order []string
	for v := range s.Backward {
		order = append(order, v)
	}
	require.Equal(t, []string{"path", "g", "svg"}, order)

	s.Pop()
	top, _ = s.Top()
	require.Equal(t, "g", top)

	s.Pop(0)
	require.Equal(t, 2, s.Len(), "Pop(0) is a no-op")

	s.Pop(5)
	require.Equal(t, 0, s.Len(), "popping past the bottom empties the stack")
}

func TestStackShrinks(t *testing.T) {
	var s stack.Stack[int]
	for i := range 1000 {
		s.Push(i)
	}
	s.Pop(999)
	require.Equal(t, 1, s.Len())
	top, _ := s.Top()
	require.Equal(t, 0, top)
	s.Push(7)
	top, _ = s.Top()
	require.Equal(t, 7, top)
}
