// Package stack holds the small LIFO containers the parser keeps while
// walking a document.
package stack

// Stack is a slice backed LIFO. The zero value is ready to use.
type Stack[T any] struct {
	items []T
}

func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop discards the top n items, or the top item when n is omitted.
// Popping more items than the stack holds empties it.
func (s *Stack[T]) Pop(n ...int) {
	nn := 1
	if len(n) > 0 {
		nn = n[0]
	}
	if nn <= 0 {
		return
	}
	nn = min(nn, len(s.items))

	var zero T
	for i := len(s.items) - nn; i < len(s.items); i++ {
		s.items[i] = zero
	}
	s.items = s.items[:len(s.items)-nn]

	// give memory back after a deep document has been unwound
	if c := cap(s.items); c > 32 && c > len(s.items)*4 {
		s.items = append([]T(nil), s.items...)
	}
}

// Top returns the most recently pushed item
func (s *Stack[T]) Top() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Backward yields the items from the top of the stack down.
func (s *Stack[T]) Backward(yield func(T) bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if !yield(s.items[i]) {
			return
		}
	}
}
