package orderedmap

import (
	"errors"
	"iter"
	"slices"
)

var ErrDuplicateEntry = errors.New("duplicate entry")
var ErrEntryNotFound = errors.New("entry not found")

// Map is a map that remembers the order in which keys were inserted.
// Keys are unique.
type Map[K comparable, V any] struct {
	entries []K
	keys    map[K]V
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		entries: make([]K, 0),
		keys:    make(map[K]V),
	}
}

// Set appends a new entry. It fails if the key is already present.
func (m *Map[K, V]) Set(key K, value V) error {
	_, exists := m.keys[key]
	if exists {
		return ErrDuplicateEntry
	}
	m.entries = append(m.entries, key)
	m.keys[key] = value
	return nil
}

// Put replaces the value of an existing entry in place, or appends
// a new entry at the end.
func (m *Map[K, V]) Put(key K, value V) {
	if _, exists := m.keys[key]; !exists {
		m.entries = append(m.entries, key)
	}
	m.keys[key] = value
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.keys[key]
	return v, ok
}

func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.keys[key]
	return ok
}

// Delete removes the entry. It reports whether the key was present.
func (m *Map[K, V]) Delete(key K) bool {
	if _, exists := m.keys[key]; !exists {
		return false
	}
	delete(m.keys, key)
	if i := slices.Index(m.entries, key); i >= 0 {
		m.entries = slices.Delete(m.entries, i, i+1)
	}
	return true
}

// Rename changes the key of an entry without moving it.
func (m *Map[K, V]) Rename(from, to K) error {
	v, exists := m.keys[from]
	if !exists {
		return ErrEntryNotFound
	}
	if from == to {
		return nil
	}
	if _, exists := m.keys[to]; exists {
		return ErrDuplicateEntry
	}
	delete(m.keys, from)
	m.keys[to] = v
	m.entries[slices.Index(m.entries, from)] = to
	return nil
}

// SortFunc reorders the entries. The sort is stable.
func (m *Map[K, V]) SortFunc(cmp func(a, b K) int) {
	slices.SortStableFunc(m.entries, cmp)
}

func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

func (m *Map[K, V]) Keys() []K {
	return slices.Clone(m.entries)
}

func (m *Map[K, V]) Range() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.entries {
			v := m.keys[k]
			if !yield(k, v) {
				break
			}
		}
	}
}
