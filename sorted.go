package modular

import (
	"fmt"
	"slices"
	"sort"
)

// SortedList keeps its items in non-decreasing order of a caller-supplied key.
// New items are placed by binary search instead of append-then-sort, so the
// list is always ready for ordered iteration. Items with equal keys keep their
// insertion order.
type SortedList[T comparable] struct {
	key   func(T) float64
	items []T
}

// NewSortedList creates an empty list ordered by key.
func NewSortedList[T comparable](key func(T) float64) *SortedList[T] {
	return &SortedList[T]{key: key}
}

// search returns the first index whose key is strictly greater than k.
func (l *SortedList[T]) search(k float64) int {
	return sort.Search(len(l.items), func(i int) bool {
		return l.key(l.items[i]) > k
	})
}

// Insert places item after every existing item with a key <= its own.
func (l *SortedList[T]) Insert(item T) {
	i := l.search(l.key(item))
	l.items = slices.Insert(l.items, i, item)
}

// Remove deletes the first element equal to item.
func (l *SortedList[T]) Remove(item T) error {
	i := l.Index(item)
	if i < 0 {
		return fmt.Errorf("%w: item not in list", ErrStructure)
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

// Fix moves item to the position matching its current key. Call it after the
// key of an already inserted item changed.
func (l *SortedList[T]) Fix(item T) error {
	if err := l.Remove(item); err != nil {
		return err
	}
	l.Insert(item)
	return nil
}

// Index returns the position of item, or -1.
func (l *SortedList[T]) Index(item T) int {
	return slices.Index(l.items, item)
}

// Contains reports whether item is in the list.
func (l *SortedList[T]) Contains(item T) bool {
	return l.Index(item) >= 0
}

// Len returns the number of items.
func (l *SortedList[T]) Len() int {
	return len(l.items)
}

// At returns the item at index i.
func (l *SortedList[T]) At(i int) T {
	return l.items[i]
}

// Items returns a copy of the items in order.
func (l *SortedList[T]) Items() []T {
	return slices.Clone(l.items)
}

// moduleList is an insertion-ordered set of modules: attachment order is
// execution order.
type moduleList[T comparable] struct {
	items []T
}

func (l *moduleList[T]) add(m T) error {
	if slices.Contains(l.items, m) {
		return fmt.Errorf("%w: module already attached", ErrStructure)
	}
	l.items = append(l.items, m)
	return nil
}

func (l *moduleList[T]) remove(m T) error {
	i := slices.Index(l.items, m)
	if i < 0 {
		return fmt.Errorf("%w: module not attached", ErrStructure)
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

func (l *moduleList[T]) has(m T) bool {
	return slices.Contains(l.items, m)
}

func (l *moduleList[T]) snapshot() []T {
	return slices.Clone(l.items)
}
