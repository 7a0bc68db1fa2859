// Package store holds the in-memory, insertion-ordered record collection.
//
// A Store is owned by a single session and is not safe for concurrent use.
// All access goes through its methods so a lock can be added here later
// without touching callers.
package store

import (
	"fmt"

	"tracker/internal/core"
	"tracker/internal/ident"
)

// Keyed is implemented by every record kind the store can hold.
type Keyed[K comparable] interface {
	Key() K
}

type Store[K comparable, R Keyed[K]] struct {
	alloc ident.Allocator[K]
	items []R
}

func New[K comparable, R Keyed[K]](alloc ident.Allocator[K]) *Store[K, R] {
	return &Store[K, R]{alloc: alloc}
}

// Create allocates an identifier, builds the record with it and appends it.
// Nothing is stored when allocation fails.
func (s *Store[K, R]) Create(build func(id K) R) (R, error) {
	var zero R
	id, err := s.alloc.Next(len(s.items))
	if err != nil {
		return zero, fmt.Errorf("allocate id: %w", err)
	}
	r := build(id)
	s.items = append(s.items, r)
	return r, nil
}

// All returns a snapshot of every record in insertion order.
func (s *Store[K, R]) All() []R {
	out := make([]R, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[K, R]) Get(id K) (R, error) {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], nil
	}
	var zero R
	return zero, fmt.Errorf("id %v: %w", id, core.ErrNotFound)
}

// Update runs apply on a copy of the matching record and stores the copy
// only when apply succeeds.
func (s *Store[K, R]) Update(id K, apply func(r *R) error) (R, error) {
	var zero R
	i := s.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("id %v: %w", id, core.ErrNotFound)
	}
	r := s.items[i]
	if err := apply(&r); err != nil {
		return zero, err
	}
	s.items[i] = r
	return r, nil
}

// Delete removes the first record with the given id and returns it.
func (s *Store[K, R]) Delete(id K) (R, error) {
	var zero R
	i := s.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("id %v: %w", id, core.ErrNotFound)
	}
	r := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return r, nil
}

func (s *Store[K, R]) Len() int {
	return len(s.items)
}

func (s *Store[K, R]) indexOf(id K) int {
	for i := range s.items {
		if s.items[i].Key() == id {
			return i
		}
	}
	return -1
}
