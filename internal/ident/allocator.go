// Package ident provides identifier allocation strategies for record stores.
//
// Each strategy encapsulates one way of producing the identifier of a new
// record. The store calls Next exactly once per creation and never hands an
// identifier back, even after the record is deleted.
package ident

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPoolExhausted is returned once a Pool has handed out every identifier.
var ErrPoolExhausted = errors.New("identifier pool exhausted")

// Allocator is the strategy interface for identifier allocation.
type Allocator[K comparable] interface {
	// Next returns the identifier for a new record. count is the number of
	// records currently held by the store.
	Next(count int) (K, error)
}

// Strategy names the integer allocators selectable from configuration.
type Strategy string

const (
	StrategyCounter Strategy = "counter"
	StrategyRecount Strategy = "recount"
)

// ParseStrategy validates a configured strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch v := Strategy(strings.ToLower(strings.TrimSpace(s))); v {
	case StrategyCounter, StrategyRecount:
		return v, nil
	default:
		return "", fmt.Errorf("unknown id strategy %q: must be %q or %q", s, StrategyCounter, StrategyRecount)
	}
}

// NewIntAllocator returns the integer allocator for the given strategy.
func NewIntAllocator(s Strategy) (Allocator[int], error) {
	switch s {
	case StrategyCounter:
		return NewCounter(0), nil
	case StrategyRecount:
		return Recount{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", s)
	}
}

// Recount derives the next identifier from the current store size.
//
// Identifiers are unique only while no record has been deleted since the
// store was last empty: deleting id 1 of {1, 2} and creating again yields a
// second 2.
type Recount struct{}

// Next returns count+1.
func (Recount) Next(count int) (int, error) {
	return count + 1, nil
}

// Counter is a strictly increasing integer sequence independent of the
// store size.
type Counter struct {
	last int
}

// NewCounter returns a counter whose first identifier is start+1.
func NewCounter(start int) *Counter {
	return &Counter{last: start}
}

func (c *Counter) Next(_ int) (int, error) {
	c.last++
	return c.last, nil
}

// Pool hands out a finite, ordered set of sequence numbers front to back and
// joins each one with a prefix, e.g. "2025-01-31_7". The pool is never
// replenished.
type Pool struct {
	free   []int
	prefix func() string
}

// NewPool returns a pool holding 1..size. prefix is evaluated on every
// allocation; a nil prefix yields bare sequence numbers.
func NewPool(size int, prefix func() string) *Pool {
	if size < 0 {
		size = 0
	}
	free := make([]int, size)
	for i := range free {
		free[i] = i + 1
	}
	return &Pool{free: free, prefix: prefix}
}

func (p *Pool) Next(_ int) (string, error) {
	if len(p.free) == 0 {
		return "", ErrPoolExhausted
	}
	seq := p.free[0]
	p.free = p.free[1:]
	if p.prefix == nil {
		return fmt.Sprintf("%d", seq), nil
	}
	return fmt.Sprintf("%s_%d", p.prefix(), seq), nil
}

// Remaining reports how many identifiers are left.
func (p *Pool) Remaining() int {
	return len(p.free)
}
