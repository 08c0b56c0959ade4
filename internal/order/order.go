// Package order tracks the user's manual placement of tasks.
//
// The order is a sequence of task IDs kept separately from the task
// collection. IDs of deleted tasks may remain in it; they are ignored when
// resolving positions.
package order

import (
	"slices"

	"github.com/tgienger/todo/internal/models"
)

// Order is a sequence of task IDs, first displayed first
type Order []string

// RecordNew places a newly created task at the front
func (o Order) RecordNew(id string) Order {
	next := make(Order, 0, len(o)+1)
	next = append(next, id)
	return append(next, o...)
}

// Reorder moves the item at from to to within the visible sequence and
// returns that rearranged sequence as the new order. Tasks not in visible
// lose their manual position.
func (o Order) Reorder(visible []string, from, to int) Order {
	if from < 0 || from >= len(visible) || to < 0 || to >= len(visible) || from == to {
		return o
	}

	next := make(Order, 0, len(visible))
	next = append(next, visible...)

	moved := next[from]
	next = slices.Delete(next, from, from+1)
	return slices.Insert(next, to, moved)
}

// Prune drops IDs that are not in existing
func (o Order) Prune(existing []models.Task) Order {
	keep := make(map[string]bool, len(existing))
	for _, t := range existing {
		keep[t.ID] = true
	}
	next := make(Order, 0, len(o))
	for _, id := range o {
		if keep[id] {
			next = append(next, id)
		}
	}
	return next
}

// Index maps each ID to its first position in the order
func (o Order) Index() map[string]int {
	idx := make(map[string]int, len(o))
	for i, id := range o {
		if _, ok := idx[id]; !ok {
			idx[id] = i
		}
	}
	return idx
}

// Comparator returns a sort function implementing the display rule: tasks
// with a manual position come first in that order, the rest follow newest
// first.
func (o Order) Comparator() func(a, b models.Task) int {
	idx := o.Index()
	return func(a, b models.Task) int {
		ia, okA := idx[a.ID]
		ib, okB := idx[b.ID]
		switch {
		case okA && okB:
			return ia - ib
		case okA:
			return -1
		case okB:
			return 1
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	}
}

// Compare orders two tasks by the display rule
func (o Order) Compare(a, b models.Task) int {
	return o.Comparator()(a, b)
}

// Equal reports whether two orders hold the same IDs in the same sequence
func (o Order) Equal(other Order) bool {
	return slices.Equal(o, other)
}
