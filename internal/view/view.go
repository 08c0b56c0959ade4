// Package view derives what the task list shows from the raw state.
package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/order"
)

// Counts are the number of tasks matching the search in each status
type Counts struct {
	All       int `json:"all"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// Input is everything the visible list depends on
type Input struct {
	Tasks  []models.Task
	Tags   []models.Tag
	Order  order.Order
	Query  string
	Filter models.StatusFilter
}

// Result is the ordered list to render plus the per-status counts
type Result struct {
	Tasks  []models.Task
	Counts Counts
}

// ParseFilter converts user input into a StatusFilter
func ParseFilter(s string) (models.StatusFilter, error) {
	switch f := models.StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case models.FilterAll, models.FilterActive, models.FilterCompleted:
		return f, nil
	case "":
		return models.FilterAll, nil
	}
	return "", fmt.Errorf("unknown status filter %q (must be 'all', 'active', or 'completed')", s)
}

// Derive runs search, status split, filter selection and ordering in that
// order. Counts reflect the search but not the status filter. The input
// slices are not modified.
func Derive(in Input) Result {
	matched := Search(in.Tasks, in.Query)

	var active, completed []models.Task
	for _, t := range matched {
		if t.Completed {
			completed = append(completed, t)
		} else {
			active = append(active, t)
		}
	}

	counts := Counts{
		All:       len(matched),
		Active:    len(active),
		Completed: len(completed),
	}

	var selected []models.Task
	switch in.Filter {
	case models.FilterActive:
		selected = active
	case models.FilterCompleted:
		selected = completed
	default:
		selected = matched
	}

	visible := make([]models.Task, len(selected))
	for i, t := range selected {
		visible[i] = t.Clone()
	}
	slices.SortStableFunc(visible, in.Order.Comparator())

	return Result{Tasks: visible, Counts: counts}
}

// Search keeps tasks whose title contains query, ignoring case
func Search(tasks []models.Task, query string) []models.Task {
	if query == "" {
		return slices.Clone(tasks)
	}
	q := strings.ToLower(query)
	var out []models.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) {
			out = append(out, t)
		}
	}
	return out
}

// IDs returns the IDs of tasks in sequence
func IDs(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
