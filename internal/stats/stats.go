// Package stats computes aggregate metrics over the whole task collection.
package stats

import (
	"iter"
	"math"
	"slices"
	"time"

	"github.com/tgienger/todo/internal/models"
)

// DueSoonDays is how many whole days ahead a due date counts as due soon
const DueSoonDays = 3

// PriorityCounts is the number of tasks at each priority
type PriorityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Statistics summarizes a task collection
type Statistics struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Active         int            `json:"active"`
	CompletionRate float64        `json:"completionRate"` // percent, 0-100
	Priorities     PriorityCounts `json:"priorities"`
	DueSoon        int            `json:"dueSoon"`
	Overdue        int            `json:"overdue"`
}

// Compute derives statistics for tasks as of now
func Compute(tasks []models.Task, now time.Time) Statistics {
	return ComputeAll(slices.Values(tasks), now)
}

// ComputeAll is Compute over a task sequence
func ComputeAll(tasks iter.Seq[models.Task], now time.Time) Statistics {
	var s Statistics

	for t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		}

		switch t.Priority {
		case models.PriorityHigh:
			s.Priorities.High++
		case models.PriorityMedium:
			s.Priorities.Medium++
		case models.PriorityLow:
			s.Priorities.Low++
		}

		if t.Completed || t.DueDate == nil {
			continue
		}
		if days := DaysUntil(*t.DueDate, now); days >= 0 && days <= DueSoonDays {
			s.DueSoon++
		}
		if t.DueDate.Before(now) {
			s.Overdue++
		}
	}

	s.Active = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}

// DaysUntil is the number of days from now to due, rounded up. A due date
// earlier today yields 0.
func DaysUntil(due, now time.Time) int {
	days := math.Ceil(due.Sub(now).Hours() / 24)
	if days == 0 {
		// normalize -0
		return 0
	}
	return int(days)
}
