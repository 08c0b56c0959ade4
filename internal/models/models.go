package models

import "time"

// Priority is the urgency of a task
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority from most to least urgent
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Next cycles high -> medium -> low -> high
func (p Priority) Next() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// StatusFilter selects which tasks the list shows
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// Tag represents a colored label that can be applied to tasks
type Tag struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}

// Task represents a single to-do item
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title" validate:"required"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"createdAt"`
	DueDate   *time.Time `json:"dueDate"`
	Priority  Priority   `json:"priority" validate:"priority"`
	Tags      []Tag      `json:"tags"`
}

// HasTag reports whether the task carries the tag with the given ID
func (t Task) HasTag(tagID string) bool {
	for _, tag := range t.Tags {
		if tag.ID == tagID {
			return true
		}
	}
	return false
}

// Clone returns a copy of the task that shares no slices or pointers with t
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	c.Tags = append([]Tag{}, t.Tags...)
	return c
}
