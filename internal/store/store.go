// Package store holds the canonical collection of tasks and tags.
//
// A State is an immutable snapshot: every command returns a new State and
// leaves the receiver untouched, so callers can keep old snapshots around
// and compare them freely. Commands that reference an unknown task ID are
// no-ops and return an equivalent snapshot.
package store

import (
	"fmt"
	"iter"
	"time"

	"github.com/tgienger/todo/internal/ids"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/validation"
)

// Palette is the fixed set of tag colors, assigned in creation order
var Palette = []string{
	"#7aa2f7",
	"#bb9af7",
	"#7dcfff",
	"#9ece6a",
	"#e0af68",
	"#f7768e",
	"#2ac3de",
	"#ff9e64",
}

// ValidationError reports user input that cannot be accepted
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// CheckTitle returns a ValidationError when title is blank after trimming
func CheckTitle(title string) error {
	if validation.NormalizeTitle(title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

// Store creates snapshots with a shared clock and ID generator
type Store struct {
	now func() time.Time
	ids ids.Generator
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for createdAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides the identifier generator
func WithIDs(g ids.Generator) Option {
	return func(s *Store) { s.ids = g }
}

// New creates a Store using the wall clock and random UUIDs unless overridden
func New(opts ...Option) *Store {
	s := &Store{now: time.Now, ids: ids.UUID{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State is an immutable snapshot of tasks and tags
type State struct {
	store *Store
	tasks []models.Task
	tags  []models.Tag
}

// Empty returns a snapshot with no tasks and no tags
func (s *Store) Empty() State {
	return State{store: s}
}

// FromRecords builds a snapshot from already-loaded records
func (s *Store) FromRecords(tasks []models.Task, tags []models.Tag) State {
	st := State{store: s}
	st.tasks = make([]models.Task, len(tasks))
	for i, t := range tasks {
		st.tasks[i] = t.Clone()
	}
	st.tags = append([]models.Tag(nil), tags...)
	return st
}

// Same reports whether other is st itself or an unchanged copy of it, as
// returned by a command that was a no-op
func (st State) Same(other State) bool {
	return sameBacking(st.tasks, other.tasks) && sameBacking(st.tags, other.tags)
}

func sameBacking[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// All iterates the stored tasks in insertion order without copying them.
// Yielded tasks share their tags and due date with the snapshot and must
// not be modified.
func (st State) All() iter.Seq[models.Task] {
	return func(yield func(models.Task) bool) {
		for _, t := range st.tasks {
			if !yield(t) {
				return
			}
		}
	}
}

// Tasks returns a copy of the tasks in insertion order
func (st State) Tasks() []models.Task {
	out := make([]models.Task, len(st.tasks))
	for i, t := range st.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Tags returns a copy of the tags in creation order
func (st State) Tags() []models.Tag {
	return append([]models.Tag{}, st.tags...)
}

// Task looks up a task by ID
func (st State) Task(id string) (models.Task, bool) {
	i := st.index(id)
	if i < 0 {
		return models.Task{}, false
	}
	return st.tasks[i].Clone(), true
}

// TagsByID resolves tag IDs to tags, skipping unknown IDs
func (st State) TagsByID(tagIDs []string) []models.Tag {
	var out []models.Tag
	for _, id := range tagIDs {
		for _, tag := range st.tags {
			if tag.ID == id {
				out = append(out, tag)
				break
			}
		}
	}
	return out
}

func (st State) index(id string) int {
	for i := range st.tasks {
		if st.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// update copies the task slice and applies fn to the task with the given ID
func (st State) update(id string, fn func(*models.Task)) State {
	i := st.index(id)
	if i < 0 {
		return st
	}
	tasks := make([]models.Task, len(st.tasks))
	copy(tasks, st.tasks)
	t := tasks[i].Clone()
	fn(&t)
	tasks[i] = t
	return State{store: st.store, tasks: tasks, tags: st.tags}
}

// Add appends a new task and returns it
func (st State) Add(title string, dueDate *time.Time) (State, models.Task, error) {
	if err := CheckTitle(title); err != nil {
		return st, models.Task{}, err
	}
	title = validation.NormalizeTitle(title)

	task := models.Task{
		ID:        st.store.ids.NewID(),
		Title:     title,
		CreatedAt: st.store.now(),
		Priority:  models.PriorityMedium,
		Tags:      []models.Tag{},
	}
	if dueDate != nil {
		due := *dueDate
		task.DueDate = &due
	}

	tasks := make([]models.Task, len(st.tasks), len(st.tasks)+1)
	copy(tasks, st.tasks)
	tasks = append(tasks, task)
	return State{store: st.store, tasks: tasks, tags: st.tags}, task.Clone(), nil
}

// Toggle flips the completed flag of a task
func (st State) Toggle(id string) State {
	return st.update(id, func(t *models.Task) {
		t.Completed = !t.Completed
	})
}

// Delete removes a task
func (st State) Delete(id string) State {
	i := st.index(id)
	if i < 0 {
		return st
	}
	tasks := make([]models.Task, 0, len(st.tasks)-1)
	tasks = append(tasks, st.tasks[:i]...)
	tasks = append(tasks, st.tasks[i+1:]...)
	return State{store: st.store, tasks: tasks, tags: st.tags}
}

// Edit replaces a task title. Blank or unchanged titles leave the task as is.
func (st State) Edit(id, title string) State {
	title = validation.NormalizeTitle(title)
	if title == "" {
		return st
	}
	if t, ok := st.Task(id); !ok || t.Title == title {
		return st
	}
	return st.update(id, func(t *models.Task) {
		t.Title = title
	})
}

// SetPriority changes a task priority. Unknown priorities are ignored.
func (st State) SetPriority(id string, p models.Priority) State {
	if !p.Valid() {
		return st
	}
	return st.update(id, func(t *models.Task) {
		t.Priority = p
	})
}

// SetDueDate sets or clears (nil) a task due date
func (st State) SetDueDate(id string, dueDate *time.Time) State {
	return st.update(id, func(t *models.Task) {
		if dueDate == nil {
			t.DueDate = nil
			return
		}
		due := *dueDate
		t.DueDate = &due
	})
}

// SetTags replaces the tags on a task; duplicate tag IDs keep the first one
func (st State) SetTags(id string, tags []models.Tag) State {
	return st.update(id, func(t *models.Task) {
		t.Tags = UniqueTags(tags)
	})
}

// CreateTag appends a new tag colored from the palette
func (st State) CreateTag(name string) (State, models.Tag, error) {
	name = validation.NormalizeTitle(name)
	if name == "" {
		return st, models.Tag{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	tag := models.Tag{
		ID:    st.store.ids.NewID(),
		Name:  name,
		Color: Palette[len(st.tags)%len(Palette)],
	}

	tags := make([]models.Tag, len(st.tags), len(st.tags)+1)
	copy(tags, st.tags)
	tags = append(tags, tag)
	return State{store: st.store, tasks: st.tasks, tags: tags}, tag, nil
}

// UniqueTags returns tags with duplicate IDs removed, preserving order
func UniqueTags(tags []models.Tag) []models.Tag {
	out := make([]models.Tag, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true
		out = append(out, tag)
	}
	return out
}
