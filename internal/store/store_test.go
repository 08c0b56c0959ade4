package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/todo/internal/ids"
	"github.com/tgienger/todo/internal/models"
)

var baseTime = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

// newTestStore returns a store with a deterministic clock and sequential IDs
func newTestStore() *Store {
	n := 0
	return New(
		WithClock(func() time.Time { return baseTime.Add(time.Duration(n) * time.Minute) }),
		WithIDs(ids.Func(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		})),
	)
}

func mustAdd(t *testing.T, st State, title string) (State, models.Task) {
	t.Helper()
	next, task, err := st.Add(title, nil)
	require.NoError(t, err)
	return next, task
}

func TestAdd(t *testing.T) {
	t.Parallel()

	st := newTestStore().Empty()
	due := baseTime.Add(48 * time.Hour)

	next, task, err := st.Add("  Buy milk  ", &due)
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", task.Title)
	assert.False(t, task.Completed)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Empty(t, task.Tags)
	assert.NotEmpty(t, task.ID)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(due))

	assert.Len(t, next.Tasks(), 1)
	assert.Empty(t, st.Tasks(), "original snapshot must not change")
}

func TestAddRejectsBlankTitle(t *testing.T) {
	t.Parallel()

	tests := []string{"", " ", "\t\n  "}
	for _, title := range tests {
		t.Run(fmt.Sprintf("%q", title), func(t *testing.T) {
			t.Parallel()

			st, _ := mustAdd(t, newTestStore().Empty(), "existing")
			next, _, err := st.Add(title, nil)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "title", verr.Field)
			assert.Equal(t, st.Tasks(), next.Tasks())
		})
	}
}

func TestAddThenDeleteRestoresCollection(t *testing.T) {
	t.Parallel()

	st := newTestStore().Empty()
	st, _ = mustAdd(t, st, "one")
	st, _ = mustAdd(t, st, "two")
	before := st.Tasks()

	added, task := mustAdd(t, st, "three")
	restored := added.Delete(task.ID)

	assert.Equal(t, before, restored.Tasks())
}

func TestToggleTwiceRestores(t *testing.T) {
	t.Parallel()

	st, task := mustAdd(t, newTestStore().Empty(), "task")

	once := st.Toggle(task.ID)
	got, _ := once.Task(task.ID)
	assert.True(t, got.Completed)

	twice := once.Toggle(task.ID)
	got, _ = twice.Task(task.ID)
	assert.False(t, got.Completed)

	orig, _ := st.Task(task.ID)
	assert.False(t, orig.Completed, "toggle must not mutate prior snapshot")
}

func TestUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	st, _ := mustAdd(t, newTestStore().Empty(), "task")
	due := baseTime

	tests := []struct {
		name string
		fn   func(State) State
	}{
		{"toggle", func(s State) State { return s.Toggle("missing") }},
		{"delete", func(s State) State { return s.Delete("missing") }},
		{"edit", func(s State) State { return s.Edit("missing", "new") }},
		{"priority", func(s State) State { return s.SetPriority("missing", models.PriorityHigh) }},
		{"due", func(s State) State { return s.SetDueDate("missing", &due) }},
		{"tags", func(s State) State { return s.SetTags("missing", []models.Tag{{ID: "x"}}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			next := tt.fn(st)
			assert.Equal(t, st.Tasks(), next.Tasks())
			assert.True(t, st.Same(next))
		})
	}
}

func TestSame(t *testing.T) {
	t.Parallel()

	empty := newTestStore().Empty()
	st, task := mustAdd(t, empty, "task")

	assert.True(t, empty.Same(empty))
	assert.False(t, empty.Same(st))
	assert.True(t, st.Same(st.SetPriority(task.ID, models.Priority("urgent"))))
	assert.True(t, st.Same(st.Edit(task.ID, "task")))
	assert.False(t, st.Same(st.Toggle(task.ID)), "a change copies the tasks")
	assert.False(t, st.Same(st.Toggle(task.ID).Toggle(task.ID)), "equal content is still a new snapshot")

	tagged, _, err := st.CreateTag("work")
	require.NoError(t, err)
	assert.False(t, st.Same(tagged))
}

func TestAllYieldsTasksInOrder(t *testing.T) {
	t.Parallel()

	st, _ := mustAdd(t, newTestStore().Empty(), "first")
	st, _ = mustAdd(t, st, "second")

	var got []string
	for task := range st.All() {
		got = append(got, task.Title)
	}
	assert.Equal(t, []string{"first", "second"}, got)

	for range st.All() {
		break
	}
}

func TestEdit(t *testing.T) {
	t.Parallel()

	st, task := mustAdd(t, newTestStore().Empty(), "Old title")

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"new title", "  New title ", "New title"},
		{"blank keeps original", "   ", "Old title"},
		{"same title", "Old title", "Old title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := st.Edit(task.ID, tt.title).Task(task.ID)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Title)
		})
	}
}

func TestSetPriority(t *testing.T) {
	t.Parallel()

	st, task := mustAdd(t, newTestStore().Empty(), "task")

	high, _ := st.SetPriority(task.ID, models.PriorityHigh).Task(task.ID)
	assert.Equal(t, models.PriorityHigh, high.Priority)

	bogus, _ := st.SetPriority(task.ID, "urgent").Task(task.ID)
	assert.Equal(t, models.PriorityMedium, bogus.Priority)
}

func TestSetDueDate(t *testing.T) {
	t.Parallel()

	st, task := mustAdd(t, newTestStore().Empty(), "task")
	due := baseTime.Add(72 * time.Hour)

	withDue := st.SetDueDate(task.ID, &due)
	got, _ := withDue.Task(task.ID)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))

	due = due.Add(time.Hour)
	got, _ = withDue.Task(task.ID)
	assert.True(t, got.DueDate.Equal(baseTime.Add(72*time.Hour)), "caller's pointer must not alias the snapshot")

	cleared, _ := withDue.SetDueDate(task.ID, nil).Task(task.ID)
	assert.Nil(t, cleared.DueDate)
}

func TestCreateTagAndSetTags(t *testing.T) {
	t.Parallel()

	st, task := mustAdd(t, newTestStore().Empty(), "task")

	st, work, err := st.CreateTag(" work ")
	require.NoError(t, err)
	st, home, err := st.CreateTag("home")
	require.NoError(t, err)

	assert.Equal(t, "work", work.Name)
	assert.Equal(t, Palette[0], work.Color)
	assert.Equal(t, Palette[1], home.Color)

	st = st.SetTags(task.ID, []models.Tag{work, home, work})
	got, _ := st.Task(task.ID)
	assert.Equal(t, []models.Tag{work, home}, got.Tags)
	assert.True(t, got.HasTag(home.ID))

	assert.Equal(t, []models.Tag{home}, st.TagsByID([]string{home.ID, "missing"}))
}

func TestCreateTagRejectsBlankName(t *testing.T) {
	t.Parallel()

	st := newTestStore().Empty()
	next, _, err := st.CreateTag("  ")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Empty(t, next.Tags())
}

func TestTagColorsCycle(t *testing.T) {
	t.Parallel()

	st := newTestStore().Empty()
	var err error
	for i := 0; i < len(Palette)+2; i++ {
		st, _, err = st.CreateTag(fmt.Sprintf("tag%d", i))
		require.NoError(t, err)
	}

	tags := st.Tags()
	assert.Equal(t, Palette[0], tags[len(Palette)].Color)
	assert.Equal(t, Palette[1], tags[len(Palette)+1].Color)
}

func TestFromRecordsCopiesInput(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{{ID: "a", Title: "A", Priority: models.PriorityLow, Tags: []models.Tag{}}}
	st := newTestStore().FromRecords(tasks, nil)

	tasks[0].Title = "changed"
	got, ok := st.Task("a")
	require.True(t, ok)
	assert.Equal(t, "A", got.Title)
}
