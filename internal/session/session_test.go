package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/todo/internal/ids"
	"github.com/tgienger/todo/internal/kv"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/order"
	"github.com/tgienger/todo/internal/persist"
	"github.com/tgienger/todo/internal/store"
	"github.com/tgienger/todo/internal/view"
)

var start = time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	sess    *Session
	backend *kv.Memory
	adapter *persist.Adapter
	clock   *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return openFixture(t, kv.NewMemory())
}

func openFixture(t *testing.T, backend *kv.Memory) *fixture {
	t.Helper()

	clock := start
	n := 0
	st := store.New(
		store.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
		store.WithIDs(ids.Func(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		})),
	)

	adapter := persist.New(backend)
	sess := Open(context.Background(), adapter,
		WithStore(st),
		WithClock(func() time.Time { return clock }),
	)
	return &fixture{sess: sess, backend: backend, adapter: adapter, clock: &clock}
}

func (f *fixture) add(t *testing.T, title string) models.Task {
	t.Helper()
	snap, err := f.sess.AddTask(title, nil)
	require.NoError(t, err)
	for _, task := range snap.VisibleTasks {
		if task.Title == title {
			return task
		}
	}
	t.Fatalf("task %q not visible after add", title)
	return models.Task{}
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestAddTaskShowsNewestFirstAndPersists(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.add(t, "first")
	f.add(t, "second")

	snap := f.sess.View()
	assert.Equal(t, []string{"second", "first"}, titles(snap.VisibleTasks))
	assert.Equal(t, view.Counts{All: 2, Active: 2}, snap.Counts)

	stored := f.adapter.Load(context.Background())
	assert.Len(t, stored.Tasks, 2)
	assert.Equal(t, order.Order{"id-2", "id-1"}, stored.Order)
}

func TestAddTaskValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	snap, err := f.sess.AddTask("   ", nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, snap.VisibleTasks)

	_, ok, _ := f.backend.Get(context.Background(), persist.TasksKey)
	assert.False(t, ok, "nothing persisted on rejected add")
}

func TestSearchAndFilter(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.add(t, "Buy milk")
	mom := f.add(t, "Call mom")
	bread := f.add(t, "Buy bread")

	f.sess.ToggleTask(bread.ID)

	snap := f.sess.SetSearchQuery("buy")
	assert.ElementsMatch(t, []string{"Buy milk", "Buy bread"}, titles(snap.VisibleTasks))
	assert.Equal(t, 2, snap.Counts.All)

	snap = f.sess.SetStatusFilter(models.FilterCompleted)
	assert.Equal(t, []string{"Buy bread"}, titles(snap.VisibleTasks))
	assert.Equal(t, view.Counts{All: 2, Active: 1, Completed: 1}, snap.Counts)

	snap = f.sess.SetStatusFilter("bogus")
	assert.Equal(t, models.FilterCompleted, snap.Filter)

	f.sess.SetSearchQuery("")
	snap = f.sess.SetStatusFilter(models.FilterActive)
	assert.Equal(t, []string{"Call mom", "Buy milk"}, titles(snap.VisibleTasks))
	assert.Equal(t, 3, snap.Statistics.Total)
	assert.NotEmpty(t, mom.ID)
}

func TestReorderUsesVisibleList(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	a := f.add(t, "alpha")
	f.add(t, "beta")
	f.add(t, "gamma")

	snap := f.sess.View()
	require.Equal(t, []string{"gamma", "beta", "alpha"}, titles(snap.VisibleTasks))

	snap = f.sess.Reorder(0, 2)
	assert.Equal(t, []string{"beta", "alpha", "gamma"}, titles(snap.VisibleTasks))

	// Hide alpha, then move gamma to the top: alpha loses its manual slot.
	f.sess.ToggleTask(a.ID)
	f.sess.SetStatusFilter(models.FilterActive)
	snap = f.sess.Reorder(1, 0)
	assert.Equal(t, []string{"gamma", "beta"}, titles(snap.VisibleTasks))
	assert.Equal(t, order.Order{"id-3", "id-2"}, f.sess.Order())

	snap = f.sess.SetStatusFilter(models.FilterAll)
	assert.Equal(t, []string{"gamma", "beta", "alpha"}, titles(snap.VisibleTasks))

	stored := f.adapter.Load(context.Background())
	assert.Equal(t, order.Order{"id-3", "id-2"}, stored.Order)
}

func TestReorderOutOfRangeIsNoOp(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.add(t, "only")
	before := f.sess.Order()

	f.sess.Reorder(0, 3)
	assert.Equal(t, before, f.sess.Order())
}

func TestEditTaskTitle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	task := f.add(t, "draft")

	snap, err := f.sess.EditTaskTitle(task.ID, "  final ")
	require.NoError(t, err)
	assert.Equal(t, []string{"final"}, titles(snap.VisibleTasks))

	snap, err = f.sess.EditTaskTitle(task.ID, " ")
	assert.True(t, IsValidation(err))
	assert.Equal(t, []string{"final"}, titles(snap.VisibleTasks))

	_, err = f.sess.EditTaskTitle("missing", " ")
	assert.NoError(t, err, "unknown id is a silent no-op")
}

func TestTagsPriorityAndDueDate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	task := f.add(t, "plan trip")

	_, work, err := f.sess.CreateTag("work")
	require.NoError(t, err)
	_, _, err = f.sess.CreateTag("")
	assert.True(t, IsValidation(err))

	snap := f.sess.SetTags(task.ID, []string{work.ID, "unknown", work.ID})
	require.Len(t, snap.VisibleTasks, 1)
	assert.Equal(t, []models.Tag{work}, snap.VisibleTasks[0].Tags)
	assert.Equal(t, []models.Tag{work}, snap.AvailableTags)

	snap = f.sess.SetPriority(task.ID, models.PriorityHigh)
	assert.Equal(t, models.PriorityHigh, snap.VisibleTasks[0].Priority)
	assert.Equal(t, 1, snap.Statistics.Priorities.High)

	due := f.clock.Add(-24 * time.Hour)
	snap = f.sess.SetDueDate(task.ID, &due)
	assert.Equal(t, 1, snap.Statistics.Overdue)

	snap = f.sess.SetDueDate(task.ID, nil)
	assert.Nil(t, snap.VisibleTasks[0].DueDate)
	assert.Equal(t, 0, snap.Statistics.Overdue)

	stored := f.adapter.Load(context.Background())
	assert.Equal(t, []models.Tag{work}, stored.Tags)
	assert.Equal(t, models.PriorityHigh, stored.Tasks[0].Priority)
}

func TestDeleteLeavesStaleOrderEntry(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	a := f.add(t, "a")
	f.add(t, "b")

	snap := f.sess.DeleteTask(a.ID)
	assert.Equal(t, []string{"b"}, titles(snap.VisibleTasks))
	assert.Contains(t, f.sess.Order(), a.ID)

	assert.Equal(t, 1, f.sess.Compact())
	assert.NotContains(t, f.sess.Order(), a.ID)
	assert.Equal(t, 0, f.sess.Compact())
}

func TestReopenRestoresState(t *testing.T) {
	t.Parallel()

	backend := kv.NewMemory()
	f := openFixture(t, backend)
	a := f.add(t, "a")
	f.add(t, "b")
	f.sess.Reorder(0, 1)
	f.sess.ToggleTask(a.ID)

	reopened := openFixture(t, backend)
	assert.Equal(t, f.sess.View().VisibleTasks, reopened.sess.View().VisibleTasks)
	assert.Equal(t, f.sess.Order(), reopened.sess.Order())
}

func TestCompactPrunesDeletedTasks(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	keep := f.add(t, "keep")
	gone := f.add(t, "gone")
	f.sess.DeleteTask(gone.ID)

	assert.Equal(t, 1, f.sess.Compact())
	assert.Equal(t, order.Order{keep.ID}, f.sess.Order())
	assert.Equal(t, order.Order{keep.ID}, f.adapter.Load(context.Background()).Order)

	assert.Equal(t, 0, f.sess.Compact())
}

func TestViewIsMemoized(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.add(t, "first")

	before := f.sess.memo.Hits()
	f.sess.View()
	f.sess.View()
	assert.Equal(t, before+2, f.sess.memo.Hits())

	f.add(t, "second")
	hits := f.sess.memo.Hits()
	assert.Len(t, f.sess.View().VisibleTasks, 2)
	assert.Equal(t, hits+1, f.sess.memo.Hits(), "add already derived the new view")
}

func TestNoOpCommandsAreNotPersisted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	task := f.add(t, "only")
	require.NoError(t, f.backend.Delete(ctx, persist.TasksKey))

	version := f.sess.tasksVersion
	f.sess.View()
	hits := f.sess.memo.Hits()

	f.sess.ToggleTask("missing")
	f.sess.DeleteTask("missing")
	f.sess.SetPriority("missing", models.PriorityHigh)
	f.sess.SetPriority(task.ID, models.Priority("urgent"))
	_, err := f.sess.EditTaskTitle(task.ID, "only")
	require.NoError(t, err)

	_, ok, err := f.backend.Get(ctx, persist.TasksKey)
	require.NoError(t, err)
	assert.False(t, ok, "no-op commands must not write the tasks record")
	assert.Equal(t, version, f.sess.tasksVersion)
	assert.Equal(t, hits+5, f.sess.memo.Hits())

	f.sess.ToggleTask(task.ID)
	_, ok, err = f.backend.Get(ctx, persist.TasksKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, version+1, f.sess.tasksVersion)
}
