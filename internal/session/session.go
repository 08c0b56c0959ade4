// Package session is the command interface the user interface drives.
//
// A Session holds the current task snapshot, the manual order, and the
// search and filter settings. Each command applies one transition, mirrors
// the changed records to storage, and returns the freshly derived view.
// Commands must be issued from a single goroutine.
package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/order"
	"github.com/tgienger/todo/internal/persist"
	"github.com/tgienger/todo/internal/stats"
	"github.com/tgienger/todo/internal/store"
	"github.com/tgienger/todo/internal/view"
)

// Snapshot is everything the user interface renders
type Snapshot struct {
	VisibleTasks  []models.Task
	Counts        view.Counts
	AvailableTags []models.Tag
	Statistics    stats.Statistics
	Query         string
	Filter        models.StatusFilter
}

// Persister is the storage side of a session
type Persister interface {
	Load(ctx context.Context) persist.Snapshot
	SaveTasks(ctx context.Context, tasks []models.Task)
	SaveTags(ctx context.Context, tags []models.Tag)
	SaveOrder(ctx context.Context, ord order.Order)
}

// Session owns the current state
type Session struct {
	ctx       context.Context
	store     *store.Store
	persister Persister
	logger    *zap.Logger
	now       func() time.Time

	state  store.State
	order  order.Order
	query  string
	filter models.StatusFilter

	tasksVersion uint64
	orderVersion uint64
	memo         view.Memo
}

// Option configures a Session
type Option func(*Session)

// WithStore sets the store used to build snapshots (clock and IDs)
func WithStore(s *store.Store) Option {
	return func(sess *Session) { sess.store = s }
}

// WithClock sets the time source used for statistics
func WithClock(now func() time.Time) Option {
	return func(sess *Session) { sess.now = now }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(sess *Session) { sess.logger = logger }
}

// Open loads persisted state and returns a ready Session
func Open(ctx context.Context, persister Persister, opts ...Option) *Session {
	s := &Session{
		ctx:       ctx,
		store:     store.New(),
		persister: persister,
		logger:    zap.NewNop(),
		now:       time.Now,
		filter:    models.FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap := persister.Load(ctx)
	s.state = s.store.FromRecords(snap.Tasks, snap.Tags)
	s.order = snap.Order

	s.logger.Info("session opened",
		zap.Int("tasks", len(snap.Tasks)),
		zap.Int("tags", len(snap.Tags)),
		zap.Int("order_entries", len(snap.Order)),
	)
	return s
}

// View derives the current snapshot without changing anything
func (s *Session) View() Snapshot {
	key := view.Key{
		TasksVersion: s.tasksVersion,
		OrderVersion: s.orderVersion,
		Query:        s.query,
		Filter:       s.filter,
	}
	res := s.memo.Derive(key, func() view.Input {
		return view.Input{
			Tasks:  s.state.Tasks(),
			Tags:   s.state.Tags(),
			Order:  s.order,
			Query:  s.query,
			Filter: s.filter,
		}
	})

	return Snapshot{
		VisibleTasks:  res.Tasks,
		Counts:        res.Counts,
		AvailableTags: s.state.Tags(),
		Statistics:    stats.ComputeAll(s.state.All(), s.now()),
		Query:         s.query,
		Filter:        s.filter,
	}
}

// State returns the current task snapshot
func (s *Session) State() store.State {
	return s.state
}

// Order returns the current manual order
func (s *Session) Order() order.Order {
	return append(order.Order(nil), s.order...)
}

// commitTasks installs next and persists it. No-op commands return the
// current snapshot unchanged and are not written.
func (s *Session) commitTasks(next store.State) {
	if next.Same(s.state) {
		return
	}
	s.state = next
	s.tasksVersion++
	s.persister.SaveTasks(s.ctx, next.Tasks())
}

func (s *Session) commitOrder(next order.Order) {
	s.order = next
	s.orderVersion++
	s.persister.SaveOrder(s.ctx, next)
}

// AddTask creates a task at the top of the manual order
func (s *Session) AddTask(title string, dueDate *time.Time) (Snapshot, error) {
	next, task, err := s.state.Add(title, dueDate)
	if err != nil {
		return s.View(), err
	}
	s.commitTasks(next)
	s.commitOrder(s.order.RecordNew(task.ID))
	s.logger.Debug("task added", zap.String("task_id", task.ID))
	return s.View(), nil
}

// ToggleTask flips a task between active and completed
func (s *Session) ToggleTask(id string) Snapshot {
	s.commitTasks(s.state.Toggle(id))
	return s.View()
}

// DeleteTask removes a task. Its order entry is left in place.
func (s *Session) DeleteTask(id string) Snapshot {
	s.commitTasks(s.state.Delete(id))
	return s.View()
}

// EditTaskTitle renames a task. A blank title is rejected with a
// ValidationError and the task keeps its old title.
func (s *Session) EditTaskTitle(id, title string) (Snapshot, error) {
	if _, ok := s.state.Task(id); !ok {
		return s.View(), nil
	}
	if err := store.CheckTitle(title); err != nil {
		return s.View(), err
	}
	s.commitTasks(s.state.Edit(id, title))
	return s.View(), nil
}

// SetPriority changes the priority of a task
func (s *Session) SetPriority(id string, p models.Priority) Snapshot {
	s.commitTasks(s.state.SetPriority(id, p))
	return s.View()
}

// SetDueDate sets or clears a task due date
func (s *Session) SetDueDate(id string, dueDate *time.Time) Snapshot {
	s.commitTasks(s.state.SetDueDate(id, dueDate))
	return s.View()
}

// SetTags replaces the tags of a task with the tags named by tagIDs.
// Unknown tag IDs are ignored.
func (s *Session) SetTags(id string, tagIDs []string) Snapshot {
	s.commitTasks(s.state.SetTags(id, s.state.TagsByID(tagIDs)))
	return s.View()
}

// CreateTag adds a new tag to the available tags
func (s *Session) CreateTag(name string) (Snapshot, models.Tag, error) {
	next, tag, err := s.state.CreateTag(name)
	if err != nil {
		return s.View(), models.Tag{}, err
	}
	s.state = next
	s.persister.SaveTags(s.ctx, next.Tags())
	s.logger.Debug("tag created", zap.String("tag_id", tag.ID), zap.String("name", tag.Name))
	return s.View(), tag, nil
}

// SetSearchQuery changes the title search
func (s *Session) SetSearchQuery(query string) Snapshot {
	s.query = query
	return s.View()
}

// SetStatusFilter changes which statuses are listed
func (s *Session) SetStatusFilter(f models.StatusFilter) Snapshot {
	switch f {
	case models.FilterAll, models.FilterActive, models.FilterCompleted:
		s.filter = f
	}
	return s.View()
}

// Reorder moves the visible task at from to position to. The visible
// list after the move becomes the whole manual order.
func (s *Session) Reorder(from, to int) Snapshot {
	visible := view.IDs(s.View().VisibleTasks)
	next := s.order.Reorder(visible, from, to)
	if next.Equal(s.order) {
		return s.View()
	}
	s.commitOrder(next)
	return s.View()
}

// Compact drops order entries for tasks that no longer exist
func (s *Session) Compact() (removed int) {
	next := s.order.Prune(s.state.Tasks())
	removed = len(s.order) - len(next)
	if removed > 0 {
		s.commitOrder(next)
	}
	return removed
}

// IsValidation reports whether err is a user input error
func IsValidation(err error) bool {
	var verr *store.ValidationError
	return errors.As(err, &verr)
}
