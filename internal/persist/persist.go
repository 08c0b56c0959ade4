// Package persist mirrors the task, tag and order records into a key-value
// store.
//
// The three records are read and written independently. A record that is
// missing or cannot be decoded loads as empty, and write failures are
// logged rather than returned: the in-memory state is the source of truth
// and storage is best effort.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tgienger/todo/internal/ids"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/order"
	"github.com/tgienger/todo/internal/store"
	"github.com/tgienger/todo/internal/validation"
)

// Record key names
const (
	TasksKey = "tasks"
	TagsKey  = "tags"
	OrderKey = "taskOrder"
)

var (
	// ErrDecode marks a stored record that could not be parsed
	ErrDecode = errors.New("decode record")
	// ErrWrite marks a record that could not be written
	ErrWrite = errors.New("write record")
)

// Backend is the key-value substrate the records live in
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Names lists the record names an Adapter owns
var Names = []string{TasksKey, TagsKey, OrderKey}

// Snapshot is the content of all three records
type Snapshot struct {
	Tasks []models.Task
	Tags  []models.Tag
	Order order.Order
}

// Adapter loads and saves records through a Backend
type Adapter struct {
	backend Backend
	logger  *zap.Logger
	ids     ids.Generator
	prefix  string
}

// Option configures an Adapter
type Option func(*Adapter)

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) { a.logger = logger }
}

// WithPrefix namespaces every record key as prefix + key
func WithPrefix(prefix string) Option {
	return func(a *Adapter) { a.prefix = prefix }
}

// WithIDs sets the generator used to repair tasks stored without an ID
func WithIDs(g ids.Generator) Option {
	return func(a *Adapter) { a.ids = g }
}

// New creates an Adapter over backend
func New(backend Backend, opts ...Option) *Adapter {
	a := &Adapter{
		backend: backend,
		logger:  zap.NewNop(),
		ids:     ids.UUID{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the full backend key for a record name
func (a *Adapter) Key(name string) string {
	return a.prefix + name
}

// Load reads all three records. It never fails: each unreadable record
// comes back empty.
func (a *Adapter) Load(ctx context.Context) Snapshot {
	snap := Snapshot{
		Tasks: []models.Task{},
		Tags:  []models.Tag{},
		Order: order.Order{},
	}

	var rawTasks []json.RawMessage
	if a.read(ctx, TasksKey, &rawTasks) {
		snap.Tasks = a.normalizeTasks(a.decodeTasks(rawTasks))
	}

	var rawTags []json.RawMessage
	if a.read(ctx, TagsKey, &rawTags) {
		snap.Tags = a.normalizeTags(decodeEach[models.Tag](a, TagsKey, rawTags))
	}

	var ord order.Order
	if a.read(ctx, OrderKey, &ord) && ord != nil {
		snap.Order = ord
	}

	return snap
}

// read decodes one record into dst. It reports false when the record is
// absent or unusable.
func (a *Adapter) read(ctx context.Context, name string, dst any) bool {
	key := a.Key(name)
	raw, ok, err := a.backend.Get(ctx, key)
	if err != nil {
		a.logger.Warn("failed to read record, using empty default",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		a.logger.Warn("failed to decode record, using empty default",
			zap.String("key", key),
			zap.Error(fmt.Errorf("%w: %w", ErrDecode, err)),
		)
		return false
	}
	return true
}

// decodeEach decodes the elements of a record one at a time so a single
// malformed entry does not take the rest of the record with it
func decodeEach[T any](a *Adapter, name string, raw []json.RawMessage) []T {
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			a.logger.Warn("skipping undecodable entry",
				zap.String("key", a.Key(name)),
				zap.Int("index", i),
				zap.Error(fmt.Errorf("%w: %w", ErrDecode, err)),
			)
			continue
		}
		out = append(out, v)
	}
	return out
}

// storedTask reads the due date as raw JSON so that a value this version
// cannot parse costs the task its due date rather than the whole task
type storedTask struct {
	models.Task
	DueDate json.RawMessage `json:"dueDate"`
}

// dateOnly is the layout date pickers write when no time is set
const dateOnly = "2006-01-02"

func (a *Adapter) decodeTasks(raw []json.RawMessage) []models.Task {
	stored := decodeEach[storedTask](a, TasksKey, raw)
	out := make([]models.Task, 0, len(stored))
	for _, st := range stored {
		t := st.Task
		due, err := parseDue(st.DueDate)
		if err != nil {
			a.logger.Warn("dropping unparseable due date",
				zap.String("task_id", t.ID),
				zap.String("due_date", string(st.DueDate)),
				zap.Error(fmt.Errorf("%w: %w", ErrDecode, err)),
			)
		}
		t.DueDate = due
		out = append(out, t)
	}
	return out
}

// parseDue accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date, which
// is read as midnight UTC. Absent, null and empty values mean no due date.
func parseDue(raw json.RawMessage) (*time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// normalizeTasks upgrades tasks written by older versions: missing
// priority becomes medium, missing tags become empty, missing IDs are
// assigned. Tasks without a usable title are dropped.
func (a *Adapter) normalizeTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if validation.ValidatePriority(string(t.Priority)) != nil {
			t.Priority = models.PriorityMedium
		}
		if t.Tags == nil {
			t.Tags = []models.Tag{}
		} else {
			t.Tags = store.UniqueTags(t.Tags)
		}
		t.Title = validation.NormalizeTitle(t.Title)
		if t.ID == "" || seen[t.ID] {
			t.ID = a.ids.NewID()
		}

		if err := validation.ValidateTask(t); err != nil {
			a.logger.Warn("dropping invalid stored task",
				zap.String("task_id", t.ID),
				zap.Error(err),
			)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

func (a *Adapter) normalizeTags(tags []models.Tag) []models.Tag {
	out := make([]models.Tag, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if err := validation.ValidateTag(t); err != nil || seen[t.ID] {
			a.logger.Warn("dropping invalid stored tag",
				zap.String("tag_id", t.ID),
				zap.Error(err),
			)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// SaveTasks writes the tasks record
func (a *Adapter) SaveTasks(ctx context.Context, tasks []models.Task) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	a.write(ctx, TasksKey, tasks)
}

// SaveTags writes the tags record
func (a *Adapter) SaveTags(ctx context.Context, tags []models.Tag) {
	if tags == nil {
		tags = []models.Tag{}
	}
	a.write(ctx, TagsKey, tags)
}

// SaveOrder writes the order record
func (a *Adapter) SaveOrder(ctx context.Context, ord order.Order) {
	if ord == nil {
		ord = order.Order{}
	}
	a.write(ctx, OrderKey, ord)
}

// Save writes all three records
func (a *Adapter) Save(ctx context.Context, snap Snapshot) {
	a.SaveTasks(ctx, snap.Tasks)
	a.SaveTags(ctx, snap.Tags)
	a.SaveOrder(ctx, snap.Order)
}

func (a *Adapter) write(ctx context.Context, name string, v any) {
	key := a.Key(name)
	data, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("failed to encode record",
			zap.String("key", key),
			zap.Error(fmt.Errorf("%w: %w", ErrWrite, err)),
		)
		return
	}
	if err := a.backend.Set(ctx, key, string(data)); err != nil {
		a.logger.Error("failed to write record",
			zap.String("key", key),
			zap.Int("bytes", len(data)),
			zap.Error(fmt.Errorf("%w: %w", ErrWrite, err)),
		)
		return
	}
	a.logger.Debug("record saved", zap.String("key", key), zap.Int("bytes", len(data)))
}

// Records lists the record names stored under this adapter's prefix,
// including names it does not own
func (a *Adapter) Records(ctx context.Context) ([]string, error) {
	keys, err := a.backend.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if name, ok := strings.CutPrefix(k, a.prefix); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Reset deletes the three records. It returns the names that were present.
func (a *Adapter) Reset(ctx context.Context) ([]string, error) {
	var removed []string
	for _, name := range Names {
		key := a.Key(name)
		if _, ok, err := a.backend.Get(ctx, key); err != nil || !ok {
			if err != nil {
				a.logger.Warn("failed to read record before reset", zap.String("key", key), zap.Error(err))
			}
			continue
		}
		if err := a.backend.Delete(ctx, key); err != nil {
			a.logger.Error("failed to delete record", zap.String("key", key), zap.Error(err))
			return removed, fmt.Errorf("delete %s: %w", key, err)
		}
		a.logger.Info("record deleted", zap.String("key", key))
		removed = append(removed, name)
	}
	return removed, nil
}
