package view

import "github.com/tgienger/todo/internal/models"

// Key identifies an Input by the versions of its collections
type Key struct {
	TasksVersion uint64
	OrderVersion uint64
	Query        string
	Filter       models.StatusFilter
}

// Memo caches the last derived Result. The caller bumps the versions in
// Key whenever the tasks or the order change.
type Memo struct {
	key    Key
	result Result
	valid  bool
	hits   int
}

// Derive returns the cached Result when key matches the previous call.
// Otherwise it calls load for the Input and derives a fresh Result.
func (m *Memo) Derive(key Key, load func() Input) Result {
	if m.valid && m.key == key {
		m.hits++
		return m.result
	}
	m.key = key
	m.result = Derive(load())
	m.valid = true
	return m.result
}

// Hits reports how many calls were served from the cache
func (m *Memo) Hits() int {
	return m.hits
}

// Reset drops the cached Result
func (m *Memo) Reset() {
	m.valid = false
}
