// Package location abstracts the URL a state router reads and writes.
//
// On the server there is no browser history; Memory records what the router
// would have written so callers can inspect the resulting path.
package location

import "sync"

// Location is the current-URL collaborator of a state router.
type Location interface {
	// Get returns the current path, including any query string.
	Get() string

	// Set moves to path, adding a history entry.
	Set(path string)

	// Replace moves to path, overwriting the current entry.
	Replace(path string)
}

// Memory is an in-memory Location. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	history []string
}

var _ Location = (*Memory)(nil)

// NewMemory returns a Memory positioned at initial ("/" if empty).
func NewMemory(initial string) *Memory {
	if initial == "" {
		initial = "/"
	}
	return &Memory{history: []string{initial}}
}

// Get returns the current path.
func (m *Memory) Get() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history[len(m.history)-1]
}

// Set appends path to the history. Setting the current path again is a no-op.
func (m *Memory) Set(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.history[len(m.history)-1] == path {
		return
	}
	m.history = append(m.history, path)
}

// Replace overwrites the current entry.
func (m *Memory) Replace(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[len(m.history)-1] = path
}

// History returns a copy of every entry, oldest first.
func (m *Memory) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.history))
	copy(out, m.history)
	return out
}
