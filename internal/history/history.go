// Package history keeps the bounded, most-recent-first list of past
// detections shown in the panel sidebar.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of detections retained when no explicit
// capacity is configured.
const DefaultCapacity = 10

// Entry is one past detection. Entries are immutable once created.
type Entry struct {
	ID         string    `json:"id"`
	Species    string    `json:"species"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// Manager maintains the bounded detection history, newest first. The oldest
// entry is evicted once capacity is exceeded. Thread-safe.
type Manager struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
}

// NewManager creates a history manager with the given capacity. Zero or
// negative capacity falls back to DefaultCapacity.
func NewManager(capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{capacity: capacity}
}

// Add inserts a detection at the front of the history, evicting the oldest
// entry when the list is over capacity.
func (m *Manager) Add(species string, confidence float64) Entry {
	entry := Entry{
		ID:         uuid.New().String(),
		Species:    species,
		Confidence: confidence,
		Timestamp:  time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append([]Entry{entry}, m.entries...)
	if len(m.entries) > m.capacity {
		m.entries = m.entries[:m.capacity]
	}
	return entry
}

// Entries returns a snapshot of the history, newest first.
func (m *Manager) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of retained entries.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Capacity returns the configured capacity bound.
func (m *Manager) Capacity() int {
	return m.capacity
}
