// Package logfeed maintains the append-only, UI-visible event feed of the
// control panel.
package logfeed

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the severity tag of a feed entry, used only for presentation.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarn    Level = "warn"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Entry is one immutable feed line.
type Entry struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
	Level   Level     `json:"level"`
}

// TimeLabel formats the entry timestamp at second resolution, the way the
// panel displays it.
func (e *Entry) TimeLabel() string {
	return e.Time.Format("15:04:05")
}

// Feed is an append-only sequence of timestamped, leveled messages.
// Thread-safe.
type Feed struct {
	mu      sync.RWMutex
	entries []Entry
	logger  *slog.Logger
}

// New creates an empty feed. The optional slog logger mirrors every feed
// entry into the application log.
func New(logger *slog.Logger) *Feed {
	return &Feed{logger: logger}
}

// Append adds a message to the feed.
func (f *Feed) Append(level Level, message string) {
	entry := Entry{
		ID:      uuid.New().String(),
		Time:    time.Now(),
		Message: message,
		Level:   level,
	}

	f.mu.Lock()
	f.entries = append(f.entries, entry)
	f.mu.Unlock()

	if f.logger != nil {
		switch level {
		case LevelWarn:
			f.logger.Warn(message)
		case LevelError:
			f.logger.Error(message)
		default:
			f.logger.Info(message)
		}
	}
}

// Info appends an informational message.
func (f *Feed) Info(message string) { f.Append(LevelInfo, message) }

// Warn appends a warning message.
func (f *Feed) Warn(message string) { f.Append(LevelWarn, message) }

// Success appends a success message.
func (f *Feed) Success(message string) { f.Append(LevelSuccess, message) }

// Error appends an error message.
func (f *Feed) Error(message string) { f.Append(LevelError, message) }

// Entries returns a snapshot of the feed in append order.
func (f *Feed) Entries() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Len returns the number of entries in the feed.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

// Clear destroys the feed contents. The operation is unrecoverable and has
// no confirmation step; a fresh entry records that the log was cleared.
func (f *Feed) Clear() {
	f.mu.Lock()
	f.entries = nil
	f.mu.Unlock()

	f.Info("LOG CLEARED")
}
