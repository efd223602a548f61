package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNewestFirst(t *testing.T) {
	m := NewManager(10)

	m.Add("Indian Sparrow", 0.87)
	m.Add("Common Myna", 0.91)
	m.Add("Indian Peacock", 0.95)

	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Indian Peacock", entries[0].Species)
	assert.Equal(t, "Common Myna", entries[1].Species)
	assert.Equal(t, "Indian Sparrow", entries[2].Species)
}

func TestCapacityEvictsOldest(t *testing.T) {
	m := NewManager(10)

	for i := range 15 {
		m.Add(fmt.Sprintf("species-%d", i), 0.5)
	}

	entries := m.Entries()
	require.Len(t, entries, 10, "history must never exceed its capacity")
	assert.Equal(t, "species-14", entries[0].Species, "newest entry leads")
	assert.Equal(t, "species-5", entries[9].Species, "oldest surviving entry trails")
}

func TestEntriesSnapshot(t *testing.T) {
	m := NewManager(5)
	m.Add("Indian Sparrow", 0.87)

	snapshot := m.Entries()
	m.Add("Common Myna", 0.91)

	assert.Len(t, snapshot, 1, "snapshot must not observe later additions")
	assert.Equal(t, 2, m.Len())
}

func TestEntryFields(t *testing.T) {
	m := NewManager(5)
	entry := m.Add("Indian Sparrow", 0.87)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Indian Sparrow", entry.Species)
	assert.InDelta(t, 0.87, entry.Confidence, 0.001)
	assert.False(t, entry.Timestamp.IsZero())
}
