package memory

import (
	"strings"
	"time"

	"github.com/insurevn/tetadvisor/pkg/errors"
)

// Type classifies a short-term memory item. The set is extensible: unknown
// types are stored and retrieved normally, they just never appear in
// Summarize's fixed priority list.
type Type string

// Built-in item types
const (
	TypeUserIntent      Type = "user_intent"
	TypeProductInterest Type = "product_interest"
	TypeConcern         Type = "concern"
	TypeDecision        Type = "decision"
	TypeConversation    Type = "conversation"
)

// summaryPriority is the fixed type order Summarize scans; for each type
// present, only the most recently added item contributes.
var summaryPriority = []Type{TypeUserIntent, TypeProductInterest, TypeConcern, TypeDecision}

// Fixed strings used by Summarize.
const (
	emptySummary    = "No recent conversation history."
	fallbackSummary = "Recent conversation context available."
	summarySep      = " | "
)

// Default sizing; overridable through the memory section of the config.
const (
	DefaultCapacity     = 10
	DefaultRecentWindow = 5
)

// Item is a single typed conversation event. Items are never mutated after
// insertion.
type Item struct {
	// Type classifies the event
	Type Type `json:"type"`

	// Content is the event text
	Content string `json:"content"`

	// Metadata is additional structured data about the event
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// CreatedAt is the insertion timestamp
	CreatedAt time.Time `json:"created_at"`
}

// ShortTermMemory is a capacity-bounded, time-ordered log of typed
// conversation events with FIFO eviction: after any mutation at most
// capacity items remain, the oldest dropped first.
//
// The buffer is not safe for concurrent use. The session owns the canonical
// item sequence; when the advisory core is reconstructed per turn, the
// buffer is rebuilt from a snapshot and handed back via Snapshot afterwards.
type ShortTermMemory struct {
	capacity int
	items    []Item
	now      func() time.Time
}

// New creates an empty buffer retaining at most capacity items. A
// non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *ShortTermMemory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ShortTermMemory{
		capacity: capacity,
		now:      time.Now,
	}
}

// NewFromSnapshot creates a buffer seeded with a previously captured item
// sequence, truncated to the newest capacity items if the snapshot is larger.
func NewFromSnapshot(capacity int, items []Item) *ShortTermMemory {
	m := New(capacity)
	m.Restore(items)
	return m
}

// Capacity returns the maximum number of retained items.
func (m *ShortTermMemory) Capacity() int {
	return m.capacity
}

// Len returns the current number of items.
func (m *ShortTermMemory) Len() int {
	return len(m.items)
}

// Add appends an item with the current timestamp, evicting from the front
// when the buffer exceeds capacity. The returned error is an invariant
// check that should be unreachable; a non-nil result indicates a bug.
func (m *ShortTermMemory) Add(itemType Type, content string, metadata map[string]interface{}) error {
	m.items = append(m.items, Item{
		Type:      itemType,
		Content:   content,
		Metadata:  metadata,
		CreatedAt: m.now(),
	})

	if overflow := len(m.items) - m.capacity; overflow > 0 {
		m.items = m.items[overflow:]
	}

	if len(m.items) > m.capacity {
		return errors.Wrap(errors.ErrMemoryCapacity, "len %d exceeds capacity %d", len(m.items), m.capacity)
	}
	return nil
}

// Recent returns the last n items in insertion order. When n exceeds the
// current size, all available items are returned; Recent never fails.
func (m *ShortTermMemory) Recent(n int) []Item {
	if n <= 0 || len(m.items) == 0 {
		return []Item{}
	}
	if n > len(m.items) {
		n = len(m.items)
	}

	out := make([]Item, n)
	copy(out, m.items[len(m.items)-n:])
	return out
}

// ByType returns all items of the given type, insertion order preserved.
func (m *ShortTermMemory) ByType(itemType Type) []Item {
	out := []Item{}
	for _, item := range m.items {
		if item.Type == itemType {
			out = append(out, item)
		}
	}
	return out
}

// Summarize renders a deterministic one-line summary: for each type in the
// fixed priority list that is present, the most recently added item of that
// type, joined with " | ". An empty buffer yields a fixed sentinel.
func (m *ShortTermMemory) Summarize() string {
	if len(m.items) == 0 {
		return emptySummary
	}

	var parts []string
	for _, itemType := range summaryPriority {
		matches := m.ByType(itemType)
		if len(matches) == 0 {
			continue
		}
		latest := matches[len(matches)-1]
		parts = append(parts, string(itemType)+": "+latest.Content)
	}

	if len(parts) == 0 {
		return fallbackSummary
	}
	return strings.Join(parts, summarySep)
}

// Clear resets the buffer to empty.
func (m *ShortTermMemory) Clear() {
	m.items = nil
}

// Snapshot returns a copy of the current item sequence for session-level
// storage. Mutating the returned slice does not affect the buffer.
func (m *ShortTermMemory) Snapshot() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Restore replaces the buffer contents with the given item sequence,
// keeping only the newest capacity items.
func (m *ShortTermMemory) Restore(items []Item) {
	if overflow := len(items) - m.capacity; overflow > 0 {
		items = items[overflow:]
	}
	m.items = make([]Item, len(items))
	copy(m.items, items)
}
