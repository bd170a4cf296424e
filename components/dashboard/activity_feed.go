package dashboard

import (
	"context"
	"sync"
)

const defaultActivityLimit = 10

// ActivityFeed supplies recent activity entries, most recent first.
type ActivityFeed interface {
	Recent(ctx context.Context, limit int) ([]ActivityEntry, error)
}

// StaticActivityFeed returns fixed entries useful for demos/tests.
type StaticActivityFeed struct {
	Items []ActivityEntry
}

// Recent returns up to limit items from the static list.
func (f StaticActivityFeed) Recent(_ context.Context, limit int) ([]ActivityEntry, error) {
	return clipEntries(f.Items, limit), nil
}

// MemoryActivityFeed keeps the most recent entries in memory, newest first.
type MemoryActivityFeed struct {
	mu       sync.RWMutex
	capacity int
	items    []ActivityEntry
}

// NewMemoryActivityFeed builds a feed retaining at most capacity entries.
func NewMemoryActivityFeed(capacity int) *MemoryActivityFeed {
	if capacity <= 0 {
		capacity = defaultActivityLimit
	}
	return &MemoryActivityFeed{capacity: capacity}
}

// Append records entry as the most recent one, evicting the oldest past capacity.
func (f *MemoryActivityFeed) Append(entry ActivityEntry) {
	if entry.Type == "" {
		entry.Type = ActivityInfo
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]ActivityEntry{entry}, f.items...)
	if len(f.items) > f.capacity {
		f.items = f.items[:f.capacity]
	}
}

// Recent returns up to limit entries.
func (f *MemoryActivityFeed) Recent(_ context.Context, limit int) ([]ActivityEntry, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return clipEntries(f.items, limit), nil
}

// Len reports how many entries are retained.
func (f *MemoryActivityFeed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}

func clipEntries(items []ActivityEntry, limit int) []ActivityEntry {
	if limit <= 0 || limit >= len(items) {
		return append([]ActivityEntry{}, items...)
	}
	return append([]ActivityEntry{}, items[:limit]...)
}
