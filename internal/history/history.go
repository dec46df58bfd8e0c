// Package history maintains the suggestion history: the lookback
// window used for repeat avoidance and the used/unused lifecycle of
// each entry.
package history

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/recollect-app/recollect/internal/cache"
	"github.com/recollect-app/recollect/internal/syncer"
	"github.com/recollect-app/recollect/internal/topic"
)

// WindowDays is the repeat-avoidance lookback: topics shown within
// this many days are excluded from selection.
const WindowDays = 30

// Tracker owns the logical history list. It is the only writer of the
// was_used/memory_id transition.
type Tracker struct {
	cache *cache.Store
	sync  *syncer.Coordinator
	now   func() time.Time
}

// New creates a Tracker.
func New(c *cache.Store, sync *syncer.Coordinator) *Tracker {
	return &Tracker{cache: c, sync: sync, now: time.Now}
}

// SetClock overrides the time source. Tests only.
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// RecentlyShown returns the set of topic ids shown within the last
// windowDays. Pure over the current history snapshot.
func (t *Tracker) RecentlyShown(windowDays int) map[string]struct{} {
	entries, _ := t.cache.History()
	cutoff := t.now().AddDate(0, 0, -windowDays)

	recent := make(map[string]struct{})
	for _, e := range entries {
		if e.ShownAt.After(cutoff) {
			recent[e.TopicID] = struct{}{}
		}
	}
	return recent
}

// RecordShown appends a new unused entry for the topic and queues its
// remote mirror.
func (t *Tracker) RecordShown(ctx context.Context, topicID string) topic.HistoryEntry {
	entry := topic.HistoryEntry{
		ID:      uuid.NewString(),
		TopicID: topicID,
		ShownAt: t.now(),
	}
	t.sync.PushHistoryEntry(ctx, entry)
	return entry
}

// MarkUsed flips the most recent unmarked entry for the topic to used,
// attaching the memory id, and mirrors the transition. With no
// unmarked entry this is a no-op: creating one here would fabricate a
// shown event that never happened.
func (t *Tracker) MarkUsed(ctx context.Context, topicID, memoryID string) {
	entries, fr := t.cache.History()
	if fr == cache.Empty {
		return
	}

	// Entries are newest first; take the first unmarked match.
	for i := range entries {
		e := &entries[i]
		if e.TopicID != topicID || e.WasUsed || e.MemoryID != "" {
			continue
		}
		e.WasUsed = true
		e.MemoryID = memoryID
		if err := t.cache.Put(cache.FamilyHistory, entries); err != nil {
			log.Printf("history: %v", err)
		}
		t.sync.MirrorTopicUsed(topicID, memoryID)
		return
	}
}
