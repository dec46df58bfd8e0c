package catalog

import (
	"context"
	"sync"

	"github.com/recollect-app/recollect/internal/topic"
)

// Mock is a test double for Source. Setting Err makes every call fail,
// simulating an unreachable catalog. Safe for use alongside the
// background mirror worker.
type Mock struct {
	mu         sync.Mutex
	Categories []topic.Category
	Topics     []topic.Topic
	History    []topic.HistoryEntry
	Err        error

	inserted []topic.HistoryEntry
	updated  []string // "topicID/memoryID" pairs
}

// SetErr makes every subsequent call fail with err (nil restores).
func (m *Mock) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

// Inserted returns a snapshot of entries mirrored via InsertHistory.
func (m *Mock) Inserted() []topic.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]topic.HistoryEntry(nil), m.inserted...)
}

// Updated returns a snapshot of "topicID/memoryID" update calls.
func (m *Mock) Updated() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.updated...)
}

func (m *Mock) FetchCategories(ctx context.Context) ([]topic.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}

func (m *Mock) FetchTopics(ctx context.Context) ([]topic.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Topics, nil
}

func (m *Mock) FetchHistory(ctx context.Context, userID string, limit int) ([]topic.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && limit < len(m.History) {
		return m.History[:limit], nil
	}
	return m.History, nil
}

func (m *Mock) InsertHistory(ctx context.Context, userID string, entry topic.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.inserted = append(m.inserted, entry)
	return nil
}

func (m *Mock) UpdateHistory(ctx context.Context, userID, topicID, memoryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.updated = append(m.updated, topicID+"/"+memoryID)
	return nil
}
