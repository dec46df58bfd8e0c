// Package catalog talks to the remote catalog service: the canonical
// store for categories, topics, and per-user suggestion history.
package catalog

import (
	"context"

	"github.com/recollect-app/recollect/internal/topic"
)

// Source is the remote catalog contract. The HTTP Client implements it;
// tests use Mock.
type Source interface {
	// FetchCategories returns active categories ordered by sort_order.
	FetchCategories(ctx context.Context) ([]topic.Category, error)

	// FetchTopics returns active topics with their category denormalized.
	FetchTopics(ctx context.Context) ([]topic.Topic, error)

	// FetchHistory returns the most recent limit history entries for the
	// user, ordered by shown_at descending.
	FetchHistory(ctx context.Context, userID string, limit int) ([]topic.HistoryEntry, error)

	// InsertHistory appends one history entry for the user.
	InsertHistory(ctx context.Context, userID string, entry topic.HistoryEntry) error

	// UpdateHistory marks the user's unmarked entry for topicID as used,
	// attaching memoryID. The filter is conditional: only an entry with
	// was_used=false and no memory_id matches.
	UpdateHistory(ctx context.Context, userID, topicID, memoryID string) error
}
