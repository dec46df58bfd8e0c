// Package topic defines the record types shared by the cache, catalog,
// and suggestion engine.
package topic

import "time"

// Difficulty grades how much a prompt asks of the person answering it.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyDeep   Difficulty = "deep"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDeep:
		return true
	}
	return false
}

// Category groups topics for display. Immutable once fetched; ordered
// by SortOrder in any listing.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// Topic is a single recording prompt. Category is a denormalized join
// populated at fetch time; CategoryID is the relationship of record.
type Topic struct {
	ID         string     `json:"id"`
	CategoryID string     `json:"category_id,omitempty"`
	Prompt     string     `json:"prompt"`
	Difficulty Difficulty `json:"difficulty_level"`
	Tags       []string   `json:"tags,omitempty"`
	Category   *Category  `json:"category,omitempty"`
}

// HistoryEntry records one "this topic was offered" event. An entry
// transitions from unused to used exactly once, when a recording lands
// against the suggestion; entries are never deleted.
type HistoryEntry struct {
	ID       string    `json:"id"`
	TopicID  string    `json:"topic_id"`
	ShownAt  time.Time `json:"shown_at"`
	WasUsed  bool      `json:"was_used"`
	MemoryID string    `json:"memory_id,omitempty"`
}
