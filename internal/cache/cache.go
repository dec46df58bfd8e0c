// Package cache persists per-family snapshots of catalog data with a
// freshness window, on top of the durable key-value store.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/recollect-app/recollect/internal/store"
	"github.com/recollect-app/recollect/internal/topic"
)

// TTL is the freshness window: a family synced longer ago than this is
// stale and eligible for a remote refresh.
const TTL = 24 * time.Hour

// Family identifies one independently-cached record family.
type Family string

const (
	FamilyCategories Family = "categories"
	FamilyTopics     Family = "topics"
	FamilyHistory    Family = "history"
)

// Families lists every cached family.
var Families = []Family{FamilyCategories, FamilyTopics, FamilyHistory}

// Freshness classifies a cached snapshot. Empty means no snapshot is
// stored at all, which is distinct from a stale one.
type Freshness int

const (
	Empty Freshness = iota
	Stale
	Fresh
)

func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	}
	return "empty"
}

// envelope is the persisted form of one family: the records plus the
// time they were last synced from the catalog.
type envelope struct {
	SyncedAt time.Time       `json:"synced_at"`
	Records  json.RawMessage `json:"records"`
}

// Store reads and writes family envelopes. Each family lives under its
// own key, so writing one family never disturbs another's timestamp.
type Store struct {
	kv  store.KV
	now func() time.Time
}

// New creates a Store over the given key-value backend.
func New(kv store.KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// SetClock overrides the time source. Tests only.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func key(f Family) string {
	return "cache/" + string(f)
}

// Get returns the stored snapshot for the family and its freshness.
// Any local-store or decode failure is treated as a cache miss, never
// surfaced as an error.
func (s *Store) Get(f Family) (json.RawMessage, Freshness) {
	data, err := s.kv.Get(key(f))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("cache: read %s: %v", f, err)
		}
		return nil, Empty
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("cache: corrupt envelope for %s: %v", f, err)
		return nil, Empty
	}

	if s.now().Sub(env.SyncedAt) < TTL {
		return env.Records, Fresh
	}
	return env.Records, Stale
}

// Put replaces the family snapshot and stamps it synced-now. The write
// is a single key-value set, atomic with respect to readers of the
// same family.
func (s *Store) Put(f Family, records any) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", f, err)
	}
	data, err := json.Marshal(envelope{SyncedAt: s.now(), Records: raw})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", f, err)
	}
	if err := s.kv.Set(key(f), data); err != nil {
		return fmt.Errorf("store %s: %w", f, err)
	}
	return nil
}

// Invalidate clears the given families so the next Get reports empty.
func (s *Store) Invalidate(families ...Family) error {
	keys := make([]string, len(families))
	for i, f := range families {
		keys[i] = key(f)
	}
	if err := s.kv.Remove(keys...); err != nil {
		return fmt.Errorf("invalidate: %w", err)
	}
	return nil
}

func decode[T any](raw json.RawMessage, f Family) []T {
	if len(raw) == 0 {
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("cache: corrupt records for %s: %v", f, err)
		return nil
	}
	return out
}

// Categories returns the cached category snapshot.
func (s *Store) Categories() ([]topic.Category, Freshness) {
	raw, fr := s.Get(FamilyCategories)
	return decode[topic.Category](raw, FamilyCategories), fr
}

// Topics returns the cached topic snapshot.
func (s *Store) Topics() ([]topic.Topic, Freshness) {
	raw, fr := s.Get(FamilyTopics)
	return decode[topic.Topic](raw, FamilyTopics), fr
}

// History returns the cached history snapshot, newest first.
func (s *Store) History() ([]topic.HistoryEntry, Freshness) {
	raw, fr := s.Get(FamilyHistory)
	return decode[topic.HistoryEntry](raw, FamilyHistory), fr
}
