// Package syncer decides when to refresh cached catalog data and
// reconciles locally-recorded history with the remote catalog.
package syncer

import (
	"context"
	"log"

	"github.com/recollect-app/recollect/internal/cache"
	"github.com/recollect-app/recollect/internal/catalog"
	"github.com/recollect-app/recollect/internal/topic"
)

// Coordinator refreshes cache families from the catalog and mirrors
// local history writes back to it. Remote failures never propagate to
// callers: reads fall back to the local snapshot, writes are queued
// and retried in the background.
type Coordinator struct {
	cache  *cache.Store
	source catalog.Source
	userID string

	jobs   chan mirrorJob
	stopCh chan struct{}
	done   chan struct{}
}

// New creates a Coordinator and starts its mirror worker.
func New(c *cache.Store, source catalog.Source, userID string) *Coordinator {
	co := &Coordinator{
		cache:  c,
		source: source,
		userID: userID,
		jobs:   make(chan mirrorJob, queueDepth),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go co.runMirror()
	return co
}

// Stop shuts down the mirror worker. Queued jobs still in flight are
// abandoned; the local cache already holds their entries.
func (co *Coordinator) Stop() {
	close(co.stopCh)
	<-co.done
}

// EnsureFreshCategories returns categories, refreshing from the
// catalog when the cached snapshot is stale or missing. On remote
// failure the last local snapshot is returned unchanged; with no
// snapshot at all the result is empty, never an error.
func (co *Coordinator) EnsureFreshCategories(ctx context.Context) []topic.Category {
	cached, fr := co.cache.Categories()
	if fr == cache.Fresh {
		return cached
	}

	fetched, err := co.source.FetchCategories(ctx)
	if err != nil {
		log.Printf("syncer: fetch categories failed, serving %s cache: %v", fr, err)
		return cached
	}
	if err := co.cache.Put(cache.FamilyCategories, fetched); err != nil {
		log.Printf("syncer: %v", err)
	}
	return fetched
}

// EnsureFreshTopics returns topics under the same stale-while-error
// policy as EnsureFreshCategories.
func (co *Coordinator) EnsureFreshTopics(ctx context.Context) []topic.Topic {
	cached, fr := co.cache.Topics()
	if fr == cache.Fresh {
		return cached
	}

	fetched, err := co.source.FetchTopics(ctx)
	if err != nil {
		log.Printf("syncer: fetch topics failed, serving %s cache: %v", fr, err)
		return cached
	}
	if err := co.cache.Put(cache.FamilyTopics, fetched); err != nil {
		log.Printf("syncer: %v", err)
	}
	return fetched
}

// EnsureFreshHistory returns the history log, pulling from the catalog
// when the cached snapshot is stale or missing.
func (co *Coordinator) EnsureFreshHistory(ctx context.Context, limit int) []topic.HistoryEntry {
	cached, fr := co.cache.History()
	if fr == cache.Fresh {
		return cached
	}
	return co.PullHistory(ctx, limit)
}

// PushHistoryEntry appends the entry to the local history cache and
// queues a best-effort mirror to the catalog. The local append never
// waits on the network.
func (co *Coordinator) PushHistoryEntry(ctx context.Context, entry topic.HistoryEntry) {
	existing, _ := co.cache.History()
	updated := append([]topic.HistoryEntry{entry}, existing...)
	if err := co.cache.Put(cache.FamilyHistory, updated); err != nil {
		log.Printf("syncer: %v", err)
	}

	e := entry
	co.enqueue(mirrorJob{
		desc: "insert history " + e.TopicID,
		run: func(ctx context.Context) error {
			return co.source.InsertHistory(ctx, co.userID, e)
		},
	})
}

// MirrorTopicUsed queues the was_used transition for remote mirroring.
// The local cache is updated by the caller before this runs.
func (co *Coordinator) MirrorTopicUsed(topicID, memoryID string) {
	co.enqueue(mirrorJob{
		desc: "mark used " + topicID,
		run: func(ctx context.Context) error {
			return co.source.UpdateHistory(ctx, co.userID, topicID, memoryID)
		},
	})
}

// PullHistory fetches the user's most recent history from the catalog
// and replaces the local history cache with it. Intentionally a
// replace, not a merge: once the catalog is reachable it is
// authoritative, and local-only entries whose mirror never landed are
// superseded.
func (co *Coordinator) PullHistory(ctx context.Context, limit int) []topic.HistoryEntry {
	entries, err := co.source.FetchHistory(ctx, co.userID, limit)
	if err != nil {
		cached, fr := co.cache.History()
		log.Printf("syncer: pull history failed, keeping %s cache: %v", fr, err)
		return cached
	}
	if err := co.cache.Put(cache.FamilyHistory, entries); err != nil {
		log.Printf("syncer: %v", err)
	}
	return entries
}
