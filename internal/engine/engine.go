// Package engine is the topic suggestion facade: it wires the cache,
// syncer, history tracker, and selection policy behind the operations
// the app surface calls.
package engine

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"

	"github.com/recollect-app/recollect/internal/cache"
	"github.com/recollect-app/recollect/internal/history"
	"github.com/recollect-app/recollect/internal/selection"
	"github.com/recollect-app/recollect/internal/syncer"
	"github.com/recollect-app/recollect/internal/topic"
)

// historyPullLimit bounds how much remote history a full refresh
// replaces the local cache with. 200 entries covers well over the
// 30-day exclusion window at any plausible recording rate.
const historyPullLimit = 200

// Engine serves "what should I record about next" suggestions. All
// dependencies are injected; there is no package-level instance.
//
// Two concurrent NextTopic calls may read the same recently-shown
// snapshot and offer the same topic before either shown-event lands.
// That race is accepted for a single-user, single-device workload.
type Engine struct {
	cache   *cache.Store
	sync    *syncer.Coordinator
	tracker *history.Tracker

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates an Engine.
func New(c *cache.Store, co *syncer.Coordinator, tr *history.Tracker) *Engine {
	return &Engine{
		cache:   c,
		sync:    co,
		tracker: tr,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// SetRand overrides the random source. Tests only.
func (e *Engine) SetRand(rng *rand.Rand) {
	e.rng = rng
}

// NextTopic returns one suggestion, or nil when no topics are
// available anywhere. categoryID optionally restricts candidates.
func (e *Engine) NextTopic(ctx context.Context, categoryID string) *topic.Topic {
	picks := e.NextTopics(ctx, 1, categoryID)
	if len(picks) == 0 {
		return nil
	}
	return &picks[0]
}

// NextTopics returns up to count suggestions. Every returned topic is
// recorded as shown before it is handed back, so the tracker never
// misses an offer.
func (e *Engine) NextTopics(ctx context.Context, count int, categoryID string) []topic.Topic {
	candidates := e.sync.EnsureFreshTopics(ctx)
	if categoryID != "" {
		filtered := candidates[:0:0]
		for _, t := range candidates {
			if t.CategoryID == categoryID {
				filtered = append(filtered, t)
			}
		}
		candidates = filtered
	}
	if len(candidates) == 0 {
		return nil
	}

	recent := e.tracker.RecentlyShown(history.WindowDays)

	e.rngMu.Lock()
	picks := selection.Pick(candidates, recent, count, e.rng)
	e.rngMu.Unlock()

	for _, t := range picks {
		e.tracker.RecordShown(ctx, t.ID)
	}
	return picks
}

// Categories returns the category list under the stale-while-error
// refresh policy.
func (e *Engine) Categories(ctx context.Context) []topic.Category {
	return e.sync.EnsureFreshCategories(ctx)
}

// MarkTopicUsed records that a recording landed against a previously
// offered topic. Unknown or already-consumed topics are a no-op.
func (e *Engine) MarkTopicUsed(ctx context.Context, topicID, memoryID string) {
	e.tracker.MarkUsed(ctx, topicID, memoryID)
}

// RefreshAll forces a full resync: catalog families are invalidated
// and refetched, and the local history cache is replaced by the
// remote log.
func (e *Engine) RefreshAll(ctx context.Context) {
	if err := e.cache.Invalidate(cache.FamilyCategories, cache.FamilyTopics); err != nil {
		log.Printf("engine: %v", err)
	}
	e.sync.EnsureFreshCategories(ctx)
	e.sync.EnsureFreshTopics(ctx)
	e.sync.PullHistory(ctx, historyPullLimit)
}

// ClearCache drops every cached family.
func (e *Engine) ClearCache() {
	if err := e.cache.Invalidate(cache.Families...); err != nil {
		log.Printf("engine: %v", err)
	}
}

// Stop shuts down the background mirror worker.
func (e *Engine) Stop() {
	e.sync.Stop()
}
