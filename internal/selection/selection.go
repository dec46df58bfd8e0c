// Package selection picks which topics to offer next. It is stateless:
// callers supply the candidate set, the recently-shown exclusion set,
// and a random source.
package selection

import (
	"math/rand/v2"

	"github.com/recollect-app/recollect/internal/topic"
)

// Pick chooses up to count topics uniformly at random without
// replacement, excluding recently-shown ids. When the exclusion leaves
// fewer than count topics, the full candidate set is used instead:
// running out of fresh topics degrades to allowing repeats, never to
// an empty result.
func Pick(candidates []topic.Topic, recent map[string]struct{}, count int, rng *rand.Rand) []topic.Topic {
	if len(candidates) == 0 || count <= 0 {
		return nil
	}

	available := make([]topic.Topic, 0, len(candidates))
	for _, t := range candidates {
		if _, shown := recent[t.ID]; !shown {
			available = append(available, t)
		}
	}

	// Exhaustion fallback.
	if len(available) < count {
		available = append(available[:0:0], candidates...)
	}

	// Shuffle-and-slice keeps the draw unbiased for any candidate
	// set size, unlike a sort-by-random-key comparator.
	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	if count > len(available) {
		count = len(available)
	}
	return available[:count]
}
