package selection

import (
	"math/rand/v2"
	"testing"

	"github.com/recollect-app/recollect/internal/topic"
)

func topics(ids ...string) []topic.Topic {
	out := make([]topic.Topic, len(ids))
	for i, id := range ids {
		out[i] = topic.Topic{ID: id}
	}
	return out
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestPickEmptyCandidates(t *testing.T) {
	if got := Pick(nil, nil, 1, testRNG()); got != nil {
		t.Errorf("Pick(nil) = %+v, want nil", got)
	}
	if got := Pick(topics(), map[string]struct{}{}, 3, testRNG()); got != nil {
		t.Errorf("Pick(empty) = %+v, want nil", got)
	}
}

func TestPickZeroCount(t *testing.T) {
	if got := Pick(topics("a"), nil, 0, testRNG()); got != nil {
		t.Errorf("Pick(count=0) = %+v, want nil", got)
	}
}

func TestPickSingleAvailable(t *testing.T) {
	recent := map[string]struct{}{"a": {}, "b": {}}

	// With exactly one topic outside the window the draw is forced.
	for i := 0; i < 20; i++ {
		got := Pick(topics("a", "b", "c"), recent, 1, testRNG())
		if len(got) != 1 || got[0].ID != "c" {
			t.Fatalf("Pick = %+v, want [c]", got)
		}
	}
}

func TestPickExcludesRecent(t *testing.T) {
	recent := map[string]struct{}{"a": {}}
	rng := testRNG()

	for i := 0; i < 50; i++ {
		got := Pick(topics("a", "b", "c"), recent, 2, rng)
		if len(got) != 2 {
			t.Fatalf("Pick returned %d topics, want 2", len(got))
		}
		for _, tp := range got {
			if tp.ID == "a" {
				t.Fatal("recently-shown topic selected while alternatives remained")
			}
		}
	}
}

func TestExhaustionFallback(t *testing.T) {
	recent := map[string]struct{}{"a": {}, "b": {}}

	got := Pick(topics("a", "b"), recent, 1, testRNG())
	if len(got) != 1 {
		t.Fatalf("Pick = %+v, want one topic despite exhausted window", got)
	}
	if got[0].ID != "a" && got[0].ID != "b" {
		t.Errorf("Pick returned unknown topic %q", got[0].ID)
	}
}

func TestPartialExhaustionFallsBackToAll(t *testing.T) {
	// One topic is available but two are requested: the window resets
	// rather than short-changing the caller.
	recent := map[string]struct{}{"a": {}, "b": {}}

	got := Pick(topics("a", "b", "c"), recent, 2, testRNG())
	if len(got) != 2 {
		t.Fatalf("Pick returned %d topics, want 2", len(got))
	}
}

func TestPickCountExceedsCandidates(t *testing.T) {
	got := Pick(topics("a", "b"), nil, 5, testRNG())
	if len(got) != 2 {
		t.Fatalf("Pick returned %d topics, want all 2", len(got))
	}
}

func TestPickWithoutReplacement(t *testing.T) {
	rng := testRNG()
	for i := 0; i < 50; i++ {
		got := Pick(topics("a", "b", "c", "d"), nil, 3, rng)
		seen := make(map[string]bool)
		for _, tp := range got {
			if seen[tp.ID] {
				t.Fatalf("topic %q drawn twice in one batch", tp.ID)
			}
			seen[tp.ID] = true
		}
	}
}

func TestPickDoesNotMutateCandidates(t *testing.T) {
	cands := topics("a", "b", "c", "d")
	rng := testRNG()
	for i := 0; i < 20; i++ {
		Pick(cands, nil, 2, rng)
	}
	for i, want := range []string{"a", "b", "c", "d"} {
		if cands[i].ID != want {
			t.Fatalf("candidates reordered: %+v", cands)
		}
	}
}

func TestPickRoughlyUniform(t *testing.T) {
	rng := testRNG()
	counts := make(map[string]int)
	const draws = 3000

	for i := 0; i < draws; i++ {
		got := Pick(topics("a", "b", "c"), nil, 1, rng)
		counts[got[0].ID]++
	}

	// Each topic should land near draws/3; a 3x skew would indicate a
	// biased draw.
	for id, n := range counts {
		if n < draws/6 {
			t.Errorf("topic %s drawn %d times of %d, suspiciously few", id, n, draws)
		}
	}
}
