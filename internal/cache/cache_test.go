package cache

import (
	"testing"
	"time"

	"github.com/recollect-app/recollect/internal/store"
	"github.com/recollect-app/recollect/internal/topic"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestEmptyBeforeFirstPut(t *testing.T) {
	s := testStore(t)

	for _, f := range Families {
		if _, fr := s.Get(f); fr != Empty {
			t.Errorf("Get(%s) freshness = %s, want empty", f, fr)
		}
	}
}

func TestPutGetFresh(t *testing.T) {
	s := testStore(t)

	want := []topic.Topic{{ID: "t1", Prompt: "Tell me about your first job"}}
	if err := s.Put(FamilyTopics, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, fr := s.Topics()
	if fr != Fresh {
		t.Fatalf("freshness = %s, want fresh", fr)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("Topics = %+v, want [t1]", got)
	}
}

func TestFreshnessWindow(t *testing.T) {
	s := testStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	s.SetClock(func() time.Time { return now })

	if err := s.Put(FamilyCategories, []topic.Category{{ID: "c1"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	cases := []struct {
		elapsed time.Duration
		want    Freshness
	}{
		{0, Fresh},
		{23*time.Hour + 59*time.Minute, Fresh},
		{24*time.Hour + 1*time.Minute, Stale},
		{72 * time.Hour, Stale},
	}
	for _, c := range cases {
		now = base.Add(c.elapsed)
		if _, fr := s.Get(FamilyCategories); fr != c.want {
			t.Errorf("after %v: freshness = %s, want %s", c.elapsed, fr, c.want)
		}
	}
}

func TestStaleStillReturnsRecords(t *testing.T) {
	s := testStore(t)

	now := time.Now()
	s.SetClock(func() time.Time { return now })

	if err := s.Put(FamilyTopics, []topic.Topic{{ID: "t1"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	now = now.Add(48 * time.Hour)

	got, fr := s.Topics()
	if fr != Stale {
		t.Fatalf("freshness = %s, want stale", fr)
	}
	if len(got) != 1 {
		t.Errorf("stale read lost records: %+v", got)
	}
}

func TestFamiliesIndependent(t *testing.T) {
	s := testStore(t)

	now := time.Now()
	s.SetClock(func() time.Time { return now })

	if err := s.Put(FamilyCategories, []topic.Category{{ID: "c1"}}); err != nil {
		t.Fatalf("Put categories: %v", err)
	}

	// Writing topics two days later must not refresh categories.
	now = now.Add(48 * time.Hour)
	if err := s.Put(FamilyTopics, []topic.Topic{{ID: "t1"}}); err != nil {
		t.Fatalf("Put topics: %v", err)
	}

	if _, fr := s.Get(FamilyCategories); fr != Stale {
		t.Errorf("categories freshness = %s, want stale", fr)
	}
	if _, fr := s.Get(FamilyTopics); fr != Fresh {
		t.Errorf("topics freshness = %s, want fresh", fr)
	}
}

func TestInvalidate(t *testing.T) {
	s := testStore(t)

	if err := s.Put(FamilyTopics, []topic.Topic{{ID: "t1"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(FamilyHistory, []topic.HistoryEntry{{ID: "h1", TopicID: "t1"}}); err != nil {
		t.Fatalf("Put history: %v", err)
	}

	if err := s.Invalidate(FamilyTopics); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	if _, fr := s.Get(FamilyTopics); fr != Empty {
		t.Errorf("topics freshness = %s, want empty", fr)
	}
	if _, fr := s.Get(FamilyHistory); fr != Fresh {
		t.Errorf("history freshness = %s, want fresh", fr)
	}
}

func TestCorruptEnvelopeIsEmpty(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	s := New(db)

	if err := db.Set("cache/topics", []byte("{not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, fr := s.Topics()
	if fr != Empty {
		t.Errorf("freshness = %s, want empty", fr)
	}
	if got != nil {
		t.Errorf("records = %+v, want nil", got)
	}
}

func TestBrokenBackendIsEmpty(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	s := New(db)
	db.Close()

	if _, fr := s.Get(FamilyTopics); fr != Empty {
		t.Errorf("freshness after backend close = %s, want empty", fr)
	}
}
