package kindling

import (
	"testing"
	"time"
)

// seedDeck installs a mixed-state deck around t0:
//
//	learn-soon   Learning, step wait elapsed 5m ago
//	learn-later  Learning, step wait elapses in 5m
//	overdue      Review, due 2 days ago
//	due-now      Review, due exactly now
//	ahead        Review, due in 10 days
//	fresh-a      New
//	fresh-b      New
//	leech        Review, buried
func seedDeck(s *Scheduler) {
	s.ImportSnapshot(Snapshot{
		"learn-soon":  {State: Learning, Step: 1, EaseFactor: 2.5, Due: t0.Add(-5 * time.Minute)},
		"learn-later": {State: Learning, Step: 0, EaseFactor: 2.5, Due: t0.Add(5 * time.Minute)},
		"overdue":     {State: Review, IntervalDays: 10, EaseFactor: 2.5, Due: t0.AddDate(0, 0, -2)},
		"due-now":     {State: Review, IntervalDays: 10, EaseFactor: 2.5, Due: t0},
		"ahead":       {State: Review, IntervalDays: 10, EaseFactor: 2.5, Due: t0.AddDate(0, 0, 10)},
		"fresh-a":     {State: New, EaseFactor: 2.5, Due: t0},
		"fresh-b":     {State: New, EaseFactor: 2.5, Due: t0},
		"leech":       {State: Review, IntervalDays: 10, EaseFactor: 2.5, Due: t0.AddDate(0, 0, -5), Buried: true},
	})
}

var deckIDs = []string{"learn-soon", "learn-later", "overdue", "due-now", "ahead", "fresh-a", "fresh-b", "leech"}

func equalIDs(t *testing.T, name string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s = %v, want %v", name, got, want)
		}
	}
}

// --- DueCards ---

func TestDueCards(t *testing.T) {
	s := testSched(Config{})
	seedDeck(s)

	// Elapsed learning cards and past-due review cards, input order,
	// buried and New excluded.
	equalIDs(t, "DueCards", s.DueCards(deckIDs), []string{"learn-soon", "overdue", "due-now"})
}

func TestDueCardsPreservesInputOrder(t *testing.T) {
	s := testSched(Config{})
	seedDeck(s)

	ids := []string{"due-now", "learn-soon", "overdue"}
	equalIDs(t, "DueCards", s.DueCards(ids), ids)
}

func TestDueCardsCap(t *testing.T) {
	s := testSched(Config{MaxReviewsPerDay: 2})
	seedDeck(s)

	equalIDs(t, "DueCards", s.DueCards(deckIDs), []string{"learn-soon", "overdue"})
}

func TestDueCardsUnseenIDsAreNotDue(t *testing.T) {
	s := testSched(Config{})
	if got := s.DueCards([]string{"ghost"}); len(got) != 0 {
		t.Errorf("DueCards(unseen) = %v, want empty", got)
	}
	// The query must not create records as a side effect.
	if snap := s.ExportSnapshot(); len(snap) != 0 {
		t.Errorf("query created %d records", len(snap))
	}
}

// --- NewCards ---

func TestNewCards(t *testing.T) {
	s := testSched(Config{})
	seedDeck(s)

	equalIDs(t, "NewCards", s.NewCards(deckIDs), []string{"fresh-a", "fresh-b"})
}

func TestNewCardsCap(t *testing.T) {
	s := testSched(Config{NewPerDay: 1})
	seedDeck(s)

	equalIDs(t, "NewCards", s.NewCards(deckIDs), []string{"fresh-a"})
}

func TestNewCardsBuriedExcluded(t *testing.T) {
	s := testSched(Config{})
	s.ImportSnapshot(Snapshot{
		"buried-new": {State: New, EaseFactor: 2.5, Due: t0, Buried: true},
	})
	if got := s.NewCards([]string{"buried-new"}); len(got) != 0 {
		t.Errorf("NewCards = %v, want empty", got)
	}
}

// --- StudyCards ---

func TestStudyCards(t *testing.T) {
	s := testSched(Config{})
	seedDeck(s)

	want := []string{"learn-soon", "overdue", "due-now", "fresh-a", "fresh-b"}
	equalIDs(t, "StudyCards", s.StudyCards(deckIDs), want)
}

func TestStudyCardsDuePriorityUnderQuota(t *testing.T) {
	// Quota of 4 leaves room for one new card after the three due ones.
	s := testSched(Config{MaxReviewsPerDay: 4})
	seedDeck(s)

	want := []string{"learn-soon", "overdue", "due-now", "fresh-a"}
	equalIDs(t, "StudyCards", s.StudyCards(deckIDs), want)
}

func TestStudyCardsNewCap(t *testing.T) {
	s := testSched(Config{NewPerDay: 1})
	seedDeck(s)

	want := []string{"learn-soon", "overdue", "due-now", "fresh-a"}
	equalIDs(t, "StudyCards", s.StudyCards(deckIDs), want)
}

func TestStudyCardsDeduplicates(t *testing.T) {
	s := testSched(Config{})
	seedDeck(s)

	ids := []string{"overdue", "overdue", "fresh-a", "fresh-a"}
	equalIDs(t, "StudyCards", s.StudyCards(ids), []string{"overdue", "fresh-a"})
}

// --- SortedByPriority ---

func TestSortedByPriority(t *testing.T) {
	s := testSched(Config{})
	seedDeck(s)

	// Learning first (soonest wait first), then due review (most overdue
	// first), then future review, then new, buried always last.
	want := []string{
		"learn-soon", "learn-later",
		"overdue", "due-now",
		"ahead",
		"fresh-a", "fresh-b",
		"leech",
	}
	equalIDs(t, "SortedByPriority", s.SortedByPriority(deckIDs), want)
}

func TestSortedByPriorityEaseTieBreak(t *testing.T) {
	s := testSched(Config{})
	s.ImportSnapshot(Snapshot{
		"easy-card": {State: Review, IntervalDays: 10, EaseFactor: 2.8, Due: t0.AddDate(0, 0, 3)},
		"hard-card": {State: Review, IntervalDays: 10, EaseFactor: 1.5, Due: t0.AddDate(0, 0, 3)},
	})

	// Both non-due review: lower ease (harder card) sorts first.
	want := []string{"hard-card", "easy-card"}
	equalIDs(t, "SortedByPriority", s.SortedByPriority([]string{"easy-card", "hard-card"}), want)
}

func TestSortedByPriorityIdempotent(t *testing.T) {
	s := testSched(Config{})
	seedDeck(s)

	first := s.SortedByPriority(deckIDs)
	second := s.SortedByPriority(first)
	equalIDs(t, "re-sort", second, first)

	// Sorting a shuffled view converges to the same order.
	shuffled := []string{"leech", "fresh-b", "ahead", "due-now", "overdue", "learn-later", "learn-soon", "fresh-a"}
	resorted := s.SortedByPriority(shuffled)
	equalIDs(t, "shuffled re-sort", resorted, first)
}

func TestSortedByPriorityStableForEqualKeys(t *testing.T) {
	s := testSched(Config{})
	s.ImportSnapshot(Snapshot{
		"twin-a": {State: New, EaseFactor: 2.5, Due: t0},
		"twin-b": {State: New, EaseFactor: 2.5, Due: t0},
	})

	// Indistinguishable records keep input order.
	equalIDs(t, "SortedByPriority", s.SortedByPriority([]string{"twin-b", "twin-a"}), []string{"twin-b", "twin-a"})
	equalIDs(t, "SortedByPriority", s.SortedByPriority([]string{"twin-a", "twin-b"}), []string{"twin-a", "twin-b"})
}
