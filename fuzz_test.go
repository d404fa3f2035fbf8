package kindling

import (
	"testing"
	"time"
)

// FuzzReviewInvariants drives one card through an arbitrary outcome
// sequence and checks the schedule invariants after every review.
func FuzzReviewInvariants(f *testing.F) {
	f.Add([]byte{3, 3, 1, 2, 4})
	f.Add([]byte{1, 1, 1, 1, 1, 1, 1, 1, 1, 1})
	f.Add([]byte{4})
	f.Add([]byte{3, 1, 3, 3, 1, 4, 2})

	f.Fuzz(func(t *testing.T, seq []byte) {
		now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
		s := NewScheduler(Config{}, WithClock(func() time.Time { return now }))
		cfg := s.Config()

		for _, b := range seq {
			outcome := Outcome(b%4 + 1)
			rec, err := s.Review("card", outcome)
			if err != nil {
				t.Fatalf("Review(%v): %v", outcome, err)
			}

			if rec.EaseFactor < cfg.MinimumEase {
				t.Fatalf("ease %f below floor %f", rec.EaseFactor, cfg.MinimumEase)
			}
			if !rec.State.IsValid() {
				t.Fatalf("invalid state %d", int(rec.State))
			}
			if rec.State == Review {
				if rec.IntervalDays < cfg.MinimumIvl || rec.IntervalDays > cfg.MaximumIvl {
					t.Fatalf("interval %d outside [%d, %d]", rec.IntervalDays, cfg.MinimumIvl, cfg.MaximumIvl)
				}
			}
			if rec.State == New && (rec.Repetitions != 0 || rec.IntervalDays != 0) {
				t.Fatalf("New state with repetitions=%d interval=%d", rec.Repetitions, rec.IntervalDays)
			}
			if rec.Due.Before(now) {
				t.Fatalf("review scheduled in the past: %v < %v", rec.Due, now)
			}

			// Advance to the next due time so the sequence stays realistic.
			now = rec.Due
		}
	})
}

// FuzzDeriveID checks that identifier derivation never panics and always
// produces a deterministic, fixed-width hex string for non-empty inputs.
func FuzzDeriveID(f *testing.F) {
	f.Add("Atomic Habits", "James Clear", "Every action you take is a vote.")
	f.Add("a", "b", "c")
	f.Add("", "author", "content")
	f.Add("title", " ", "content")

	f.Fuzz(func(t *testing.T, title, author, content string) {
		id, err := DeriveID(title, author, content)
		if err != nil {
			return
		}
		if len(id) != 8 {
			t.Fatalf("len(%q) = %d, want 8", id, len(id))
		}
		id2, err := DeriveID(title, author, content)
		if err != nil || id2 != id {
			t.Fatalf("not deterministic: %q, %q (err %v)", id, id2, err)
		}
	})
}
