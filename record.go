package kindling

import "time"

// Record holds the schedule state for a single card. The card's content
// lives elsewhere; the scheduler keys records by the opaque CardID.
type Record struct {
	CardID        string    `json:"card_id"`
	State         State     `json:"state"`
	EaseFactor    float64   `json:"ease_factor"`
	IntervalDays  int       `json:"interval_days"`
	Repetitions   int       `json:"repetitions"`
	Lapses        int       `json:"lapses"`
	Step          int       `json:"step"` // index into the active step list; meaningful in Learning/Relearning.
	Due           time.Time `json:"due"`
	LastReview    time.Time `json:"last_review"` // zero before first review.
	TotalReviews  int       `json:"total_reviews"`
	CorrectStreak int       `json:"correct_streak"`
	Buried        bool      `json:"buried"`
}

// newRecord creates a New-state record due immediately.
func newRecord(id string, ease float64, now time.Time) Record {
	return Record{
		CardID:     id,
		State:      New,
		EaseFactor: ease,
		Due:        now,
	}
}

// Reviewed reports whether the card has been reviewed at least once.
func (r Record) Reviewed() bool {
	return !r.LastReview.IsZero()
}

// DueAt reports whether the card's scheduled review time has passed at t.
func (r Record) DueAt(t time.Time) bool {
	return !r.Due.After(t)
}
