package kindling

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// sanitizeRecord validates and back-fills one imported record. It returns
// an error (wrapping ErrCorruptRecord) when a field cannot be interpreted;
// missing optional fields default the way GetOrCreate would set them.
func (s *Scheduler) sanitizeRecord(id string, rec Record, now time.Time) (Record, error) {
	if !rec.State.IsValid() {
		return Record{}, fmt.Errorf("%w: state %d", ErrCorruptRecord, int(rec.State))
	}
	if math.IsNaN(rec.EaseFactor) || math.IsInf(rec.EaseFactor, 0) {
		return Record{}, fmt.Errorf("%w: ease factor %f", ErrCorruptRecord, rec.EaseFactor)
	}

	// The map key is authoritative for identity.
	rec.CardID = id

	if rec.EaseFactor == 0 {
		rec.EaseFactor = s.cfg.StartingEase
	}
	if rec.EaseFactor < s.cfg.MinimumEase {
		rec.EaseFactor = s.cfg.MinimumEase
	}
	if rec.Due.IsZero() {
		rec.Due = now
	}
	if rec.IntervalDays < 0 {
		rec.IntervalDays = 0
	}
	if rec.Step < 0 {
		rec.Step = 0
	}
	if rec.Repetitions < 0 {
		rec.Repetitions = 0
	}
	if rec.Lapses < 0 {
		rec.Lapses = 0
	}
	if rec.TotalReviews < 0 {
		rec.TotalReviews = 0
	}
	if rec.CorrectStreak < 0 {
		rec.CorrectStreak = 0
	}
	return rec, nil
}

// ExportSnapshotJSON serializes the deck's schedule state.
func (s *Scheduler) ExportSnapshotJSON() ([]byte, error) {
	return json.Marshal(s.ExportSnapshot())
}

// ImportSnapshotJSON loads schedule state from a JSON document produced
// by ExportSnapshotJSON (or any round-trippable equivalent). Records that
// fail to decode, individually, are logged and dropped rather than
// failing the whole import: one bad record must not block loading the
// rest of a user's review history. An error is returned only when the
// document as a whole is not a JSON object.
func (s *Scheduler) ImportSnapshotJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("kindling: decode snapshot: %w", err)
	}

	snap := make(Snapshot, len(raw))
	for id, msg := range raw {
		var rec Record
		if err := json.Unmarshal(msg, &rec); err != nil {
			s.log.Warn().Str("card_id", id).Err(fmt.Errorf("%w: %v", ErrCorruptRecord, err)).
				Msg("dropping snapshot record")
			continue
		}
		snap[id] = rec
	}
	s.ImportSnapshot(snap)
	return nil
}
