package kindling

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler owns the mapping from card identifier to schedule record and
// applies the deck's policy to it.
//
// All operations are synchronous and touch at most one record plus a
// full-map scan; an internal RWMutex makes the scheduler safe for
// concurrent use. Each logical operation reads the clock exactly once.
type Scheduler struct {
	mu   sync.RWMutex
	cfg  Config
	recs map[string]*Record
	now  func() time.Time
	log  zerolog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the scheduler's time source. Useful for tests and
// simulation; defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithLogger sets the logger for diagnostics events (config clamps,
// dropped snapshot records). Defaults to zerolog.Nop().
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scheduler) { s.log = log }
}

// NewScheduler creates a Scheduler with the given policy. Out-of-range
// config values are clamped rather than rejected (they are user-tunable
// preferences); each clamp is logged at warn level.
func NewScheduler(cfg Config, opts ...Option) *Scheduler {
	s := &Scheduler{
		recs: make(map[string]*Record),
		now:  time.Now,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg = cfg.withDefaults(s.log)
	return s
}

// Config returns the scheduler's effective (defaulted and clamped) policy.
func (s *Scheduler) Config() Config {
	return s.cfg
}

// GetOrCreate returns the schedule record for the card, creating a
// New-state record due immediately if the card has never been seen.
func (s *Scheduler) GetOrCreate(cardID string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.getOrCreateLocked(cardID, s.now())
}

func (s *Scheduler) getOrCreateLocked(cardID string, now time.Time) *Record {
	if rec, ok := s.recs[cardID]; ok {
		return rec
	}
	rec := newRecord(cardID, s.cfg.StartingEase, now)
	s.recs[cardID] = &rec
	return &rec
}

// peekLocked returns the card's record without creating one: unseen cards
// are reported as fresh New-state records. Callers must hold at least a
// read lock.
func (s *Scheduler) peekLocked(cardID string, now time.Time) Record {
	if rec, ok := s.recs[cardID]; ok {
		return *rec
	}
	return newRecord(cardID, s.cfg.StartingEase, now)
}

// Review processes a review outcome for the card and returns the updated
// record. Unseen cards are created first, so a review can never miss.
// Returns ErrInvalidOutcome for outcomes outside Again..Easy.
func (s *Scheduler) Review(cardID string, outcome Outcome) (Record, error) {
	if !outcome.IsValid() {
		return Record{}, fmt.Errorf("%w: %d", ErrInvalidOutcome, int(outcome))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := s.getOrCreateLocked(cardID, now)
	s.applyOutcome(rec, outcome, now)
	return *rec, nil
}

// Preview returns the record that each outcome would produce, without
// mutating any state. All four hypotheticals share one clock reading.
func (s *Scheduler) Preview(cardID string) map[Outcome]Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	base := s.peekLocked(cardID, now)
	result := make(map[Outcome]Record, 4)
	for _, o := range []Outcome{Again, Hard, Good, Easy} {
		rec := base
		s.applyOutcome(&rec, o, now)
		result[o] = rec
	}
	return result
}

// Snapshot is the persistence shape of a deck: card identifier to record.
// The caller owns durable storage; ExportSnapshot and ImportSnapshot are
// plain in-memory copies.
type Snapshot map[string]Record

// ExportSnapshot returns a copy of every schedule record in the deck.
func (s *Scheduler) ExportSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(Snapshot, len(s.recs))
	for id, rec := range s.recs {
		snap[id] = *rec
	}
	return snap
}

// ImportSnapshot replaces the deck's schedule state with snap. Records
// with fields that cannot be interpreted are logged and dropped (the card
// is treated as unseen on next access); partially-populated records get
// the same defaults as GetOrCreate, so older snapshots keep loading as
// the schema grows.
func (s *Scheduler) ImportSnapshot(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.recs = make(map[string]*Record, len(snap))
	for id, rec := range snap {
		clean, err := s.sanitizeRecord(id, rec, now)
		if err != nil {
			s.log.Warn().Str("card_id", id).Err(err).Msg("dropping snapshot record")
			continue
		}
		s.recs[id] = &clean
	}
}
