package kindling

import "time"

// applyOutcome runs the review state machine on rec in place.
// It touches only the record and the (immutable) config, so it is safe
// to run on a detached copy for previews.
func (s *Scheduler) applyOutcome(rec *Record, outcome Outcome, now time.Time) {
	switch rec.State {
	case Learning, Relearning:
		s.stepOutcome(rec, outcome, now)
	case Review:
		s.reviewOutcome(rec, outcome, now)
	default:
		s.newOutcome(rec, outcome, now)
	}

	if outcome == Again {
		rec.CorrectStreak = 0
	}
	if rec.Lapses >= s.cfg.LeechThreshold {
		rec.Buried = true
	}
	rec.TotalReviews++
	rec.LastReview = now
}

// newOutcome handles a card's very first review. The card enters the
// learning steps at step 0 and the outcome is applied there, so Again and
// Hard wait at the first step while Good advances past it ([Good, Good]
// with the default two steps graduates on the second answer).
func (s *Scheduler) newOutcome(rec *Record, outcome Outcome, now time.Time) {
	if outcome == Easy {
		s.graduate(rec, s.cfg.EasyIvl, now)
		return
	}
	rec.State = Learning
	rec.Step = 0
	s.stepOutcome(rec, outcome, now)
}

// stepOutcome handles Learning and Relearning reviews.
func (s *Scheduler) stepOutcome(rec *Record, outcome Outcome, now time.Time) {
	steps := s.stepsFor(rec.State)
	if len(steps) == 0 {
		s.leaveSteps(rec, now)
		return
	}

	switch outcome {
	case Again:
		rec.Step = 0
		rec.Due = now.Add(steps[0])

	case Hard:
		if rec.Step > 0 {
			rec.Step--
		}
		if rec.Step >= len(steps) {
			// Imported record with a stale index past a shortened step list.
			rec.Step = len(steps) - 1
		}
		rec.Due = now.Add(steps[rec.Step])

	case Good:
		next := rec.Step + 1
		if next >= len(steps) {
			s.leaveSteps(rec, now)
			return
		}
		rec.Step = next
		rec.Due = now.Add(steps[next])

	case Easy:
		if rec.State == Relearning {
			s.returnToReview(rec, s.cfg.clampIvl(int(float64(rec.IntervalDays)*s.cfg.EasyBonus)), now)
			return
		}
		s.graduate(rec, s.cfg.EasyIvl, now)
	}
}

// reviewOutcome handles Review-state reviews: lapse on Again, otherwise
// grow the interval by the ease arithmetic.
func (s *Scheduler) reviewOutcome(rec *Record, outcome Outcome, now time.Time) {
	cfg := s.cfg
	switch outcome {
	case Again:
		rec.Lapses++
		rec.Repetitions = 0
		rec.EaseFactor = max(cfg.MinimumEase, rec.EaseFactor-lapseEasePenalty)

		ivl := int(float64(rec.IntervalDays) * cfg.LapseNewIvl)
		if ivl < 1 {
			ivl = 1
		}
		if ivl > cfg.MaximumIvl {
			ivl = cfg.MaximumIvl
		}
		rec.IntervalDays = ivl

		if len(cfg.RelearningSteps) == 0 {
			// No relearning steps: the lapsed interval applies directly.
			rec.Due = now.AddDate(0, 0, ivl)
			return
		}
		rec.State = Relearning
		rec.Step = 0
		rec.Due = now.Add(cfg.RelearningSteps[0])

	case Hard:
		grown := int(float64(rec.IntervalDays) * cfg.HardMultiplier * cfg.IntervalModifier)
		ivl := rec.IntervalDays + 1
		if grown > ivl {
			ivl = grown
		}
		rec.IntervalDays = cfg.clampIvl(ivl)
		rec.EaseFactor = max(cfg.MinimumEase, rec.EaseFactor-hardEasePenalty)
		rec.Due = now.AddDate(0, 0, rec.IntervalDays)

	case Good:
		rec.IntervalDays = cfg.clampIvl(int(float64(rec.IntervalDays) * rec.EaseFactor * cfg.IntervalModifier))
		rec.Repetitions++
		rec.CorrectStreak++
		rec.Due = now.AddDate(0, 0, rec.IntervalDays)

	case Easy:
		rec.IntervalDays = cfg.clampIvl(int(float64(rec.IntervalDays) * rec.EaseFactor * cfg.EasyBonus * cfg.IntervalModifier))
		rec.EaseFactor += easyEaseReward
		rec.Repetitions++
		rec.CorrectStreak++
		rec.Due = now.AddDate(0, 0, rec.IntervalDays)
	}
}

// leaveSteps exits the step list upward: Learning graduates at the
// graduating interval; Relearning returns to Review keeping the interval
// computed at lapse time.
func (s *Scheduler) leaveSteps(rec *Record, now time.Time) {
	if rec.State == Relearning {
		s.returnToReview(rec, s.cfg.clampIvl(rec.IntervalDays), now)
		return
	}
	s.graduate(rec, s.cfg.GraduatingIvl, now)
}

// graduate promotes the card to Review with a fresh interval and resets
// the success counters to 1 for the review that got it there.
func (s *Scheduler) graduate(rec *Record, days int, now time.Time) {
	rec.State = Review
	rec.Step = 0
	rec.IntervalDays = s.cfg.clampIvl(days)
	rec.Repetitions = 1
	rec.CorrectStreak = 1
	rec.Due = now.AddDate(0, 0, rec.IntervalDays)
}

// returnToReview moves a Relearning card back to Review at the given interval.
func (s *Scheduler) returnToReview(rec *Record, days int, now time.Time) {
	rec.State = Review
	rec.Step = 0
	rec.IntervalDays = days
	rec.Due = now.AddDate(0, 0, days)
}

// stepsFor returns the step durations for the given state.
func (s *Scheduler) stepsFor(state State) []time.Duration {
	switch state {
	case Learning:
		return s.cfg.LearningSteps
	case Relearning:
		return s.cfg.RelearningSteps
	default:
		return nil
	}
}
