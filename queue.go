package kindling

import "sort"

// DueCards filters candidateIDs down to cards whose scheduled review time
// has passed: Learning/Relearning cards whose step wait has elapsed and
// Review cards past due. Buried cards and New cards are excluded (New
// cards are NewCards' domain). Input order is preserved; the result is
// truncated to MaxReviewsPerDay when that cap is set.
func (s *Scheduler) DueCards(candidateIDs []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]string, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		rec := s.peekLocked(id, now)
		if rec.Buried || rec.State == New || !rec.DueAt(now) {
			continue
		}
		out = append(out, id)
	}
	return capList(out, s.cfg.MaxReviewsPerDay)
}

// NewCards filters candidateIDs down to unseen (New-state) cards, skipping
// buried ones, truncated to NewPerDay when that cap is set.
func (s *Scheduler) NewCards(candidateIDs []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]string, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		rec := s.peekLocked(id, now)
		if rec.Buried || rec.State != New {
			continue
		}
		out = append(out, id)
	}
	return capList(out, s.cfg.NewPerDay)
}

// StudyCards builds today's study queue: due cards first, then new cards,
// deduplicated. New cards are capped at NewPerDay, and the whole queue at
// MaxReviewsPerDay, so due cards win when both compete for the remaining
// quota.
func (s *Scheduler) StudyCards(candidateIDs []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]string, 0, len(candidateIDs))
	seen := make(map[string]struct{}, len(candidateIDs))

	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	for _, id := range candidateIDs {
		rec := s.peekLocked(id, now)
		if rec.Buried || rec.State == New || !rec.DueAt(now) {
			continue
		}
		add(id)
	}

	fresh := 0
	for _, id := range candidateIDs {
		if s.cfg.NewPerDay > 0 && fresh >= s.cfg.NewPerDay {
			break
		}
		rec := s.peekLocked(id, now)
		if rec.Buried || rec.State != New {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		add(id)
		fresh++
	}

	return capList(out, s.cfg.MaxReviewsPerDay)
}

// SortedByPriority orders candidateIDs most-to-least urgent:
//
//  1. buried cards last
//  2. Learning/Relearning before Review and New
//  3. among Learning/Relearning: soonest step wait first
//  4. due Review cards before non-due
//  5. among due Review cards: most overdue (oldest timestamp) first
//  6. New cards after all Review cards
//  7. ties: lowest ease factor first, then input order
//
// The comparator is a strict weak ordering and the sort is stable, so
// repeated calls over unchanged state return identical output.
func (s *Scheduler) SortedByPriority(candidateIDs []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	recs := make([]Record, len(candidateIDs))
	for i, id := range candidateIDs {
		recs[i] = s.peekLocked(id, now)
	}

	order := make([]int, len(candidateIDs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		a, b := recs[order[x]], recs[order[y]]

		if a.Buried != b.Buried {
			return !a.Buried
		}
		ra, rb := priorityClass(a), priorityClass(b)
		if ra != rb {
			return ra < rb
		}
		switch ra {
		case classSteps:
			if !a.Due.Equal(b.Due) {
				return a.Due.Before(b.Due)
			}
		case classReview:
			da, db := a.DueAt(now), b.DueAt(now)
			if da != db {
				return da
			}
			if da && !a.Due.Equal(b.Due) {
				return a.Due.Before(b.Due)
			}
		}
		return a.EaseFactor < b.EaseFactor
	})

	out := make([]string, len(candidateIDs))
	for i, idx := range order {
		out[i] = candidateIDs[idx]
	}
	return out
}

const (
	classSteps = iota // Learning or Relearning
	classReview
	classNew
)

func priorityClass(rec Record) int {
	switch {
	case rec.State.inSteps():
		return classSteps
	case rec.State == Review:
		return classReview
	default:
		return classNew
	}
}

// capList truncates out to limit when limit is nonzero (0 = unlimited).
func capList(out []string, limit int) []string {
	if limit > 0 && len(out) > limit {
		return out[:limit]
	}
	return out
}
