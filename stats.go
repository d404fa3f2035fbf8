package kindling

// Stats summarizes a set of candidate cards in a single pass.
type Stats struct {
	Total       int     `json:"total"`
	New         int     `json:"new"`
	Learning    int     `json:"learning"` // Learning + Relearning
	Review      int     `json:"review"`
	Due         int     `json:"due"`          // non-buried cards past due, any state
	AverageEase float64 `json:"average_ease"` // mean over non-buried Review cards
}

// Stats computes deck statistics over candidateIDs. AverageEase is the
// mean ease factor of non-buried Review-state cards, defaulting to the
// starting ease when there are none.
func (s *Scheduler) Stats(candidateIDs []string) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var st Stats
	var easeSum float64
	var easeCount int

	for _, id := range candidateIDs {
		rec := s.peekLocked(id, now)
		st.Total++

		switch rec.State {
		case New:
			st.New++
		case Learning, Relearning:
			st.Learning++
		case Review:
			st.Review++
			if !rec.Buried {
				easeSum += rec.EaseFactor
				easeCount++
			}
		}

		if !rec.Buried && rec.DueAt(now) {
			st.Due++
		}
	}

	if easeCount > 0 {
		st.AverageEase = easeSum / float64(easeCount)
	} else {
		st.AverageEase = s.cfg.StartingEase
	}
	return st
}
