// Package kindling implements an Anki-style spaced repetition scheduler.
//
// kindling owns a deck's per-card schedule state: it decides which cards
// are due, in what order they should be studied, and how a card's schedule
// changes after each review outcome. Card content, rendering, and durable
// storage are the caller's concern; the scheduler sees only opaque string
// identifiers and a snapshot it can export and re-import.
//
// Basic usage:
//
//	s := kindling.NewScheduler(kindling.Config{})
//
//	id, err := kindling.DeriveID("Atomic Habits", "James Clear", "Every action you take...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rec, err := s.Review(id, kindling.Good)
package kindling
