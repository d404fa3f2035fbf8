// Package forecast projects the review load a deck policy produces.
//
// It replays simulated reviews through the real scheduling engine: each
// card draws outcomes from a probability mix and is reviewed whenever it
// comes due, and the resulting reviews are bucketed per day over the
// horizon. [Project] evaluates one policy; [Compare] evaluates several
// candidate policies against the same simulated deck, which is the
// cheapest way to see what loosening a leech threshold or shortening the
// learning steps does to daily workload before inflicting it on a user.
//
// Projections are deterministic for a given seed.
package forecast
