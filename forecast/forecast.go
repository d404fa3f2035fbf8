package forecast

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/kindling-srs/kindling"
)

// ErrInvalidMix is returned when an outcome mix has a negative entry or
// no positive mass.
var ErrInvalidMix = errors.New("forecast: invalid outcome mix")

const maxReviewsPerCard = 10000

// Mix gives the relative probability of each review outcome. Entries need
// not sum to 1; they are normalized. The zero value means DefaultMix.
type Mix struct {
	Again float64
	Hard  float64
	Good  float64
	Easy  float64
}

// DefaultMix approximates a typical Anki user: mostly Good, with
// occasional failures and effortless recalls.
func DefaultMix() Mix {
	return Mix{Again: 0.12, Hard: 0.10, Good: 0.66, Easy: 0.12}
}

func (m Mix) sum() float64 {
	return m.Again + m.Hard + m.Good + m.Easy
}

func (m Mix) validate() error {
	for _, v := range []float64{m.Again, m.Hard, m.Good, m.Easy} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %+v", ErrInvalidMix, m)
		}
	}
	if m.sum() <= 0 {
		return fmt.Errorf("%w: no positive mass", ErrInvalidMix)
	}
	return nil
}

// pick draws an outcome from the mix.
func (m Mix) pick(rng *rand.Rand) kindling.Outcome {
	p := rng.Float64() * m.sum()
	switch {
	case p < m.Again:
		return kindling.Again
	case p < m.Again+m.Hard:
		return kindling.Hard
	case p < m.Again+m.Hard+m.Good:
		return kindling.Good
	default:
		return kindling.Easy
	}
}

// Config describes one projection.
// Zero values produce sensible defaults; see field comments.
type Config struct {
	Deck    kindling.Config // policy under evaluation; zero → engine defaults
	Cards   int             // simulated deck size; zero → 1000
	Horizon int             // days simulated; zero → 365
	Mix     Mix             // outcome probabilities; zero → DefaultMix
	Seed    int64           // rng seed; zero → 1
}

// Load is the projected workload of one policy.
type Load struct {
	ReviewsPerDay []int // length = horizon
	TotalReviews  int
	EndStates     map[kindling.State]int // state distribution at horizon
	BuriedCards   int                    // cards buried as leeches during the run
}

// Project simulates the deck for the configured horizon and reports the
// resulting review load. The context is checked once per card, so large
// projections stay cancellable.
func Project(ctx context.Context, cfg Config) (Load, error) {
	if cfg.Cards == 0 {
		cfg.Cards = 1000
	}
	if cfg.Horizon == 0 {
		cfg.Horizon = 365
	}
	if (cfg.Mix == Mix{}) {
		cfg.Mix = DefaultMix()
	}
	if err := cfg.Mix.validate(); err != nil {
		return Load{}, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}

	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, cfg.Horizon)

	clock := start
	sched := kindling.NewScheduler(cfg.Deck, kindling.WithClock(func() time.Time { return clock }))

	load := Load{
		ReviewsPerDay: make([]int, cfg.Horizon),
		EndStates:     make(map[kindling.State]int),
	}

	for i := 0; i < cfg.Cards; i++ {
		if err := ctx.Err(); err != nil {
			return Load{}, err
		}

		id := fmt.Sprintf("card-%06d", i)
		clock = start
		rec := sched.GetOrCreate(id)

		// maxReviewsPerCard bounds pathological configs (zero-length
		// steps with an all-Again mix never advance the clock).
		for reviews := 0; rec.Due.Before(end) && !rec.Buried && reviews < maxReviewsPerCard; reviews++ {
			clock = rec.Due
			if clock.Before(start) {
				clock = start
			}
			day := int(clock.Sub(start).Hours() / 24)
			if day >= cfg.Horizon {
				break
			}

			rec, _ = sched.Review(id, cfg.Mix.pick(rng))
			load.ReviewsPerDay[day]++
			load.TotalReviews++
		}

		load.EndStates[rec.State]++
		if rec.Buried {
			load.BuriedCards++
		}
	}

	return load, nil
}

// Compare projects the same simulated deck under each candidate policy.
// Every candidate uses the same seed, deck size, mix, and horizon from
// base, so the loads differ only by policy. The context is checked
// between candidates.
func Compare(ctx context.Context, base Config, decks []kindling.Config) ([]Load, error) {
	loads := make([]Load, 0, len(decks))
	for _, deck := range decks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cfg := base
		cfg.Deck = deck
		load, err := Project(ctx, cfg)
		if err != nil {
			return nil, err
		}
		loads = append(loads, load)
	}
	return loads, nil
}
