package kindling

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds the deck's scheduling policy.
// Zero values produce Anki-like defaults; see field comments.
// Out-of-range values are clamped at scheduler construction, with each
// clamp reported as a warn event on the scheduler's logger.
type Config struct {
	LearningSteps    []time.Duration `json:"learning_steps"`      // nil → [1m, 10m]; empty → no steps
	RelearningSteps  []time.Duration `json:"relearning_steps"`    // nil → [10m]; empty → no steps
	GraduatingIvl    int             `json:"graduating_ivl"`      // days; zero → 1
	EasyIvl          int             `json:"easy_ivl"`            // days; zero → 4
	StartingEase     float64         `json:"starting_ease"`       // zero → 2.5
	MinimumEase      float64         `json:"minimum_ease"`        // zero → 1.3
	EasyBonus        float64         `json:"easy_bonus"`          // zero → 1.3
	IntervalModifier float64         `json:"interval_modifier"`   // zero → 1.0
	HardMultiplier   float64         `json:"hard_multiplier"`     // zero → 1.2
	LapseNewIvl      float64         `json:"lapse_new_ivl"`       // fraction of old interval kept on lapse; default 0
	MinimumIvl       int             `json:"minimum_ivl"`         // days; zero → 1
	MaximumIvl       int             `json:"maximum_ivl"`         // days; zero → 36500
	LeechThreshold   int             `json:"leech_threshold"`     // lapses before burial; zero → 8
	NewPerDay        int             `json:"new_per_day"`         // 0 = unlimited
	MaxReviewsPerDay int             `json:"max_reviews_per_day"` // 0 = unlimited
}

// Ease adjustments applied on Review-state outcomes.
const (
	lapseEasePenalty = 0.20
	hardEasePenalty  = 0.15
	easyEaseReward   = 0.15
)

// withDefaults fills zero-value fields with defaults and clamps the rest
// into sane bounds. Each clamp is logged at warn level so that silently
// adjusted user preferences stay observable.
func (c Config) withDefaults(log zerolog.Logger) Config {
	clampFloat := func(name string, v *float64, def, min float64) {
		switch {
		case *v == 0 || math.IsNaN(*v):
			*v = def
		case *v < min:
			log.Warn().Str("param", name).Float64("value", *v).Float64("clamped_to", min).
				Msg("config value out of range")
			*v = min
		}
	}
	clampInt := func(name string, v *int, def, min int) {
		switch {
		case *v == 0:
			*v = def
		case *v < min:
			log.Warn().Str("param", name).Int("value", *v).Int("clamped_to", min).
				Msg("config value out of range")
			*v = min
		}
	}

	if c.LearningSteps == nil {
		c.LearningSteps = []time.Duration{time.Minute, 10 * time.Minute}
	}
	if c.RelearningSteps == nil {
		c.RelearningSteps = []time.Duration{10 * time.Minute}
	}
	c.LearningSteps = clampSteps("learning_steps", c.LearningSteps, log)
	c.RelearningSteps = clampSteps("relearning_steps", c.RelearningSteps, log)

	clampInt("graduating_ivl", &c.GraduatingIvl, 1, 1)
	clampInt("easy_ivl", &c.EasyIvl, 4, 1)
	clampFloat("minimum_ease", &c.MinimumEase, 1.3, 1.0)
	clampFloat("starting_ease", &c.StartingEase, 2.5, c.MinimumEase)
	clampFloat("easy_bonus", &c.EasyBonus, 1.3, 1.0)
	clampFloat("interval_modifier", &c.IntervalModifier, 1.0, 0.1)
	clampFloat("hard_multiplier", &c.HardMultiplier, 1.2, 1.0)

	if c.LapseNewIvl < 0 || c.LapseNewIvl > 1 || math.IsNaN(c.LapseNewIvl) {
		clamped := math.Min(math.Max(c.LapseNewIvl, 0), 1)
		if math.IsNaN(clamped) {
			clamped = 0
		}
		log.Warn().Str("param", "lapse_new_ivl").Float64("value", c.LapseNewIvl).
			Float64("clamped_to", clamped).Msg("config value out of range")
		c.LapseNewIvl = clamped
	}

	clampInt("minimum_ivl", &c.MinimumIvl, 1, 1)
	clampInt("maximum_ivl", &c.MaximumIvl, 36500, c.MinimumIvl)
	clampInt("leech_threshold", &c.LeechThreshold, 8, 1)

	// Negative caps make no sense; clamp to unlimited.
	if c.NewPerDay < 0 {
		log.Warn().Str("param", "new_per_day").Int("value", c.NewPerDay).Int("clamped_to", 0).
			Msg("config value out of range")
		c.NewPerDay = 0
	}
	if c.MaxReviewsPerDay < 0 {
		log.Warn().Str("param", "max_reviews_per_day").Int("value", c.MaxReviewsPerDay).Int("clamped_to", 0).
			Msg("config value out of range")
		c.MaxReviewsPerDay = 0
	}

	return c
}

func clampSteps(name string, steps []time.Duration, log zerolog.Logger) []time.Duration {
	out := make([]time.Duration, len(steps))
	for i, d := range steps {
		if d < 0 {
			log.Warn().Str("param", name).Int("index", i).Dur("value", d).
				Msg("negative step duration clamped to zero")
			d = 0
		}
		out[i] = d
	}
	return out
}

// clampIvl clamps a Review-state interval into [MinimumIvl, MaximumIvl].
func (c Config) clampIvl(days int) int {
	if days < c.MinimumIvl {
		return c.MinimumIvl
	}
	if days > c.MaximumIvl {
		return c.MaximumIvl
	}
	return days
}

// fileConfig is the on-disk shape of a Config. Step durations are given
// in whole minutes, intervals in days.
type fileConfig struct {
	LearningStepsMinutes   []int   `yaml:"learning_steps_minutes"`
	RelearningStepsMinutes []int   `yaml:"relearning_steps_minutes"`
	GraduatingIntervalDays int     `yaml:"graduating_interval_days"`
	EasyIntervalDays       int     `yaml:"easy_interval_days"`
	StartingEase           float64 `yaml:"starting_ease"`
	MinimumEase            float64 `yaml:"minimum_ease"`
	EasyBonus              float64 `yaml:"easy_bonus"`
	IntervalModifier       float64 `yaml:"interval_modifier"`
	HardMultiplier         float64 `yaml:"hard_multiplier"`
	LapseNewInterval       float64 `yaml:"lapse_new_interval"`
	MinimumIntervalDays    int     `yaml:"minimum_interval_days"`
	MaximumIntervalDays    int     `yaml:"maximum_interval_days"`
	LeechThreshold         int     `yaml:"leech_threshold"`
	NewCardsPerDay         int     `yaml:"new_cards_per_day"`
	MaxReviewsPerDay       int     `yaml:"max_reviews_per_day"`
}

// ParseConfig decodes a YAML policy document. Omitted keys keep their
// zero value and so fall back to defaults at scheduler construction;
// out-of-range values are likewise clamped there, not here.
func ParseConfig(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("kindling: parse config: %w", err)
	}

	cfg := Config{
		GraduatingIvl:    fc.GraduatingIntervalDays,
		EasyIvl:          fc.EasyIntervalDays,
		StartingEase:     fc.StartingEase,
		MinimumEase:      fc.MinimumEase,
		EasyBonus:        fc.EasyBonus,
		IntervalModifier: fc.IntervalModifier,
		HardMultiplier:   fc.HardMultiplier,
		LapseNewIvl:      fc.LapseNewInterval,
		MinimumIvl:       fc.MinimumIntervalDays,
		MaximumIvl:       fc.MaximumIntervalDays,
		LeechThreshold:   fc.LeechThreshold,
		NewPerDay:        fc.NewCardsPerDay,
		MaxReviewsPerDay: fc.MaxReviewsPerDay,
	}
	cfg.LearningSteps = minutesToSteps(fc.LearningStepsMinutes)
	cfg.RelearningSteps = minutesToSteps(fc.RelearningStepsMinutes)
	return cfg, nil
}

// LoadConfig reads and parses a YAML policy file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("kindling: load config: %w", err)
	}
	return ParseConfig(data)
}

func minutesToSteps(minutes []int) []time.Duration {
	if minutes == nil {
		return nil
	}
	steps := make([]time.Duration, len(minutes))
	for i, m := range minutes {
		steps[i] = time.Duration(m) * time.Minute
	}
	return steps
}
