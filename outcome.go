package kindling

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Outcome represents the user's assessment of recall quality.
type Outcome int

const (
	Again Outcome = iota + 1 // Complete failure to recall.
	Hard                     // Recalled with significant difficulty.
	Good                     // Recalled with some effort.
	Easy                     // Recalled effortlessly.
)

var (
	outcomeNames  = [...]string{Again: "Again", Hard: "Hard", Good: "Good", Easy: "Easy"}
	outcomeByName = map[string]Outcome{
		"Again": Again,
		"Hard":  Hard,
		"Good":  Good,
		"Easy":  Easy,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Outcome(0)
	_ json.Marshaler           = Outcome(0)
	_ json.Unmarshaler         = (*Outcome)(nil)
	_ encoding.TextMarshaler   = Outcome(0)
	_ encoding.TextUnmarshaler = (*Outcome)(nil)
)

// OutcomeFromQuality maps an SM-2 style 0-5 quality score to an Outcome:
// scores below 3 map to Again, 3 to Hard, 4 to Good, and 5 (or above) to
// Easy. Callers holding the simpler quality-score interface can adapt
// through this without the scheduler carrying a second code path.
func OutcomeFromQuality(quality int) Outcome {
	switch {
	case quality < 3:
		return Again
	case quality == 3:
		return Hard
	case quality == 4:
		return Good
	default:
		return Easy
	}
}

// String returns the name of the outcome ("Again", "Hard", "Good", "Easy").
// For invalid values it returns "Outcome(n)".
func (o Outcome) String() string {
	if o.IsValid() {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// IsValid reports whether o is a valid outcome (Again through Easy).
func (o Outcome) IsValid() bool {
	return o >= Again && o <= Easy
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOutcome, int(o))
	}
	return []byte(outcomeNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	v, ok := outcomeByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidOutcome, text)
	}
	*o = v
	return nil
}

// MarshalJSON implements json.Marshaler. Outcome serializes as a JSON string.
func (o Outcome) MarshalJSON() ([]byte, error) {
	text, err := o.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOutcome, data)
	}
	return o.UnmarshalText([]byte(s))
}
