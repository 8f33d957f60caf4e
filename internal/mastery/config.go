package mastery

import "fmt"

const (
	// DefaultHalfLifeDays is the default recency-decay half-life.
	DefaultHalfLifeDays = 14.0

	// DefaultEventWindow is the default per-item bound on retained
	// failure events.
	DefaultEventWindow = 200

	// DefaultSuccessCredit scales how much a decayed success marker
	// offsets prior failures.
	DefaultSuccessCredit = 0.25
)

// Config holds failure-analytics settings. Half-life and thresholds are
// tuning constants with no single canonical value; they are explicit
// configuration, never hidden in the scoring code.
type Config struct {
	HalfLifeDays  float64
	EventWindow   int
	SuccessCredit float64
	Thresholds    Thresholds
}

// DefaultConfig returns sensible defaults for failure analytics.
func DefaultConfig() Config {
	return Config{
		HalfLifeDays:  DefaultHalfLifeDays,
		EventWindow:   DefaultEventWindow,
		SuccessCredit: DefaultSuccessCredit,
		Thresholds: Thresholds{
			Learning:    0.5,
			Challenging: 1.5,
			Struggling:  3.0,
		},
	}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.HalfLifeDays <= 0 {
		return fmt.Errorf("mastery: half-life must be positive, got %v", c.HalfLifeDays)
	}
	if c.EventWindow <= 0 {
		return fmt.Errorf("mastery: event window must be positive, got %d", c.EventWindow)
	}
	if c.SuccessCredit < 0 {
		return fmt.Errorf("mastery: success credit must be non-negative, got %v", c.SuccessCredit)
	}
	if !c.Thresholds.Ascending() {
		return fmt.Errorf("mastery: thresholds must be strictly ascending, got %+v", c.Thresholds)
	}
	return nil
}
