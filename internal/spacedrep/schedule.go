package spacedrep

import (
	"math"
	"time"
)

// DefaultMaxIntervalDays caps interval growth to bound worst-case
// staleness for long-mastered items.
const DefaultMaxIntervalDays = 180

// Config holds scheduling settings.
type Config struct {
	MaxIntervalDays int
}

// DefaultConfig returns sensible defaults for scheduling.
func DefaultConfig() Config {
	return Config{MaxIntervalDays: DefaultMaxIntervalDays}
}

// ScheduleNext applies an SM-2 style update to a card's spacing state.
// It is a pure function: progress is taken and returned by value, and
// the only failure mode is an invalid rating.
//
// A Hard rating resets the repetition run and brings the card back
// tomorrow; Medium and Easy grow the interval through the fixed 1- and
// 6-day openers and then multiplicatively by the ease factor.
func ScheduleNext(p Progress, r Rating, now time.Time, cfg Config) (Progress, error) {
	if !r.Valid() {
		return Progress{}, ErrInvalidRating
	}
	maxInterval := cfg.MaxIntervalDays
	if maxInterval <= 0 {
		maxInterval = DefaultMaxIntervalDays
	}

	q := float64(r.quality())

	// Ease update applies on every rating, pass or fail.
	ease := p.Ease + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ease < MinEase {
		ease = MinEase
	}
	p.Ease = ease

	if r == RatingHard {
		p.Repetitions = 0
		p.IntervalDays = 1
	} else {
		p.Repetitions++
		switch p.Repetitions {
		case 1:
			p.IntervalDays = 1
		case 2:
			p.IntervalDays = 6
		default:
			next := int(math.Round(float64(p.IntervalDays) * ease))
			if next > maxInterval {
				next = maxInterval
			}
			p.IntervalDays = next
		}
	}

	p.LastReviewedAt = now
	p.DueAt = now.AddDate(0, 0, p.IntervalDays)
	return p, nil
}
