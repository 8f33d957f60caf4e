package mastery

import (
	"math"
	"time"
)

// decayWeight returns the exponential recency weight of an event:
// 2^(-ageDays/halfLifeDays). An event exactly one half-life old counts
// half as much as one that just happened. Future-dated events clamp to
// weight 1 rather than amplifying.
func decayWeight(occurredAt, now time.Time, halfLifeDays float64) float64 {
	ageDays := now.Sub(occurredAt).Hours() / 24.0
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp2(-ageDays / halfLifeDays)
}

// Score computes the weighted failure score for an item from its recent
// failure and success history. Failures add their decayed weight;
// successes subtract theirs scaled by the success credit, floored at
// zero. Pure: identical inputs always yield the identical score.
func Score(failures []FailureEvent, successes []SuccessMark, now time.Time, cfg Config) float64 {
	halfLife := cfg.HalfLifeDays
	if halfLife <= 0 {
		halfLife = DefaultHalfLifeDays
	}

	score := 0.0
	for _, ev := range failures {
		score += decayWeight(ev.OccurredAt, now, halfLife)
	}
	for _, m := range successes {
		score -= cfg.SuccessCredit * decayWeight(m.OccurredAt, now, halfLife)
	}
	if score < 0 {
		score = 0
	}
	return score
}
