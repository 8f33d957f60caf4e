package mastery

// Level is the derived classification of how well a learner currently
// retains an item. It is never stored as ground truth: every call
// recomputes it from the raw event history, so transitions are implicit
// and always consistent with the log.
type Level string

const (
	LevelStruggling  Level = "struggling"
	LevelChallenging Level = "challenging"
	LevelLearning    Level = "learning"
	LevelMastered    Level = "mastered"
)

// Rank orders levels from most to least in need of attention.
// Struggling is 0, Mastered is 3.
func (l Level) Rank() int {
	switch l {
	case LevelStruggling:
		return 0
	case LevelChallenging:
		return 1
	case LevelLearning:
		return 2
	case LevelMastered:
		return 3
	}
	return -1
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool { return l.Rank() >= 0 }

// ParseLevel converts a level name to its Level value.
func ParseLevel(s string) (Level, bool) {
	l := Level(s)
	return l, l.Valid()
}

// Thresholds are the ascending score cutoffs mapping a decayed failure
// score onto the four levels. The exact values are tuning constants
// supplied at construction, not hidden in the mapping.
type Thresholds struct {
	// Learning is the score below which an item counts as Mastered.
	Learning float64
	// Challenging is the score below which an item counts as Learning.
	Challenging float64
	// Struggling is the score below which an item counts as
	// Challenging; at or above it the item is Struggling.
	Struggling float64
}

// Ascending reports whether the cutoffs are strictly ordered.
func (t Thresholds) Ascending() bool {
	return t.Learning < t.Challenging && t.Challenging < t.Struggling
}

// LevelForScore maps a weighted failure score onto a Level.
func LevelForScore(score float64, t Thresholds) Level {
	switch {
	case score < t.Learning:
		return LevelMastered
	case score < t.Challenging:
		return LevelLearning
	case score < t.Struggling:
		return LevelChallenging
	default:
		return LevelStruggling
	}
}
