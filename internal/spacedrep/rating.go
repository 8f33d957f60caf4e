package spacedrep

import "errors"

// ErrInvalidRating is returned when a rating outside the closed enum is
// submitted. This is a programming error in the caller, never coerced.
var ErrInvalidRating = errors.New("spacedrep: invalid review rating")

// Rating is the learner's three-way recall self-assessment.
type Rating int

const (
	RatingHard Rating = iota + 1
	RatingMedium
	RatingEasy
)

var ratingNames = map[Rating]string{
	RatingHard:   "hard",
	RatingMedium: "medium",
	RatingEasy:   "easy",
}

func (r Rating) String() string {
	if s, ok := ratingNames[r]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether r is one of the defined ratings.
func (r Rating) Valid() bool {
	_, ok := ratingNames[r]
	return ok
}

// ParseRating converts a rating name to its Rating value.
func ParseRating(s string) (Rating, error) {
	for r, name := range ratingNames {
		if name == s {
			return r, nil
		}
	}
	return 0, ErrInvalidRating
}

// quality maps a rating onto the SM-2 quality scale.
// Hard is a failing response (q < 3); Medium and Easy pass.
func (r Rating) quality() int {
	switch r {
	case RatingHard:
		return 2
	case RatingMedium:
		return 3
	case RatingEasy:
		return 5
	}
	return -1
}
