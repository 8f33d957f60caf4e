package card

import "errors"

// ErrNotFound is returned when an item ID is not present in the catalog.
var ErrNotFound = errors.New("card: item not found")

// DifficultyTier orders items from beginner to advanced.
type DifficultyTier int

const (
	TierBeginner DifficultyTier = iota
	TierIntermediate
	TierAdvanced
)

var tierNames = map[DifficultyTier]string{
	TierBeginner:     "beginner",
	TierIntermediate: "intermediate",
	TierAdvanced:     "advanced",
}

func (t DifficultyTier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether t is one of the defined tiers.
func (t DifficultyTier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

// ParseTier converts a tier name to its DifficultyTier value.
func ParseTier(s string) (DifficultyTier, error) {
	for t, name := range tierNames {
		if name == s {
			return t, nil
		}
	}
	return 0, errors.New("card: unknown difficulty tier: " + s)
}

// Item is a single vocabulary entry. Immutable from the engine's
// perspective; curation happens upstream.
type Item struct {
	ID         string
	SourceText string
	TargetText string
	Category   string
	Tier       DifficultyTier
}
