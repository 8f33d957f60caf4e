package mastery

import (
	"fmt"
	"time"
)

// ModeContext identifies the learning activity in which an outcome occurred.
type ModeContext string

const (
	ModeFlashcard       ModeContext = "flashcard"
	ModeTypeRecall      ModeContext = "type-recall"
	ModeFillBlank       ModeContext = "fill-blank"
	ModeCloze           ModeContext = "cloze"
	ModeSpeedMatch      ModeContext = "speed-match"
	ModeMultipleAnswer  ModeContext = "multiple-answer"
	ModeWordAssociation ModeContext = "word-association"
	ModeBeatClock       ModeContext = "beat-clock"
	ModeStreakMaster    ModeContext = "streak-master"
)

var validModes = map[ModeContext]bool{
	ModeFlashcard:       true,
	ModeTypeRecall:      true,
	ModeFillBlank:       true,
	ModeCloze:           true,
	ModeSpeedMatch:      true,
	ModeMultipleAnswer:  true,
	ModeWordAssociation: true,
	ModeBeatClock:       true,
	ModeStreakMaster:    true,
}

// Valid reports whether m is one of the defined mode contexts.
func (m ModeContext) Valid() bool { return validModes[m] }

// ErrorKind classifies what went wrong in a failed answer.
type ErrorKind string

const (
	KindTranslation     ErrorKind = "translation"
	KindRecognition     ErrorKind = "recognition"
	KindRecall          ErrorKind = "recall"
	KindSpelling        ErrorKind = "spelling"
	KindTimeout         ErrorKind = "timeout"
	KindMultipleChoice  ErrorKind = "multiple-choice"
	KindFillBlank       ErrorKind = "fill-blank"
	KindCloze           ErrorKind = "cloze"
	KindWordAssociation ErrorKind = "word-association"
	KindSpeedMatch      ErrorKind = "speed-match"
)

var validKinds = map[ErrorKind]bool{
	KindTranslation:     true,
	KindRecognition:     true,
	KindRecall:          true,
	KindSpelling:        true,
	KindTimeout:         true,
	KindMultipleChoice:  true,
	KindFillBlank:       true,
	KindCloze:           true,
	KindWordAssociation: true,
	KindSpeedMatch:      true,
}

// Valid reports whether k is one of the defined error kinds.
func (k ErrorKind) Valid() bool { return validKinds[k] }

// FailureEvent records a single failed answer. Events are append-only;
// the store prunes each item's log to a bounded recent window.
type FailureEvent struct {
	ID             string      `json:"id"`
	ItemID         string      `json:"item_id"`
	Mode           ModeContext `json:"mode"`
	Kind           ErrorKind   `json:"kind"`
	OccurredAt     time.Time   `json:"occurred_at"`
	LatencyMs      int         `json:"latency_ms"`
	UserAnswer     string      `json:"user_answer"`
	ExpectedAnswer string      `json:"expected_answer"`
}

// Validate checks the closed enums and field ranges.
func (ev FailureEvent) Validate() error {
	if ev.ItemID == "" {
		return fmt.Errorf("mastery: failure event missing item ID")
	}
	if !ev.Mode.Valid() {
		return fmt.Errorf("mastery: unknown mode context %q", ev.Mode)
	}
	if !ev.Kind.Valid() {
		return fmt.Errorf("mastery: unknown error kind %q", ev.Kind)
	}
	if ev.LatencyMs < 0 {
		return fmt.Errorf("mastery: negative latency %d", ev.LatencyMs)
	}
	return nil
}

// SuccessMark is a lightweight marker of a correct answer. It never
// removes failure events; it only accelerates their recency decay.
type SuccessMark struct {
	ItemID     string      `json:"item_id"`
	Mode       ModeContext `json:"mode"`
	OccurredAt time.Time   `json:"occurred_at"`
}
