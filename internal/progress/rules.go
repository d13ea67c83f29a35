package progress

import (
	"fmt"
	"time"
)

const (
	DefaultMasteryThreshold    = 5
	DefaultMasteryStreak       = 3
	DefaultRaiseAfterIncorrect = 2
	DefaultLowerAfterCorrect   = 3
	DefaultHistoryLimit        = 10
)

// Rules are the thresholds of the per-word review model.
type Rules struct {
	// MasteryThreshold is the review count a word needs before it can be mastered.
	MasteryThreshold int
	// MasteryStreak is how many of the most recent answers must be correct to master a word.
	MasteryStreak int
	// RaiseAfterIncorrect consecutive wrong answers at one level raise the difficulty.
	RaiseAfterIncorrect int
	// LowerAfterCorrect consecutive correct answers at one level, followed by
	// another correct one, lower the difficulty.
	LowerAfterCorrect int
	// HistoryLimit bounds the review log kept on each word.
	HistoryLimit int
}

// DefaultRules returns the default review thresholds.
func DefaultRules() Rules {
	return Rules{
		MasteryThreshold:    DefaultMasteryThreshold,
		MasteryStreak:       DefaultMasteryStreak,
		RaiseAfterIncorrect: DefaultRaiseAfterIncorrect,
		LowerAfterCorrect:   DefaultLowerAfterCorrect,
		HistoryLimit:        DefaultHistoryLimit,
	}
}

// Validate checks that every rule is positive and fits in the review log.
func (r Rules) Validate() error {
	if r.MasteryThreshold < 1 || r.MasteryStreak < 1 || r.RaiseAfterIncorrect < 1 || r.LowerAfterCorrect < 1 {
		return fmt.Errorf("%w: review rules must be positive: %+v", ErrInvalidInput, r)
	}
	if r.HistoryLimit < r.MasteryStreak || r.HistoryLimit < r.RaiseAfterIncorrect || r.HistoryLimit <= r.LowerAfterCorrect {
		return fmt.Errorf("%w: history limit %d is too small for rules %+v", ErrInvalidInput, r.HistoryLimit, r)
	}
	return nil
}

// Clock returns the current time.
type Clock func() time.Time

func (c Clock) orNow() Clock {
	if c == nil {
		return time.Now
	}
	return c
}
