package progress

import (
	"fmt"

	"github.com/iremert/wordpecker/internal/vocabulary"
)

// Reviewer applies single answers to words.
type Reviewer struct {
	rules Rules
	now   Clock
}

// NewReviewer creates a Reviewer. A nil clock uses time.Now.
func NewReviewer(rules Rules, now Clock) (*Reviewer, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Reviewer{rules: rules, now: now.orNow()}, nil
}

// Rules returns the thresholds the reviewer applies.
func (r *Reviewer) Rules() Rules {
	return r.rules
}

// ReviewWord records one answer and returns the updated word.
// The input word is not modified.
func (r *Reviewer) ReviewWord(word vocabulary.Word, wasCorrect bool, responseTimeMs int64) (vocabulary.Word, error) {
	if word.ReviewCount < 0 {
		return word, fmt.Errorf("%w: word %s has review count %d", ErrInvalidInput, word.ID, word.ReviewCount)
	}
	if responseTimeMs < 0 {
		return word, fmt.Errorf("%w: response time %dms for word %s", ErrInvalidInput, responseTimeMs, word.ID)
	}
	if !word.Difficulty.IsValid() {
		return word, fmt.Errorf("%w: word %s has difficulty %q", ErrInvalidInput, word.ID, word.Difficulty)
	}

	now := r.now()
	updated := word.Clone()
	level := updated.Difficulty.Normalize()
	priorCorrect := runAt(updated.Reviews, level, true)

	updated.Difficulty = level
	updated.ReviewCount++
	updated.LastReviewed = &now
	updated.Reviews = append([]vocabulary.ReviewRecord{{
		Correct:        wasCorrect,
		ReviewedAt:     now,
		ResponseTimeMs: responseTimeMs,
		Difficulty:     level,
	}}, updated.Reviews...)
	if len(updated.Reviews) > r.rules.HistoryLimit {
		updated.Reviews = updated.Reviews[:r.rules.HistoryLimit]
	}

	switch {
	case !wasCorrect && runAt(updated.Reviews, level, false) >= r.rules.RaiseAfterIncorrect:
		updated.Difficulty = level.Harder()
	case wasCorrect && level != vocabulary.DifficultyEasy && priorCorrect >= r.rules.LowerAfterCorrect:
		updated.Difficulty = level.Easier()
	}

	if !updated.Mastered &&
		updated.ReviewCount >= r.rules.MasteryThreshold &&
		recentlyCorrect(updated.Reviews, r.rules.MasteryStreak) {
		updated.Mastered = true
	}

	return updated, nil
}

// ResetMastery clears the mastered flag and the review log. It is the only
// way a mastered word becomes unmastered.
func (r *Reviewer) ResetMastery(word vocabulary.Word) vocabulary.Word {
	updated := word.Clone()
	updated.Mastered = false
	updated.Reviews = nil
	return updated
}

// runAt counts the newest consecutive records at level whose answer matches correct.
func runAt(records []vocabulary.ReviewRecord, level vocabulary.Difficulty, correct bool) int {
	count := 0
	for _, record := range records {
		if record.Correct != correct || record.Difficulty.Normalize() != level {
			break
		}
		count++
	}
	return count
}

func recentlyCorrect(records []vocabulary.ReviewRecord, n int) bool {
	if len(records) < n {
		return false
	}
	for _, record := range records[:n] {
		if !record.Correct {
			return false
		}
	}
	return true
}
