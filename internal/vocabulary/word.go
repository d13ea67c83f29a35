// Package vocabulary provides the word and word list domain models.
package vocabulary

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Difficulty is how hard a word currently is for the learner.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var difficultyOrder = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty parses a difficulty name. An empty value is read as easy.
func ParseDifficulty(value string) (Difficulty, error) {
	if value == "" {
		return DifficultyEasy, nil
	}
	for _, d := range difficultyOrder {
		if string(d) == value {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q: expected easy, medium or hard", value)
}

// Normalize returns easy for an empty difficulty.
func (d Difficulty) Normalize() Difficulty {
	if d == "" {
		return DifficultyEasy
	}
	return d
}

// IsValid reports whether d is a known difficulty (empty counts as easy).
func (d Difficulty) IsValid() bool {
	_, err := ParseDifficulty(string(d))
	return err == nil
}

// Harder returns the next difficulty, capped at hard.
func (d Difficulty) Harder() Difficulty {
	i := d.index()
	if i+1 >= len(difficultyOrder) {
		return DifficultyHard
	}
	return difficultyOrder[i+1]
}

// Easier returns the previous difficulty, floored at easy.
func (d Difficulty) Easier() Difficulty {
	i := d.index()
	if i <= 0 {
		return DifficultyEasy
	}
	return difficultyOrder[i-1]
}

func (d Difficulty) index() int {
	n := d.Normalize()
	for i, candidate := range difficultyOrder {
		if candidate == n {
			return i
		}
	}
	return 0
}

// ReviewRecord is a single answer given for a word.
type ReviewRecord struct {
	Correct        bool       `json:"correct" yaml:"correct"`
	ReviewedAt     time.Time  `json:"reviewedAt" yaml:"reviewed_at"`
	ResponseTimeMs int64      `json:"responseTimeMs" yaml:"response_time_ms,omitempty"`
	Difficulty     Difficulty `json:"difficulty" yaml:"difficulty"` // level at the time of the answer
}

// Word is a translated word pair owned by one WordList.
type Word struct {
	ID              string     `json:"id" yaml:"id"`
	ListID          string     `json:"listId" yaml:"list_id"`
	SourceWord      string     `json:"sourceWord" yaml:"source_word"`
	TargetWord      string     `json:"targetWord" yaml:"target_word"`
	Pronunciation   string     `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
	ContextSentence string     `json:"contextSentence,omitempty" yaml:"context_sentence,omitempty"`
	ImageURL        string     `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`
	Difficulty      Difficulty `json:"difficulty" yaml:"difficulty"`
	LastReviewed    *time.Time `json:"lastReviewed,omitempty" yaml:"last_reviewed,omitempty"`
	ReviewCount     int        `json:"reviewCount" yaml:"review_count"`
	Mastered        bool       `json:"mastered" yaml:"mastered"`

	// Reviews are stored newest first.
	Reviews []ReviewRecord `json:"reviews,omitempty" yaml:"reviews,omitempty"`
}

// NewWord creates an easy, never reviewed word for a list.
func NewWord(listID, sourceWord, targetWord string) Word {
	return Word{
		ID:         uuid.NewString(),
		ListID:     listID,
		SourceWord: sourceWord,
		TargetWord: targetWord,
		Difficulty: DifficultyEasy,
	}
}

// Clone returns a copy of the word that shares no slices or pointers with w.
func (w Word) Clone() Word {
	c := w
	if w.LastReviewed != nil {
		t := *w.LastReviewed
		c.LastReviewed = &t
	}
	if w.Reviews != nil {
		c.Reviews = append([]ReviewRecord(nil), w.Reviews...)
	}
	return c
}

// IsLearned reports whether the word was reviewed at least once.
func (w Word) IsLearned() bool {
	return w.ReviewCount >= 1
}
