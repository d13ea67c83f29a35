package progress

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iremert/wordpecker/internal/vocabulary"
)

// Outcome is the answer given for one word during a session.
type Outcome struct {
	WordID         string `json:"wordId" yaml:"word_id"`
	Correct        bool   `json:"correct" yaml:"correct"`
	ResponseTimeMs int64  `json:"responseTimeMs" yaml:"response_time_ms"`
}

// SessionInput is a completed learning session or quiz.
type SessionInput struct {
	ListID    string    `json:"listId" yaml:"list_id"`
	Date      time.Time `json:"date" yaml:"date"`
	TimeSpent int       `json:"timeSpent" yaml:"time_spent"` // seconds, measured by the caller
	Outcomes  []Outcome `json:"outcomes" yaml:"outcomes"`
}

// MasteryTransition names a word that became mastered during a session.
type MasteryTransition struct {
	WordID     string
	SourceWord string
}

// LearningEvaluation is the result of evaluating a learning session.
type LearningEvaluation struct {
	Words    []vocabulary.Word
	Session  LearningSession
	Mastered []MasteryTransition
}

// QuizEvaluation is the result of evaluating a quiz.
type QuizEvaluation struct {
	Words    []vocabulary.Word
	Result   QuizResult
	Mastered []MasteryTransition
}

// Evaluator turns session outcomes into word updates and history records.
type Evaluator struct {
	reviewer *Reviewer
	newID    func() string
}

// NewEvaluator creates an Evaluator that reviews words with reviewer.
func NewEvaluator(reviewer *Reviewer) *Evaluator {
	return &Evaluator{
		reviewer: reviewer,
		newID:    uuid.NewString,
	}
}

// EvaluateLearningSession reviews every outcome in order and builds the
// LearningSession record. words is not modified.
func (e *Evaluator) EvaluateLearningSession(words []vocabulary.Word, input SessionInput) (LearningEvaluation, error) {
	updated, mastered, err := e.apply(words, input)
	if err != nil {
		return LearningEvaluation{}, err
	}

	return LearningEvaluation{
		Words: updated,
		Session: LearningSession{
			ID:            e.newID(),
			ListID:        input.ListID,
			Date:          input.Date,
			WordsReviewed: len(input.Outcomes),
			WordsMastered: len(mastered),
			TimeSpent:     input.TimeSpent,
		},
		Mastered: mastered,
	}, nil
}

// EvaluateQuiz scores a quiz and reviews every answered word.
// WrongAnswers keeps the first-seen order of each wrongly answered word.
func (e *Evaluator) EvaluateQuiz(words []vocabulary.Word, input SessionInput) (QuizEvaluation, error) {
	updated, mastered, err := e.apply(words, input)
	if err != nil {
		return QuizEvaluation{}, err
	}

	correct := 0
	wrong := []string{}
	seen := make(map[string]struct{})
	for _, outcome := range input.Outcomes {
		if outcome.Correct {
			correct++
			continue
		}
		if _, ok := seen[outcome.WordID]; ok {
			continue
		}
		seen[outcome.WordID] = struct{}{}
		wrong = append(wrong, outcome.WordID)
	}

	total := len(input.Outcomes)
	return QuizEvaluation{
		Words: updated,
		Result: QuizResult{
			ID:             e.newID(),
			ListID:         input.ListID,
			Date:           input.Date,
			Score:          float64(correct) / float64(total),
			CorrectAnswers: correct,
			TotalQuestions: total,
			TimeSpent:      input.TimeSpent,
			WrongAnswers:   wrong,
		},
		Mastered: mastered,
	}, nil
}

// apply validates the whole session first so that a failing session never
// yields partially reviewed words.
func (e *Evaluator) apply(words []vocabulary.Word, input SessionInput) ([]vocabulary.Word, []MasteryTransition, error) {
	if len(input.Outcomes) == 0 {
		return nil, nil, ErrEmptySession
	}
	if input.TimeSpent < 0 {
		return nil, nil, fmt.Errorf("%w: time spent %d", ErrInvalidInput, input.TimeSpent)
	}

	index := make(map[string]int, len(words))
	for i, w := range words {
		index[w.ID] = i
	}
	for _, outcome := range input.Outcomes {
		if _, ok := index[outcome.WordID]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownWord, outcome.WordID)
		}
		if outcome.ResponseTimeMs < 0 {
			return nil, nil, fmt.Errorf("%w: response time %dms for word %s", ErrInvalidInput, outcome.ResponseTimeMs, outcome.WordID)
		}
	}

	updated := make([]vocabulary.Word, len(words))
	for i, w := range words {
		updated[i] = w.Clone()
	}

	for _, outcome := range input.Outcomes {
		i := index[outcome.WordID]
		reviewed, err := e.reviewer.ReviewWord(updated[i], outcome.Correct, outcome.ResponseTimeMs)
		if err != nil {
			return nil, nil, fmt.Errorf("ReviewWord(%s) > %w", outcome.WordID, err)
		}
		updated[i] = reviewed
	}

	var mastered []MasteryTransition
	for i, before := range words {
		if !before.Mastered && updated[i].Mastered {
			mastered = append(mastered, MasteryTransition{
				WordID:     before.ID,
				SourceWord: before.SourceWord,
			})
		}
	}
	return updated, mastered, nil
}
