package progress

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iremert/wordpecker/internal/vocabulary"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e := NewEvaluator(newTestReviewer(t))
	e.newID = func() string { return "record-1" }
	return e
}

func quizWords(n int) []vocabulary.Word {
	words := make([]vocabulary.Word, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, vocabulary.Word{
			ID:         fmt.Sprintf("w%d", i),
			ListID:     "list-1",
			SourceWord: fmt.Sprintf("source-%d", i),
			TargetWord: fmt.Sprintf("target-%d", i),
			Difficulty: vocabulary.DifficultyEasy,
		})
	}
	return words
}

func TestEvaluator_EvaluateQuiz(t *testing.T) {
	words := quizWords(10)
	outcomes := []Outcome{
		{WordID: "w0", Correct: true},
		{WordID: "w1", Correct: false},
		{WordID: "w2", Correct: true},
		{WordID: "w3", Correct: false},
		{WordID: "w4", Correct: true},
		{WordID: "w5", Correct: true},
		{WordID: "w6", Correct: false},
		{WordID: "w7", Correct: true},
		{WordID: "w8", Correct: true},
		{WordID: "w9", Correct: true},
	}

	e := newTestEvaluator(t)
	got, err := e.EvaluateQuiz(words, SessionInput{
		ListID:    "list-1",
		Date:      fixedNow,
		TimeSpent: 90,
		Outcomes:  outcomes,
	})
	require.NoError(t, err)

	assert.Equal(t, QuizResult{
		ID:             "record-1",
		ListID:         "list-1",
		Date:           fixedNow,
		Score:          0.7,
		CorrectAnswers: 7,
		TotalQuestions: 10,
		TimeSpent:      90,
		WrongAnswers:   []string{"w1", "w3", "w6"},
	}, got.Result)
	require.Len(t, got.Words, 10)
	for i, w := range got.Words {
		assert.Equal(t, 1, w.ReviewCount, "word %d", i)
		assert.Equal(t, 0, words[i].ReviewCount, "input word %d must not change", i)
	}
	assert.Empty(t, got.Mastered)
}

func TestEvaluator_EvaluateQuiz_RepeatedWrongAnswers(t *testing.T) {
	words := quizWords(2)
	e := newTestEvaluator(t)

	got, err := e.EvaluateQuiz(words, SessionInput{
		ListID: "list-1",
		Date:   fixedNow,
		Outcomes: []Outcome{
			{WordID: "w1", Correct: false},
			{WordID: "w0", Correct: true},
			{WordID: "w1", Correct: false},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"w1"}, got.Result.WrongAnswers)
	assert.Equal(t, 3, got.Result.TotalQuestions)
	assert.InDelta(t, 1.0/3.0, got.Result.Score, 1e-9)
	assert.Equal(t, 2, got.Words[1].ReviewCount)
	assert.Equal(t, vocabulary.DifficultyMedium, got.Words[1].Difficulty)
}

func TestEvaluator_EvaluateLearningSession(t *testing.T) {
	words := []vocabulary.Word{
		{
			ID:          "almost",
			SourceWord:  "casa",
			Difficulty:  vocabulary.DifficultyEasy,
			ReviewCount: 4,
			Reviews:     records(vocabulary.DifficultyEasy, true, true),
		},
		{
			ID:          "done",
			SourceWord:  "perro",
			Difficulty:  vocabulary.DifficultyEasy,
			ReviewCount: 9,
			Mastered:    true,
		},
		{
			ID:         "untouched",
			SourceWord: "gato",
			Difficulty: vocabulary.DifficultyEasy,
		},
	}

	e := newTestEvaluator(t)
	got, err := e.EvaluateLearningSession(words, SessionInput{
		ListID:    "list-1",
		Date:      fixedNow,
		TimeSpent: 300,
		Outcomes: []Outcome{
			{WordID: "almost", Correct: true, ResponseTimeMs: 800},
			{WordID: "done", Correct: true},
			{WordID: "almost", Correct: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, LearningSession{
		ID:            "record-1",
		ListID:        "list-1",
		Date:          fixedNow,
		WordsReviewed: 3,
		WordsMastered: 1,
		TimeSpent:     300,
	}, got.Session)
	assert.Equal(t, []MasteryTransition{{WordID: "almost", SourceWord: "casa"}}, got.Mastered)
	assert.Equal(t, 6, got.Words[0].ReviewCount)
	assert.True(t, got.Words[0].Mastered)
	assert.Equal(t, 10, got.Words[1].ReviewCount)
	assert.Equal(t, words[2], got.Words[2])
}

func TestEvaluator_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   SessionInput
		wantErr error
	}{
		{
			name:    "no outcomes",
			input:   SessionInput{ListID: "list-1", Date: fixedNow},
			wantErr: ErrEmptySession,
		},
		{
			name: "unknown word",
			input: SessionInput{
				ListID: "list-1",
				Date:   fixedNow,
				Outcomes: []Outcome{
					{WordID: "w0", Correct: true},
					{WordID: "missing", Correct: true},
				},
			},
			wantErr: ErrUnknownWord,
		},
		{
			name: "negative time spent",
			input: SessionInput{
				ListID:    "list-1",
				Date:      fixedNow,
				TimeSpent: -5,
				Outcomes:  []Outcome{{WordID: "w0", Correct: true}},
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "negative response time",
			input: SessionInput{
				ListID:   "list-1",
				Date:     fixedNow,
				Outcomes: []Outcome{{WordID: "w0", Correct: true, ResponseTimeMs: -1}},
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := quizWords(2)
			e := newTestEvaluator(t)

			_, err := e.EvaluateLearningSession(words, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = e.EvaluateQuiz(words, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, quizWords(2), words, "no partial updates")
		})
	}
}
