package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_cli "github.com/iremert/wordpecker/internal/mocks/cli"
	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/tracker"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

func reviewList() vocabulary.WordList {
	return vocabulary.WordList{
		ID:    "list-1",
		Title: "Spanish basics",
		Words: []vocabulary.Word{
			{ID: "w1", SourceWord: "casa", TargetWord: "house", ContextSentence: "Mi casa es tu casa."},
			{ID: "w2", SourceWord: "perro", TargetWord: "dog"},
			{ID: "w3", SourceWord: "gato", TargetWord: "cat", Mastered: true},
		},
	}
}

// steppingClock advances one second on every call.
func steppingClock() func() time.Time {
	current := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := current
		current = current.Add(time.Second)
		return now
	}
}

func newTestSession(t *testing.T, mode Mode, input string, opts Options) (*ReviewSession, *mock_cli.MockSubmitter, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	ctrl := gomock.NewController(t)
	submitter := mock_cli.NewMockSubmitter(ctrl)
	var stdout bytes.Buffer
	session, err := NewReviewSession(mode, reviewList(), submitter, strings.NewReader(input), &stdout, opts)
	require.NoError(t, err)
	session.now = steppingClock()
	return session, submitter, &stdout
}

func TestReviewSession_Run_Learn(t *testing.T) {
	session, submitter, stdout := newTestSession(t, ModeLearn, " House \ncat\n", Options{})
	assert.Equal(t, 2, session.WordCount(), "mastered words are skipped")

	result := tracker.LearningResult{
		Mastered: []progress.MasteryTransition{{WordID: "w1", SourceWord: "casa"}},
		Unlocked: []progress.Achievement{{ID: "first_steps", Title: "First Steps"}},
	}
	submitter.EXPECT().SubmitLearningSession(gomock.Any(), progress.SessionInput{
		ListID:    "list-1",
		TimeSpent: 5,
		Outcomes: []progress.Outcome{
			{WordID: "w1", Correct: true, ResponseTimeMs: 1000},
			{WordID: "w2", Correct: false, ResponseTimeMs: 1000},
		},
	}).Return(result, nil)

	got, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, got.Answered)
	assert.Equal(t, 1, got.Correct)
	require.NotNil(t, got.Learning)
	assert.Equal(t, result, *got.Learning)
	assert.Nil(t, got.Quiz)

	output := stdout.String()
	assert.Contains(t, output, "Mi casa es tu casa.")
	assert.Contains(t, output, `Correct: casa means "house"`)
	assert.Contains(t, output, `Wrong: perro means "dog"`)
	assert.Contains(t, output, "Mastered casa")
	assert.Contains(t, output, "Achievement unlocked:  First Steps")
	assert.Contains(t, output, "1 of 2 correct")
}

func TestReviewSession_Run_QuizQuit(t *testing.T) {
	session, submitter, _ := newTestSession(t, ModeQuiz, "house\nQUIT\n", Options{})
	assert.Equal(t, 3, session.WordCount(), "quizzes ask mastered words too")

	submitter.EXPECT().SubmitQuiz(gomock.Any(), progress.SessionInput{
		ListID:    "list-1",
		TimeSpent: 4,
		Outcomes:  []progress.Outcome{{WordID: "w1", Correct: true, ResponseTimeMs: 1000}},
	}).Return(tracker.QuizOutcome{Result: progress.QuizResult{ID: "q1", Score: 1}}, nil)

	got, err := session.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Answered)
	require.NotNil(t, got.Quiz)
	assert.Equal(t, "q1", got.Quiz.Result.ID)
}

func TestReviewSession_Run_EndOfInput(t *testing.T) {
	session, submitter, _ := newTestSession(t, ModeQuiz, "house", Options{})

	submitter.EXPECT().SubmitQuiz(gomock.Any(), progress.SessionInput{
		ListID:    "list-1",
		TimeSpent: 4,
		Outcomes:  []progress.Outcome{{WordID: "w1", Correct: true, ResponseTimeMs: 1000}},
	}).Return(tracker.QuizOutcome{}, nil)

	got, err := session.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Correct)
}

func TestReviewSession_Run_NothingAnswered(t *testing.T) {
	session, _, stdout := newTestSession(t, ModeLearn, "quit\n", Options{})

	got, err := session.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Summary{}, got)
	assert.Contains(t, stdout.String(), "No answers to save.")
}

func TestReviewSession_Run_Interrupted(t *testing.T) {
	session, _, stdout := newTestSession(t, ModeQuiz, "house\ndog\ncat\n", Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := session.Run(ctx)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Nil(t, got)
	assert.Contains(t, stdout.String(), "exiting without saving")
}

func TestReviewSession_Run_SubmitError(t *testing.T) {
	session, submitter, _ := newTestSession(t, ModeLearn, "house\ndog\n", Options{})
	submitter.EXPECT().SubmitLearningSession(gomock.Any(), gomock.Any()).Return(tracker.LearningResult{}, errors.New("store is down"))

	_, err := session.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SubmitLearningSession() > store is down")
}

func TestNewReviewSession(t *testing.T) {
	allMastered := reviewList()
	for i := range allMastered.Words {
		allMastered.Words[i].Mastered = true
	}

	tests := []struct {
		name      string
		mode      Mode
		list      vocabulary.WordList
		opts      Options
		wantCount int
		wantErr   string
	}{
		{name: "limit", mode: ModeQuiz, list: reviewList(), opts: Options{Limit: 2}, wantCount: 2},
		{name: "limit above word count", mode: ModeQuiz, list: reviewList(), opts: Options{Limit: 10, Shuffle: true}, wantCount: 3},
		{name: "every word mastered is reviewed again", mode: ModeLearn, list: allMastered, wantCount: 3},
		{name: "unknown mode", mode: Mode("exam"), list: reviewList(), wantErr: "unknown session mode"},
		{name: "empty list", mode: ModeLearn, list: vocabulary.WordList{Title: "Empty"}, wantErr: "has no words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewReviewSession(tt.mode, tt.list, nil, strings.NewReader(""), &bytes.Buffer{}, tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, got.WordCount())
		})
	}
}

func TestIsCorrectAnswer(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		target string
		want   bool
	}{
		{name: "exact", answer: "house", target: "house", want: true},
		{name: "case and spaces", answer: "  HoUse ", target: "house", want: true},
		{name: "inner spaces", answer: "good  morning", target: "Good morning", want: true},
		{name: "alternative", answer: "home", target: "house, home", want: true},
		{name: "slash alternative", answer: "dog", target: "hound/dog", want: true},
		{name: "wrong", answer: "cat", target: "house", want: false},
		{name: "empty answer", answer: "  ", target: "house", want: false},
		{name: "partial", answer: "hous", target: "house", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCorrectAnswer(tt.answer, tt.target))
		})
	}
}
