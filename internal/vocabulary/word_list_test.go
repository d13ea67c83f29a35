package vocabulary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input   string
		want    Difficulty
		wantErr bool
	}{
		{input: "", want: DifficultyEasy},
		{input: "easy", want: DifficultyEasy},
		{input: "medium", want: DifficultyMedium},
		{input: "hard", want: DifficultyHard},
		{input: "extreme", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDifficulty(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDifficulty_Steps(t *testing.T) {
	tests := []struct {
		name   string
		from   Difficulty
		harder Difficulty
		easier Difficulty
	}{
		{name: "easy", from: DifficultyEasy, harder: DifficultyMedium, easier: DifficultyEasy},
		{name: "medium", from: DifficultyMedium, harder: DifficultyHard, easier: DifficultyEasy},
		{name: "hard", from: DifficultyHard, harder: DifficultyHard, easier: DifficultyMedium},
		{name: "empty behaves as easy", from: "", harder: DifficultyMedium, easier: DifficultyEasy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.harder, tt.from.Harder())
			assert.Equal(t, tt.easier, tt.from.Easier())
		})
	}
}

func TestWordList_Recount(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	list := NewWordList("user-1", NewListParams{Title: "Spanish basics"}, now)

	list.AddWord(NewWord("", "hola", "hello"), now)
	list.AddWord(Word{ID: "w2", SourceWord: "adiós", TargetWord: "goodbye", Mastered: true}, now)
	list.AddWord(Word{ID: "w3", SourceWord: "gracias", TargetWord: "thanks", Mastered: true}, now)

	assert.Equal(t, 3, list.TotalWords)
	assert.Equal(t, 2, list.LearnedWords)
	for _, w := range list.Words {
		assert.Equal(t, list.ID, w.ListID)
	}

	later := now.Add(time.Hour)
	assert.True(t, list.RemoveWord("w2", later))
	assert.False(t, list.RemoveWord("missing", later))
	assert.Equal(t, 2, list.TotalWords)
	assert.Equal(t, 1, list.LearnedWords)
	assert.Equal(t, later, list.UpdatedAt)
	assert.Equal(t, now, list.CreatedAt)

	list.Words[0].Mastered = true
	list.Recount()
	assert.Equal(t, 2, list.LearnedWords)
}

func TestWordList_Find(t *testing.T) {
	list := WordList{Words: []Word{
		{ID: "a", SourceWord: "uno"},
		{ID: "b", SourceWord: "dos"},
	}}

	w, ok := list.FindWord("b")
	require.True(t, ok)
	assert.Equal(t, "dos", w.SourceWord)

	_, ok = list.FindWord("c")
	assert.False(t, ok)

	w, ok = list.FindBySource("uno")
	require.True(t, ok)
	assert.Equal(t, "a", w.ID)

	assert.Equal(t, map[string]int{"a": 0, "b": 1}, list.WordIndex())
}

func TestWord_Clone(t *testing.T) {
	reviewed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w := Word{
		ID:           "a",
		LastReviewed: &reviewed,
		Reviews:      []ReviewRecord{{Correct: true}},
	}

	c := w.Clone()
	c.Reviews[0].Correct = false
	*c.LastReviewed = reviewed.Add(time.Hour)

	assert.True(t, w.Reviews[0].Correct)
	assert.Equal(t, reviewed, *w.LastReviewed)
}
