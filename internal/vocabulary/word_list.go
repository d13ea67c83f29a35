package vocabulary

import (
	"time"

	"github.com/google/uuid"
)

// WordList is a user's list of translated word pairs.
// TotalWords and LearnedWords are derived from Words; call Recount after
// changing Words directly.
type WordList struct {
	ID             string    `json:"id" yaml:"id"`
	UserID         string    `json:"userId" yaml:"user_id"`
	Title          string    `json:"title" yaml:"title"`
	Description    string    `json:"description" yaml:"description"`
	SourceLanguage string    `json:"sourceLanguage" yaml:"source_language"`
	TargetLanguage string    `json:"targetLanguage" yaml:"target_language"`
	Category       string    `json:"category" yaml:"category"`
	Source         string    `json:"source,omitempty" yaml:"source,omitempty"`
	CreatedAt      time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" yaml:"updated_at"`
	TotalWords     int       `json:"totalWords" yaml:"total_words"`
	LearnedWords   int       `json:"learnedWords" yaml:"learned_words"`
	Words          []Word    `json:"words" yaml:"words"`
}

// NewListParams holds the user supplied fields of a new list.
type NewListParams struct {
	Title          string
	Description    string
	SourceLanguage string
	TargetLanguage string
	Category       string
	Source         string
}

// NewWordList creates an empty list owned by userID.
func NewWordList(userID string, params NewListParams, now time.Time) WordList {
	return WordList{
		ID:             uuid.NewString(),
		UserID:         userID,
		Title:          params.Title,
		Description:    params.Description,
		SourceLanguage: params.SourceLanguage,
		TargetLanguage: params.TargetLanguage,
		Category:       params.Category,
		Source:         params.Source,
		CreatedAt:      now,
		UpdatedAt:      now,
		Words:          []Word{},
	}
}

// Recount restores TotalWords and LearnedWords from Words.
func (l *WordList) Recount() {
	l.TotalWords = len(l.Words)
	learned := 0
	for _, w := range l.Words {
		if w.Mastered {
			learned++
		}
	}
	l.LearnedWords = learned
}

// AddWord appends a word, assigning it to this list.
func (l *WordList) AddWord(w Word, now time.Time) {
	w.ListID = l.ID
	l.Words = append(l.Words, w)
	l.touch(now)
}

// RemoveWord deletes the word with the given id. It returns false if the
// list has no such word.
func (l *WordList) RemoveWord(id string, now time.Time) bool {
	i, ok := l.WordIndex()[id]
	if !ok {
		return false
	}
	l.Words = append(l.Words[:i], l.Words[i+1:]...)
	l.touch(now)
	return true
}

// ReplaceWords swaps the word set, e.g. with the output of a session evaluation.
func (l *WordList) ReplaceWords(words []Word, now time.Time) {
	l.Words = words
	l.touch(now)
}

// FindWord returns the word with the given id.
func (l *WordList) FindWord(id string) (Word, bool) {
	for _, w := range l.Words {
		if w.ID == id {
			return w, true
		}
	}
	return Word{}, false
}

// FindBySource returns the first word whose source word equals source.
func (l *WordList) FindBySource(source string) (Word, bool) {
	for _, w := range l.Words {
		if w.SourceWord == source {
			return w, true
		}
	}
	return Word{}, false
}

// WordIndex maps word ids to their position in Words.
func (l *WordList) WordIndex() map[string]int {
	index := make(map[string]int, len(l.Words))
	for i, w := range l.Words {
		index[w.ID] = i
	}
	return index
}

func (l *WordList) touch(now time.Time) {
	l.UpdatedAt = now
	l.Recount()
}
