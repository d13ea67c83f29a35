package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

var (
	wordListColumns = []string{
		"id", "user_id", "title", "description", "source_language", "target_language",
		"category", "source", "created_at", "updated_at",
	}
	wordColumns = []string{
		"id", "list_id", "position", "source_word", "target_word", "pronunciation",
		"context_sentence", "image_url", "difficulty", "last_reviewed", "review_count",
		"mastered", "reviews",
	}
	userStatsColumns = []string{
		"user_id", "total_words_mastered", "total_words_learned", "total_lists",
		"streak_days", "last_streak",
	}
	quizResultColumns = []string{
		"id", "user_id", "position", "list_id", "date", "score", "correct_answers",
		"total_questions", "time_spent", "wrong_answers",
	}
	learningSessionColumns = []string{
		"id", "user_id", "position", "list_id", "date", "words_reviewed",
		"words_mastered", "time_spent",
	}
	achievementColumns = []string{
		"user_id", "id", "position", "title", "description", "icon", "color",
		"unlocked_at", "progress", "max_progress", "is_unlocked",
	}
)

type wordListRow struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	SourceLanguage string    `db:"source_language"`
	TargetLanguage string    `db:"target_language"`
	Category       string    `db:"category"`
	Source         string    `db:"source"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func newWordListRow(list *vocabulary.WordList) wordListRow {
	return wordListRow{
		ID:             list.ID,
		UserID:         list.UserID,
		Title:          list.Title,
		Description:    list.Description,
		SourceLanguage: list.SourceLanguage,
		TargetLanguage: list.TargetLanguage,
		Category:       list.Category,
		Source:         list.Source,
		CreatedAt:      list.CreatedAt,
		UpdatedAt:      list.UpdatedAt,
	}
}

func (r wordListRow) args() []interface{} {
	return []interface{}{
		r.ID, r.UserID, r.Title, r.Description, r.SourceLanguage, r.TargetLanguage,
		r.Category, r.Source, r.CreatedAt, r.UpdatedAt,
	}
}

func (r wordListRow) toWordList(words []vocabulary.Word) vocabulary.WordList {
	list := vocabulary.WordList{
		ID:             r.ID,
		UserID:         r.UserID,
		Title:          r.Title,
		Description:    r.Description,
		SourceLanguage: r.SourceLanguage,
		TargetLanguage: r.TargetLanguage,
		Category:       r.Category,
		Source:         r.Source,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		Words:          words,
	}
	list.Recount()
	return list
}

type wordRow struct {
	ID              string       `db:"id"`
	ListID          string       `db:"list_id"`
	Position        int          `db:"position"`
	SourceWord      string       `db:"source_word"`
	TargetWord      string       `db:"target_word"`
	Pronunciation   string       `db:"pronunciation"`
	ContextSentence string       `db:"context_sentence"`
	ImageURL        string       `db:"image_url"`
	Difficulty      string       `db:"difficulty"`
	LastReviewed    sql.NullTime `db:"last_reviewed"`
	ReviewCount     int          `db:"review_count"`
	Mastered        bool         `db:"mastered"`
	Reviews         string       `db:"reviews"`
}

func newWordRow(listID string, position int, w vocabulary.Word) (wordRow, error) {
	reviews := w.Reviews
	if reviews == nil {
		reviews = []vocabulary.ReviewRecord{}
	}
	encoded, err := json.Marshal(reviews)
	if err != nil {
		return wordRow{}, fmt.Errorf("json.Marshal(reviews of %s) > %w", w.ID, err)
	}
	row := wordRow{
		ID:              w.ID,
		ListID:          listID,
		Position:        position,
		SourceWord:      w.SourceWord,
		TargetWord:      w.TargetWord,
		Pronunciation:   w.Pronunciation,
		ContextSentence: w.ContextSentence,
		ImageURL:        w.ImageURL,
		Difficulty:      string(w.Difficulty.Normalize()),
		ReviewCount:     w.ReviewCount,
		Mastered:        w.Mastered,
		Reviews:         string(encoded),
	}
	if w.LastReviewed != nil {
		row.LastReviewed = sql.NullTime{Time: *w.LastReviewed, Valid: true}
	}
	return row, nil
}

func (r wordRow) args() []interface{} {
	return []interface{}{
		r.ID, r.ListID, r.Position, r.SourceWord, r.TargetWord, r.Pronunciation,
		r.ContextSentence, r.ImageURL, r.Difficulty, r.LastReviewed, r.ReviewCount,
		r.Mastered, r.Reviews,
	}
}

func (r wordRow) toWord() (vocabulary.Word, error) {
	w := vocabulary.Word{
		ID:              r.ID,
		ListID:          r.ListID,
		SourceWord:      r.SourceWord,
		TargetWord:      r.TargetWord,
		Pronunciation:   r.Pronunciation,
		ContextSentence: r.ContextSentence,
		ImageURL:        r.ImageURL,
		Difficulty:      vocabulary.Difficulty(r.Difficulty),
		ReviewCount:     r.ReviewCount,
		Mastered:        r.Mastered,
	}
	if r.LastReviewed.Valid {
		t := r.LastReviewed.Time
		w.LastReviewed = &t
	}
	if r.Reviews != "" {
		if err := json.Unmarshal([]byte(r.Reviews), &w.Reviews); err != nil {
			return vocabulary.Word{}, fmt.Errorf("json.Unmarshal(reviews of %s) > %w", r.ID, err)
		}
		if len(w.Reviews) == 0 {
			w.Reviews = nil
		}
	}
	return w, nil
}

type userStatsRow struct {
	UserID             string         `db:"user_id"`
	TotalWordsMastered int            `db:"total_words_mastered"`
	TotalWordsLearned  int            `db:"total_words_learned"`
	TotalLists         int            `db:"total_lists"`
	StreakDays         int            `db:"streak_days"`
	LastStreak         sql.NullString `db:"last_streak"`
}

type quizResultRow struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	Position       int       `db:"position"`
	ListID         string    `db:"list_id"`
	Date           time.Time `db:"date"`
	Score          float64   `db:"score"`
	CorrectAnswers int       `db:"correct_answers"`
	TotalQuestions int       `db:"total_questions"`
	TimeSpent      int       `db:"time_spent"`
	WrongAnswers   string    `db:"wrong_answers"`
}

func (r quizResultRow) toQuizResult() (progress.QuizResult, error) {
	result := progress.QuizResult{
		ID:             r.ID,
		ListID:         r.ListID,
		Date:           r.Date,
		Score:          r.Score,
		CorrectAnswers: r.CorrectAnswers,
		TotalQuestions: r.TotalQuestions,
		TimeSpent:      r.TimeSpent,
		WrongAnswers:   []string{},
	}
	if r.WrongAnswers != "" {
		if err := json.Unmarshal([]byte(r.WrongAnswers), &result.WrongAnswers); err != nil {
			return progress.QuizResult{}, fmt.Errorf("json.Unmarshal(wrong answers of %s) > %w", r.ID, err)
		}
	}
	return result, nil
}

type learningSessionRow struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	Position      int       `db:"position"`
	ListID        string    `db:"list_id"`
	Date          time.Time `db:"date"`
	WordsReviewed int       `db:"words_reviewed"`
	WordsMastered int       `db:"words_mastered"`
	TimeSpent     int       `db:"time_spent"`
}

type achievementRow struct {
	UserID      string       `db:"user_id"`
	ID          string       `db:"id"`
	Position    int          `db:"position"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Icon        string       `db:"icon"`
	Color       string       `db:"color"`
	UnlockedAt  sql.NullTime `db:"unlocked_at"`
	Progress    int          `db:"progress"`
	MaxProgress int          `db:"max_progress"`
	IsUnlocked  bool         `db:"is_unlocked"`
}

func (r achievementRow) toAchievement() progress.Achievement {
	achievement := progress.Achievement{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Icon:        r.Icon,
		Color:       r.Color,
		Progress:    r.Progress,
		MaxProgress: r.MaxProgress,
		IsUnlocked:  r.IsUnlocked,
	}
	if r.UnlockedAt.Valid {
		t := r.UnlockedAt.Time
		achievement.UnlockedAt = &t
	}
	return achievement
}
