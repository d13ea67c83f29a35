// Package progress implements the learning progress engine: per-word review
// rules, session evaluation and user statistics aggregation.
package progress

import (
	"time"

	"github.com/iremert/wordpecker/internal/vocabulary"
)

// QuizResult is the immutable record of one finished quiz.
type QuizResult struct {
	ID             string    `json:"id" yaml:"id"`
	ListID         string    `json:"listId" yaml:"list_id"`
	Date           time.Time `json:"date" yaml:"date"`
	Score          float64   `json:"score" yaml:"score"` // correct / total, in [0,1]
	CorrectAnswers int       `json:"correctAnswers" yaml:"correct_answers"`
	TotalQuestions int       `json:"totalQuestions" yaml:"total_questions"`
	TimeSpent      int       `json:"timeSpent" yaml:"time_spent"` // seconds
	WrongAnswers   []string  `json:"wrongAnswers" yaml:"wrong_answers"`
}

// IsPerfect reports whether every question was answered correctly.
func (r QuizResult) IsPerfect() bool {
	return r.TotalQuestions > 0 && r.CorrectAnswers == r.TotalQuestions
}

// LearningSession is the immutable record of one finished learning session.
type LearningSession struct {
	ID            string    `json:"id" yaml:"id"`
	ListID        string    `json:"listId" yaml:"list_id"`
	Date          time.Time `json:"date" yaml:"date"`
	WordsReviewed int       `json:"wordsReviewed" yaml:"words_reviewed"`
	WordsMastered int       `json:"wordsMastered" yaml:"words_mastered"`
	TimeSpent     int       `json:"timeSpent" yaml:"time_spent"` // seconds
}

// Achievement is a user's progress towards one catalog entry.
type Achievement struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Icon        string     `json:"icon" yaml:"icon"`
	Color       string     `json:"color" yaml:"color"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty" yaml:"unlocked_at,omitempty"`
	Progress    int        `json:"progress" yaml:"progress"`
	MaxProgress int        `json:"maxProgress" yaml:"max_progress"`
	IsUnlocked  bool       `json:"isUnlocked" yaml:"is_unlocked"`
}

// UserStats is the per-user progress aggregate.
type UserStats struct {
	UserID             string            `json:"userId" yaml:"user_id"`
	TotalWordsMastered int               `json:"totalWordsMastered" yaml:"total_words_mastered"`
	TotalWordsLearned  int               `json:"totalWordsLearned" yaml:"total_words_learned"`
	TotalLists         int               `json:"totalLists" yaml:"total_lists"`
	StreakDays         int               `json:"streakDays" yaml:"streak_days"`
	LastStreak         *vocabulary.Date  `json:"lastStreak,omitempty" yaml:"last_streak,omitempty"`
	QuizResults        []QuizResult      `json:"quizResults" yaml:"quiz_results"`
	LearningSessions   []LearningSession `json:"learningSessions" yaml:"learning_sessions"`
	Achievements       []Achievement     `json:"achievements" yaml:"achievements"`
}

// NewUserStats returns empty statistics for a user who has no history yet.
func NewUserStats(userID string) UserStats {
	return UserStats{
		UserID:           userID,
		QuizResults:      []QuizResult{},
		LearningSessions: []LearningSession{},
		Achievements:     []Achievement{},
	}
}

// Clone returns a deep copy of the statistics.
func (s UserStats) Clone() UserStats {
	c := s
	if s.LastStreak != nil {
		d := *s.LastStreak
		c.LastStreak = &d
	}
	c.QuizResults = make([]QuizResult, len(s.QuizResults))
	for i, r := range s.QuizResults {
		r.WrongAnswers = append([]string(nil), r.WrongAnswers...)
		c.QuizResults[i] = r
	}
	c.LearningSessions = append([]LearningSession{}, s.LearningSessions...)
	c.Achievements = make([]Achievement, len(s.Achievements))
	for i, a := range s.Achievements {
		if a.UnlockedAt != nil {
			t := *a.UnlockedAt
			a.UnlockedAt = &t
		}
		c.Achievements[i] = a
	}
	return c
}

// PerfectQuizCount returns the number of quizzes without a wrong answer.
func (s UserStats) PerfectQuizCount() int {
	count := 0
	for _, r := range s.QuizResults {
		if r.IsPerfect() {
			count++
		}
	}
	return count
}

// FindAchievement returns the achievement with the given id.
func (s UserStats) FindAchievement(id string) (Achievement, bool) {
	for _, a := range s.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
