package progress

import (
	"fmt"
	"time"

	"github.com/iremert/wordpecker/internal/vocabulary"
)

// Aggregation is the result of folding one record into UserStats.
type Aggregation struct {
	Stats    UserStats
	Unlocked []Achievement
}

// Aggregator folds learning sessions and quiz results into UserStats.
type Aggregator struct {
	catalog  Catalog
	location *time.Location
	now      Clock
}

// NewAggregator creates an Aggregator. Streak days are counted as calendar
// days in location (UTC when nil).
func NewAggregator(catalog Catalog, location *time.Location, now Clock) *Aggregator {
	if location == nil {
		location = time.UTC
	}
	return &Aggregator{
		catalog:  catalog,
		location: location,
		now:      now.orNow(),
	}
}

// ApplyLearningSession appends session to the history and refreshes streak,
// totals and achievements. stats is not modified.
func (a *Aggregator) ApplyLearningSession(stats UserStats, lists []vocabulary.WordList, session LearningSession) (Aggregation, error) {
	if session.Date.IsZero() {
		return Aggregation{}, fmt.Errorf("%w: learning session %s has no date", ErrInvalidInput, session.ID)
	}
	if session.WordsReviewed < 0 || session.WordsMastered < 0 || session.TimeSpent < 0 {
		return Aggregation{}, fmt.Errorf("%w: learning session %s has negative counters", ErrInvalidInput, session.ID)
	}

	updated := stats.Clone()
	updated.LearningSessions = append(updated.LearningSessions, session)
	return a.fold(updated, lists, session.Date), nil
}

// ApplyQuizResult appends result to the history and refreshes streak,
// totals and achievements. stats is not modified.
func (a *Aggregator) ApplyQuizResult(stats UserStats, lists []vocabulary.WordList, result QuizResult) (Aggregation, error) {
	if result.Date.IsZero() {
		return Aggregation{}, fmt.Errorf("%w: quiz result %s has no date", ErrInvalidInput, result.ID)
	}
	if result.TotalQuestions <= 0 || result.CorrectAnswers < 0 || result.CorrectAnswers > result.TotalQuestions {
		return Aggregation{}, fmt.Errorf("%w: quiz result %s has %d/%d correct answers", ErrInvalidInput, result.ID, result.CorrectAnswers, result.TotalQuestions)
	}
	if result.Score < 0 || result.Score > 1 || result.TimeSpent < 0 {
		return Aggregation{}, fmt.Errorf("%w: quiz result %s has score %v and time %d", ErrInvalidInput, result.ID, result.Score, result.TimeSpent)
	}

	updated := stats.Clone()
	updated.QuizResults = append(updated.QuizResults, result)
	return a.fold(updated, lists, result.Date), nil
}

// Recompute derives the word and list totals from the supplied lists and
// re-evaluates achievements. Recomputing from the same lists twice yields
// the same totals.
func (a *Aggregator) Recompute(stats UserStats, lists []vocabulary.WordList) Aggregation {
	updated := stats.Clone()
	applyTotals(&updated, lists)
	unlocked := a.evaluateAchievements(&updated)
	return Aggregation{Stats: updated, Unlocked: unlocked}
}

func (a *Aggregator) fold(stats UserStats, lists []vocabulary.WordList, at time.Time) Aggregation {
	AdvanceStreak(&stats, vocabulary.DateOf(at, a.location))
	applyTotals(&stats, lists)
	unlocked := a.evaluateAchievements(&stats)
	return Aggregation{Stats: stats, Unlocked: unlocked}
}

// AdvanceStreak records activity on day. A session the day after the last
// streak day extends the streak, a session on the same day changes nothing,
// and any other day restarts it at 1. The last streak day becomes day.
func AdvanceStreak(stats *UserStats, day vocabulary.Date) {
	switch {
	case stats.LastStreak == nil:
		stats.StreakDays = 1
	case day.Equal(*stats.LastStreak):
	case stats.LastStreak.AddDays(1).Equal(day):
		stats.StreakDays++
	default:
		stats.StreakDays = 1
	}
	stats.LastStreak = &day
}

func applyTotals(stats *UserStats, lists []vocabulary.WordList) {
	mastered, learned := 0, 0
	for _, list := range lists {
		for _, w := range list.Words {
			if w.Mastered {
				mastered++
			}
			if w.IsLearned() {
				learned++
			}
		}
	}
	stats.TotalWordsMastered = mastered
	stats.TotalWordsLearned = learned
	stats.TotalLists = len(lists)
}

// evaluateAchievements updates locked achievements and returns the ones
// unlocked by this call. Unlocked achievements are never touched again.
func (a *Aggregator) evaluateAchievements(stats *UserStats) []Achievement {
	positions := make(map[string]int, len(stats.Achievements))
	for i, achievement := range stats.Achievements {
		positions[achievement.ID] = i
	}

	var unlocked []Achievement
	for _, def := range a.catalog.Achievements {
		i, ok := positions[def.ID]
		if !ok {
			stats.Achievements = append(stats.Achievements, def.locked())
			i = len(stats.Achievements) - 1
			positions[def.ID] = i
		}

		current := stats.Achievements[i]
		if current.IsUnlocked {
			continue
		}

		// Catalog metrics are validated on load.
		value, _ := def.Metric.Measure(*stats)
		next := def.locked()
		next.Progress = clamp(value, 0, def.MaxProgress)
		if next.Progress >= next.MaxProgress {
			unlockedAt := a.now()
			next.IsUnlocked = true
			next.UnlockedAt = &unlockedAt
			unlocked = append(unlocked, next)
		}
		stats.Achievements[i] = next
	}
	return unlocked
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
