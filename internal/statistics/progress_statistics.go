// Package statistics summarizes a user's learning history per month.
package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/iremert/wordpecker/internal/progress"
)

// PeriodStatistics holds the activity of one month ("2025-01").
type PeriodStatistics struct {
	Period            string
	ActiveDays        int
	LearningSessions  int
	WordsReviewed     int
	WordsMastered     int
	Quizzes           int
	PerfectQuizzes    int
	QuestionsAnswered int
	CorrectAnswers    int
	AverageScore      float64 // mean quiz score, 0 without quizzes
	TimeSpent         int     // seconds over sessions and quizzes
	WrongWordsUnique  int
}

// AggregateStatistics holds totals across all periods. Unique counts are
// deduplicated across periods.
type AggregateStatistics struct {
	ActiveDays        int
	LearningSessions  int
	WordsReviewed     int
	WordsMastered     int
	Quizzes           int
	PerfectQuizzes    int
	QuestionsAnswered int
	CorrectAnswers    int
	AverageScore      float64
	TimeSpent         int
	WrongWordsUnique  int
}

// Result holds both per-period and aggregate statistics.
type Result struct {
	Periods   []PeriodStatistics
	Aggregate AggregateStatistics
}

type periodData struct {
	stats      PeriodStatistics
	scoreSum   float64
	activeDays map[string]struct{}
	wrongWords map[string]struct{}
}

// Calculate summarizes the learning sessions and quiz results of stats.
// It accepts optional year and month filters (0 means no filter). Records
// are assigned to the month of their date in loc (UTC when nil).
func Calculate(stats progress.UserStats, year, month int, loc *time.Location) Result {
	if loc == nil {
		loc = time.UTC
	}
	periods := make(map[string]*periodData)
	globalDays := make(map[string]struct{})
	globalWrong := make(map[string]struct{})

	for _, session := range stats.LearningSessions {
		data := track(periods, globalDays, session.Date.In(loc), year, month)
		if data == nil {
			continue
		}
		data.stats.LearningSessions++
		data.stats.WordsReviewed += session.WordsReviewed
		data.stats.WordsMastered += session.WordsMastered
		data.stats.TimeSpent += session.TimeSpent
	}

	for _, result := range stats.QuizResults {
		data := track(periods, globalDays, result.Date.In(loc), year, month)
		if data == nil {
			continue
		}
		data.stats.Quizzes++
		if result.IsPerfect() {
			data.stats.PerfectQuizzes++
		}
		data.stats.QuestionsAnswered += result.TotalQuestions
		data.stats.CorrectAnswers += result.CorrectAnswers
		data.stats.TimeSpent += result.TimeSpent
		data.scoreSum += result.Score
		for _, wordID := range result.WrongAnswers {
			data.wrongWords[wordID] = struct{}{}
			globalWrong[wordID] = struct{}{}
		}
	}

	return buildResult(periods, globalDays, globalWrong)
}

// track returns the period of t, or nil when t is filtered out.
func track(periods map[string]*periodData, globalDays map[string]struct{}, t time.Time, year, month int) *periodData {
	if t.IsZero() || !matchesFilter(t.Year(), int(t.Month()), year, month) {
		return nil
	}

	period := fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))
	if periods[period] == nil {
		periods[period] = &periodData{
			stats:      PeriodStatistics{Period: period},
			activeDays: make(map[string]struct{}),
			wrongWords: make(map[string]struct{}),
		}
	}
	day := t.Format(time.DateOnly)
	periods[period].activeDays[day] = struct{}{}
	globalDays[day] = struct{}{}
	return periods[period]
}

func matchesFilter(recordYear, recordMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if recordYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return recordMonth == filterMonth
}

func buildResult(periods map[string]*periodData, globalDays, globalWrong map[string]struct{}) Result {
	result := Result{Periods: make([]PeriodStatistics, 0, len(periods))}

	var scoreSum float64
	for _, data := range periods {
		data.stats.ActiveDays = len(data.activeDays)
		data.stats.WrongWordsUnique = len(data.wrongWords)
		if data.stats.Quizzes > 0 {
			data.stats.AverageScore = data.scoreSum / float64(data.stats.Quizzes)
		}
		result.Periods = append(result.Periods, data.stats)

		agg := &result.Aggregate
		agg.LearningSessions += data.stats.LearningSessions
		agg.WordsReviewed += data.stats.WordsReviewed
		agg.WordsMastered += data.stats.WordsMastered
		agg.Quizzes += data.stats.Quizzes
		agg.PerfectQuizzes += data.stats.PerfectQuizzes
		agg.QuestionsAnswered += data.stats.QuestionsAnswered
		agg.CorrectAnswers += data.stats.CorrectAnswers
		agg.TimeSpent += data.stats.TimeSpent
		scoreSum += data.scoreSum
	}
	result.Aggregate.ActiveDays = len(globalDays)
	result.Aggregate.WrongWordsUnique = len(globalWrong)
	if result.Aggregate.Quizzes > 0 {
		result.Aggregate.AverageScore = scoreSum / float64(result.Aggregate.Quizzes)
	}

	// Newest first
	sort.Slice(result.Periods, func(i, j int) bool {
		return result.Periods[i].Period > result.Periods[j].Period
	})
	return result
}
