// Package report writes progress reports as markdown and PDF files.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/iremert/wordpecker/internal/assets"
	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/statistics"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

// Options select the reporting period. Zero Year and Month mean all time.
type Options struct {
	Year     int
	Month    int
	Location *time.Location
}

// Period names the reporting period, e.g. "2025-01", "2025" or "all time".
func (o Options) Period() string {
	switch {
	case o.Year != 0 && o.Month != 0:
		return fmt.Sprintf("%d-%02d", o.Year, o.Month)
	case o.Year != 0:
		return fmt.Sprintf("%d", o.Year)
	default:
		return "all time"
	}
}

// Build collects the template data of a progress report.
func Build(stats progress.UserStats, lists []vocabulary.WordList, opts Options, now time.Time) assets.ProgressReport {
	data := assets.ProgressReport{
		UserID:             stats.UserID,
		GeneratedAt:        now,
		Period:             opts.Period(),
		StreakDays:         stats.StreakDays,
		TotalLists:         stats.TotalLists,
		TotalWordsLearned:  stats.TotalWordsLearned,
		TotalWordsMastered: stats.TotalWordsMastered,
		Statistics:         statistics.Calculate(stats, opts.Year, opts.Month, opts.Location),
		Lists:              make([]assets.ReportList, 0, len(lists)),
		Unlocked:           []progress.Achievement{},
		Locked:             []progress.Achievement{},
	}
	if stats.LastStreak != nil {
		data.LastStreak = stats.LastStreak.String()
	}

	for _, list := range lists {
		hard := []string{}
		for _, w := range list.Words {
			if w.Difficulty == vocabulary.DifficultyHard && !w.Mastered {
				hard = append(hard, w.SourceWord)
			}
		}
		data.Lists = append(data.Lists, assets.ReportList{
			Title:          list.Title,
			SourceLanguage: list.SourceLanguage,
			TargetLanguage: list.TargetLanguage,
			TotalWords:     list.TotalWords,
			LearnedWords:   list.LearnedWords,
			HardWords:      hard,
		})
	}

	for _, a := range stats.Achievements {
		if a.IsUnlocked {
			data.Unlocked = append(data.Unlocked, a)
		} else {
			data.Locked = append(data.Locked, a)
		}
	}
	// Most recent first; closest to unlocking first
	sort.SliceStable(data.Unlocked, func(i, j int) bool {
		a, b := data.Unlocked[i].UnlockedAt, data.Unlocked[j].UnlockedAt
		return a != nil && (b == nil || a.After(*b))
	})
	sort.SliceStable(data.Locked, func(i, j int) bool {
		return ratio(data.Locked[i]) > ratio(data.Locked[j])
	})
	return data
}

func ratio(a progress.Achievement) float64 {
	if a.MaxProgress <= 0 {
		return 0
	}
	return float64(a.Progress) / float64(a.MaxProgress)
}

// Writer writes reports into a directory.
type Writer struct {
	directory    string
	templatePath string
}

func NewWriter(directory, templatePath string) *Writer {
	return &Writer{directory: directory, templatePath: templatePath}
}

// WriteMarkdown renders data to <directory>/progress-<user>-<period>.md and
// returns the file path.
func (w *Writer) WriteMarkdown(data assets.ProgressReport) (string, error) {
	var buf bytes.Buffer
	if err := assets.WriteProgressReport(&buf, w.templatePath, data); err != nil {
		return "", fmt.Errorf("assets.WriteProgressReport() > %w", err)
	}

	if err := os.MkdirAll(w.directory, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", w.directory, err)
	}
	path := filepath.Join(w.directory, fileName(data))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

func fileName(data assets.ProgressReport) string {
	period := "all"
	if data.Period != "all time" {
		period = data.Period
	}
	return fmt.Sprintf("progress-%s-%s.md", data.UserID, period)
}
