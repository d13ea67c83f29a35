package progress

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed achievements.yml
var defaultCatalogYAML []byte

// Metric is a pure measurement of UserStats that drives achievement progress.
type Metric string

const (
	MetricWordsMastered    Metric = "words_mastered"
	MetricWordsLearned     Metric = "words_learned"
	MetricStreakDays       Metric = "streak_days"
	MetricListsCreated     Metric = "lists_created"
	MetricLearningSessions Metric = "learning_sessions"
	MetricQuizzesTaken     Metric = "quizzes_taken"
	MetricPerfectQuizzes   Metric = "perfect_quizzes"
)

var metrics = map[Metric]func(UserStats) int{
	MetricWordsMastered:    func(s UserStats) int { return s.TotalWordsMastered },
	MetricWordsLearned:     func(s UserStats) int { return s.TotalWordsLearned },
	MetricStreakDays:       func(s UserStats) int { return s.StreakDays },
	MetricListsCreated:     func(s UserStats) int { return s.TotalLists },
	MetricLearningSessions: func(s UserStats) int { return len(s.LearningSessions) },
	MetricQuizzesTaken:     func(s UserStats) int { return len(s.QuizResults) },
	MetricPerfectQuizzes:   func(s UserStats) int { return s.PerfectQuizCount() },
}

// Measure returns the metric's current value for stats.
func (m Metric) Measure(stats UserStats) (int, error) {
	fn, ok := metrics[m]
	if !ok {
		return 0, fmt.Errorf("unknown achievement metric %q", m)
	}
	return fn(stats), nil
}

// AchievementDefinition is one catalog entry.
type AchievementDefinition struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Color       string `yaml:"color"`
	Metric      Metric `yaml:"metric"`
	MaxProgress int    `yaml:"max_progress"`
}

// Catalog is the set of achievements every user can unlock.
type Catalog struct {
	Achievements []AchievementDefinition `yaml:"achievements"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() Catalog {
	catalog, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Errorf("embedded achievement catalog is invalid: %w", err))
	}
	return catalog
}

// LoadCatalog reads a catalog file, or returns the built-in catalog when path is empty.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	catalog, err := ParseCatalog(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("ParseCatalog(%s) > %w", path, err)
	}
	return catalog, nil
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("yaml.Unmarshal() > %w", err)
	}

	seen := make(map[string]struct{}, len(catalog.Achievements))
	for _, def := range catalog.Achievements {
		if def.ID == "" {
			return Catalog{}, fmt.Errorf("achievement %q has no id", def.Title)
		}
		if _, ok := seen[def.ID]; ok {
			return Catalog{}, fmt.Errorf("duplicate achievement id %q", def.ID)
		}
		seen[def.ID] = struct{}{}
		if _, ok := metrics[def.Metric]; !ok {
			return Catalog{}, fmt.Errorf("achievement %q uses unknown metric %q", def.ID, def.Metric)
		}
		if def.MaxProgress <= 0 {
			return Catalog{}, fmt.Errorf("achievement %q needs a positive max_progress, got %d", def.ID, def.MaxProgress)
		}
	}
	return catalog, nil
}

func (def AchievementDefinition) locked() Achievement {
	return Achievement{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Icon:        def.Icon,
		Color:       def.Color,
		MaxProgress: def.MaxProgress,
	}
}
