package assets

import (
	_ "embed"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/statistics"
)

const progressReportTemplateName = "progress-report.md.go.tmpl"

//go:embed templates/progress-report.md.go.tmpl
var fallbackProgressReportTemplate string

// ProgressReport is the data of the progress report template.
type ProgressReport struct {
	UserID             string
	GeneratedAt        time.Time
	Period             string
	StreakDays         int
	LastStreak         string
	TotalLists         int
	TotalWordsLearned  int
	TotalWordsMastered int
	Lists              []ReportList
	Statistics         statistics.Result
	Unlocked           []progress.Achievement
	Locked             []progress.Achievement
}

// ReportList summarizes one word list.
type ReportList struct {
	Title          string
	SourceLanguage string
	TargetLanguage string
	TotalWords     int
	LearnedWords   int
	HardWords      []string
}

func ParseProgressReportTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, progressReportTemplateName, fallbackProgressReportTemplate)
}

func WriteProgressReport(output io.Writer, templatePath string, data ProgressReport) error {
	tmpl, err := ParseProgressReportTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseProgressReportTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
