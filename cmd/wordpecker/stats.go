package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/report"
)

func newStatsCommand() *cobra.Command {
	statsCommand := &cobra.Command{
		Use:   "stats",
		Short: "Show learning progress",
	}

	statsCommand.AddCommand(
		newStatsShowCommand(),
		newStatsReportCommand(),
	)
	return statsCommand
}

func newStatsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show streak, totals and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			state, err := a.tracker.SignIn(cmd.Context())
			if err != nil {
				return fmt.Errorf("tracker.SignIn() > %w", err)
			}
			printStats(cmd.OutOrStdout(), state.Stats)
			printUnlocked(cmd.OutOrStdout(), state.Unlocked)
			return nil
		},
	}
}

func printStats(w io.Writer, stats progress.UserStats) {
	_, _ = fmt.Fprintf(w, "Streak: %d days", stats.StreakDays)
	if stats.LastStreak != nil {
		_, _ = fmt.Fprintf(w, " (last %s)", stats.LastStreak)
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Lists: %d\n", stats.TotalLists)
	_, _ = fmt.Fprintf(w, "Words learned: %d\n", stats.TotalWordsLearned)
	_, _ = fmt.Fprintf(w, "Words mastered: %d\n", stats.TotalWordsMastered)
	_, _ = fmt.Fprintf(w, "Learning sessions: %d\n", len(stats.LearningSessions))
	_, _ = fmt.Fprintf(w, "Quizzes: %d (%d perfect)\n", len(stats.QuizResults), stats.PerfectQuizCount())

	_, _ = fmt.Fprintln(w, "\nAchievements:")
	for _, a := range stats.Achievements {
		mark := "[ ]"
		if a.IsUnlocked {
			mark = "[x]"
		}
		_, _ = fmt.Fprintf(w, "%s %s %d/%d\n", mark, a.Title, a.Progress, a.MaxProgress)
	}
}

func newStatsReportCommand() *cobra.Command {
	var (
		year  int
		month int
		pdf   bool
	)
	command := &cobra.Command{
		Use:   "report",
		Short: "Write a markdown progress report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month needs --year")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			state, err := a.tracker.SignIn(cmd.Context())
			if err != nil {
				return fmt.Errorf("tracker.SignIn() > %w", err)
			}
			loc, err := a.cfg.Engine.Location()
			if err != nil {
				return err
			}

			data := report.Build(state.Stats, state.Lists, report.Options{Year: year, Month: month, Location: loc}, clock())
			path, err := report.NewWriter(a.cfg.Outputs.ReportDirectory, a.cfg.Templates.ReportTemplate).WriteMarkdown(data)
			if err != nil {
				return fmt.Errorf("report.WriteMarkdown() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)

			if pdf {
				pdfPath, err := report.ConvertMarkdownToPDF(path)
				if err != nil {
					return fmt.Errorf("report.ConvertMarkdownToPDF() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", pdfPath)
			}
			return nil
		},
	}
	command.Flags().IntVar(&year, "year", 0, "only report this year")
	command.Flags().IntVar(&month, "month", 0, "only report this month of --year")
	command.Flags().BoolVar(&pdf, "pdf", false, "also convert the report to PDF")
	return command
}
