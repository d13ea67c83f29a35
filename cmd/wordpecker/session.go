package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/iremert/wordpecker/internal/cli"
	"github.com/iremert/wordpecker/internal/progress"
)

func newLearnCommand() *cobra.Command {
	var opts cli.Options
	command := &cobra.Command{
		Use:   "learn <list-id>",
		Short: "Practice the words of a list that are not mastered yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReviewSession(cmd, cli.ModeLearn, args[0], opts)
		},
	}
	addSessionFlags(command.Flags(), &opts)
	return command
}

func newQuizCommand() *cobra.Command {
	var (
		opts        cli.Options
		resultsFile string
	)
	command := &cobra.Command{
		Use:   "quiz <list-id>",
		Short: "Quiz every word of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if resultsFile != "" {
				return submitRecordedQuiz(cmd, args[0], resultsFile)
			}
			return runReviewSession(cmd, cli.ModeQuiz, args[0], opts)
		},
	}
	addSessionFlags(command.Flags(), &opts)
	command.Flags().StringVar(&resultsFile, "results", "", "submit the answers recorded in a YAML file instead of asking")
	return command
}

func addSessionFlags(flags *pflag.FlagSet, opts *cli.Options) {
	flags.IntVar(&opts.Limit, "limit", 0, "maximum number of words to ask")
	flags.BoolVar(&opts.Shuffle, "shuffle", true, "ask the words in random order")
}

func runReviewSession(cmd *cobra.Command, mode cli.Mode, listID string, opts cli.Options) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := a.tracker.List(cmd.Context(), listID)
	if err != nil {
		return fmt.Errorf("tracker.List() > %w", err)
	}
	session, err := cli.NewReviewSession(mode, *list, a.tracker, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting %s of %s with %d words. Type 'quit' to finish early.\n\n", mode, list.Title, session.WordCount())
	if _, err := session.Run(cmd.Context()); err != nil {
		if errors.Is(err, cli.ErrInterrupted) {
			return nil
		}
		return err
	}
	return nil
}

// submitRecordedQuiz submits a quiz whose answers were recorded elsewhere.
func submitRecordedQuiz(cmd *cobra.Command, listID, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var input progress.SessionInput
	if err := yaml.Unmarshal(content, &input); err != nil {
		return fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	input.ListID = listID

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	outcome, err := a.tracker.SubmitQuiz(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("tracker.SubmitQuiz() > %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Quiz saved: %d of %d correct (%.0f%%)\n", outcome.Result.CorrectAnswers, outcome.Result.TotalQuestions, outcome.Result.Score*100)
	for _, m := range outcome.Mastered {
		_, _ = fmt.Fprintf(out, "Mastered %s\n", m.SourceWord)
	}
	printUnlocked(out, outcome.Unlocked)
	return nil
}
