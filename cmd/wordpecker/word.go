package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iremert/wordpecker/internal/tracker"
)

func newWordCommand() *cobra.Command {
	wordCommand := &cobra.Command{
		Use:   "word",
		Short: "Manage the words of a list",
	}

	wordCommand.AddCommand(
		newWordAddCommand(),
		newWordRemoveCommand(),
		newWordResetCommand(),
	)
	return wordCommand
}

func newWordAddCommand() *cobra.Command {
	var params tracker.NewWordParams
	command := &cobra.Command{
		Use:   "add <list-id> <source-word> <target-word>",
		Short: "Add a word to a list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			params.SourceWord = args[1]
			params.TargetWord = args[2]
			change, err := a.tracker.AddWord(cmd.Context(), args[0], params)
			if err != nil {
				return fmt.Errorf("tracker.AddWord() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (%d words)\n", params.SourceWord, change.List.Title, change.List.TotalWords)
			printUnlocked(cmd.OutOrStdout(), change.Unlocked)
			return nil
		},
	}
	command.Flags().StringVar(&params.Pronunciation, "pronunciation", "", "pronunciation of the source word")
	command.Flags().StringVar(&params.ContextSentence, "context", "", "an example sentence")
	command.Flags().StringVar(&params.ImageURL, "image-url", "", "an illustrating image")
	command.Flags().StringVar(&params.Difficulty, "difficulty", "", "easy, medium or hard (default easy)")
	return command
}

func newWordRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <list-id> <word-id>",
		Short: "Remove a word from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			change, err := a.tracker.RemoveWord(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("tracker.RemoveWord() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s (%d words)\n", args[1], change.List.Title, change.List.TotalWords)
			return nil
		},
	}
}

func newWordResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <list-id> <word-id>",
		Short: "Reset the mastery of a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			change, err := a.tracker.ResetWordMastery(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("tracker.ResetWordMastery() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reset %s in %s (%d of %d words mastered)\n", args[1], change.List.Title, change.List.LearnedWords, change.List.TotalWords)
			return nil
		},
	}
}
