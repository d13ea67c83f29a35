package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iremert/wordpecker/internal/importer"
	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

func newListCommand() *cobra.Command {
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "Manage word lists",
	}

	listCommand.AddCommand(
		newListCreateCommand(),
		newListLsCommand(),
		newListShowCommand(),
		newListImportCommand(),
		newListDeleteCommand(),
	)
	return listCommand
}

func newListCreateCommand() *cobra.Command {
	var params vocabulary.NewListParams
	command := &cobra.Command{
		Use:   "create <title>",
		Short: "Create an empty word list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			params.Title = args[0]
			change, err := a.tracker.CreateList(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("tracker.CreateList() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created list %s (%s)\n", change.List.Title, change.List.ID)
			printUnlocked(cmd.OutOrStdout(), change.Unlocked)
			return nil
		},
	}
	command.Flags().StringVar(&params.Description, "description", "", "list description")
	command.Flags().StringVar(&params.SourceLanguage, "source-language", "", "language of the words to learn")
	command.Flags().StringVar(&params.TargetLanguage, "target-language", "", "language of the translations")
	command.Flags().StringVar(&params.Category, "category", "", "list category")
	command.Flags().StringVar(&params.Source, "source", "", "where the words come from")
	return command
}

func newListLsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Show every word list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			lists, err := a.tracker.Lists(cmd.Context())
			if err != nil {
				return fmt.Errorf("tracker.Lists() > %w", err)
			}
			if len(lists) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No word lists yet.")
				return nil
			}
			for _, list := range lists {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d/%d mastered\n", list.ID, list.Title, list.LearnedWords, list.TotalWords)
			}
			return nil
		},
	}
}

func newListShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <list-id>",
		Short: "Show the words of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			list, err := a.tracker.List(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("tracker.List() > %w", err)
			}
			printList(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

func printList(w io.Writer, list *vocabulary.WordList) {
	_, _ = fmt.Fprintf(w, "%s (%s)\n", list.Title, list.ID)
	if list.SourceLanguage != "" || list.TargetLanguage != "" {
		_, _ = fmt.Fprintf(w, "%s -> %s\n", list.SourceLanguage, list.TargetLanguage)
	}
	_, _ = fmt.Fprintf(w, "%d of %d words mastered\n\n", list.LearnedWords, list.TotalWords)
	for _, word := range list.Words {
		mark := " "
		if word.Mastered {
			mark = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %s  %s = %s  [%s, reviewed %d times]\n", mark, word.ID, word.SourceWord, word.TargetWord, word.Difficulty, word.ReviewCount)
	}
}

func newListImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <list-id> <file>",
		Short: "Add the words of a .csv or .xlsx file to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := importer.New(a.cfg.Import).ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("importer.ReadFile() > %w", err)
			}
			out := cmd.OutOrStdout()
			for _, skipped := range result.Skipped {
				_, _ = fmt.Fprintf(out, "Skipped row %d: %s\n", skipped.Row, skipped.Reason)
			}
			if len(result.Words) == 0 {
				_, _ = fmt.Fprintln(out, "No words to import.")
				return nil
			}

			summary, err := a.tracker.AddWords(cmd.Context(), args[0], result.Words)
			if err != nil {
				return fmt.Errorf("tracker.AddWords() > %w", err)
			}
			for _, duplicate := range summary.Duplicates {
				_, _ = fmt.Fprintf(out, "Skipped duplicate %s\n", duplicate)
			}
			_, _ = fmt.Fprintf(out, "Imported %d words into %s\n", summary.Added, summary.List.Title)
			printUnlocked(out, summary.Unlocked)
			return nil
		},
	}
}

func newListDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list-id>",
		Short: "Delete a word list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.tracker.DeleteList(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("tracker.DeleteList() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted list %s\n", args[0])
			return nil
		},
	}
}

func printUnlocked(w io.Writer, unlocked []progress.Achievement) {
	for _, achievement := range unlocked {
		_, _ = fmt.Fprintf(w, "Achievement unlocked: %s\n", achievement.Title)
	}
}
