// Package cli runs interactive learning sessions and quizzes in a terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/tracker"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

const quitCommand = "quit"

var (
	errEnd = errors.New("end")

	// ErrInterrupted is returned when the user interrupts a session. Nothing is submitted.
	ErrInterrupted = errors.New("session interrupted")
)

// Mode selects how answers are submitted.
type Mode string

const (
	ModeLearn Mode = "learn"
	ModeQuiz  Mode = "quiz"
)

//go:generate mockgen -source=review_session.go -destination=../mocks/cli/mock_submitter.go -package=mock_cli Submitter

type Submitter interface {
	SubmitLearningSession(ctx context.Context, input progress.SessionInput) (tracker.LearningResult, error)
	SubmitQuiz(ctx context.Context, input progress.SessionInput) (tracker.QuizOutcome, error)
}

// Options tune which words a session asks.
type Options struct {
	// Limit caps the number of questions. Zero asks every word.
	Limit   int
	Shuffle bool
}

// Summary describes a finished session.
type Summary struct {
	Answered int
	Correct  int
	Learning *tracker.LearningResult
	Quiz     *tracker.QuizOutcome
}

// ReviewSession asks the words of one list on a terminal.
type ReviewSession struct {
	mode         Mode
	list         vocabulary.WordList
	words        []vocabulary.Word
	submitter    Submitter
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	now          func() time.Time

	position int
	outcomes []progress.Outcome
}

func NewReviewSession(mode Mode, list vocabulary.WordList, submitter Submitter, stdin io.Reader, stdout io.Writer, opts Options) (*ReviewSession, error) {
	if mode != ModeLearn && mode != ModeQuiz {
		return nil, fmt.Errorf("unknown session mode %q", mode)
	}
	words := selectWords(mode, list.Words)
	if len(words) == 0 {
		return nil, fmt.Errorf("list %s has no words to practice", list.Title)
	}
	if opts.Shuffle {
		rand.Shuffle(len(words), func(i, j int) {
			words[i], words[j] = words[j], words[i]
		})
	}
	if opts.Limit > 0 && opts.Limit < len(words) {
		words = words[:opts.Limit]
	}

	return &ReviewSession{
		mode:         mode,
		list:         list,
		words:        words,
		submitter:    submitter,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		now:          time.Now,
	}, nil
}

// selectWords returns the words to ask. Learning sessions skip mastered
// words unless every word is mastered.
func selectWords(mode Mode, words []vocabulary.Word) []vocabulary.Word {
	selected := make([]vocabulary.Word, 0, len(words))
	if mode == ModeLearn {
		for _, w := range words {
			if !w.Mastered {
				selected = append(selected, w)
			}
		}
		if len(selected) > 0 {
			return selected
		}
	}
	return append(selected, words...)
}

// WordCount returns the number of questions in the session.
func (s *ReviewSession) WordCount() int {
	return len(s.words)
}

// Run asks the questions until the list ends or the user types "quit", then
// submits the answers. An interrupt signal ends the session with
// ErrInterrupted without submitting.
func (s *ReviewSession) Run(ctx context.Context) (*Summary, error) {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	started := s.now()
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for ctx.Err() == nil {
			if err := s.ask(); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return nil, err
		}
	}
	if ctx.Err() != nil {
		_, _ = fmt.Fprintln(s.stdoutWriter, "Received interrupt signal, exiting without saving...")
		return nil, ErrInterrupted
	}

	return s.submit(ctx, int(s.now().Sub(started).Seconds()))
}

func (s *ReviewSession) ask() error {
	if s.position >= len(s.words) {
		return errEnd
	}
	word := s.words[s.position]

	_, _ = fmt.Fprintf(s.stdoutWriter, "[%d/%d] ", s.position+1, len(s.words))
	if s.mode == ModeLearn {
		if word.Pronunciation != "" {
			_, _ = fmt.Fprintf(s.stdoutWriter, "/%s/ ", word.Pronunciation)
		}
		if word.ContextSentence != "" {
			_, _ = fmt.Fprintf(s.stdoutWriter, "%s\n", s.italic.Sprint(word.ContextSentence))
		}
	}
	_, _ = s.bold.Fprintf(s.stdoutWriter, "%s: ", word.SourceWord)

	asked := s.now()
	answer, err := s.stdinReader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error reading input: %w", err)
	}
	if errors.Is(err, io.EOF) && answer == "" {
		_, _ = fmt.Fprintln(s.stdoutWriter)
		return errEnd
	}
	answer = strings.TrimSpace(answer)
	if strings.EqualFold(answer, quitCommand) {
		return errEnd
	}

	correct := IsCorrectAnswer(answer, word.TargetWord)
	s.outcomes = append(s.outcomes, progress.Outcome{
		WordID:         word.ID,
		Correct:        correct,
		ResponseTimeMs: s.now().Sub(asked).Milliseconds(),
	})
	s.position++

	if correct {
		_, _ = fmt.Fprint(s.stdoutWriter, "✅ ")
		_, _ = color.New(color.FgGreen).Fprintf(s.stdoutWriter, "Correct: %s means %q\n", word.SourceWord, word.TargetWord)
	} else {
		_, _ = fmt.Fprint(s.stdoutWriter, "❌ ")
		_, _ = color.New(color.FgRed).Fprintf(s.stdoutWriter, "Wrong: %s means %q\n", word.SourceWord, word.TargetWord)
	}
	return nil
}

func (s *ReviewSession) submit(ctx context.Context, timeSpent int) (*Summary, error) {
	summary := &Summary{Answered: len(s.outcomes)}
	for _, o := range s.outcomes {
		if o.Correct {
			summary.Correct++
		}
	}
	if summary.Answered == 0 {
		_, _ = fmt.Fprintln(s.stdoutWriter, "No answers to save.")
		return summary, nil
	}

	input := progress.SessionInput{
		ListID:    s.list.ID,
		TimeSpent: max(timeSpent, 0),
		Outcomes:  s.outcomes,
	}
	switch s.mode {
	case ModeLearn:
		result, err := s.submitter.SubmitLearningSession(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("SubmitLearningSession() > %w", err)
		}
		summary.Learning = &result
		s.printUnlocked(result.Mastered, result.Unlocked)
	case ModeQuiz:
		result, err := s.submitter.SubmitQuiz(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("SubmitQuiz() > %w", err)
		}
		summary.Quiz = &result
		s.printUnlocked(result.Mastered, result.Unlocked)
	}

	_, _ = fmt.Fprintf(s.stdoutWriter, "\n%d of %d correct\n", summary.Correct, summary.Answered)
	return summary, nil
}

func (s *ReviewSession) printUnlocked(mastered []progress.MasteryTransition, unlocked []progress.Achievement) {
	for _, m := range mastered {
		_, _ = color.New(color.FgCyan).Fprintf(s.stdoutWriter, "Mastered %s\n", s.bold.Sprint(m.SourceWord))
	}
	for _, a := range unlocked {
		_, _ = color.New(color.FgYellow).Fprintf(s.stdoutWriter, "Achievement unlocked: %s %s\n", a.Icon, s.bold.Sprint(a.Title))
	}
}
