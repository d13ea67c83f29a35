// Package tracker runs the progress engine against the stores of the
// signed-in user.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iremert/wordpecker/internal/auth"
	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/store"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

// Engine groups the progress components used by a Tracker.
type Engine struct {
	Reviewer   *progress.Reviewer
	Evaluator  *progress.Evaluator
	Aggregator *progress.Aggregator
	Now        progress.Clock
}

// NewEngine builds the engine components for rules and catalog.
func NewEngine(rules progress.Rules, catalog progress.Catalog, location *time.Location, now progress.Clock) (Engine, error) {
	reviewer, err := progress.NewReviewer(rules, now)
	if err != nil {
		return Engine{}, fmt.Errorf("progress.NewReviewer() > %w", err)
	}
	return Engine{
		Reviewer:   reviewer,
		Evaluator:  progress.NewEvaluator(reviewer),
		Aggregator: progress.NewAggregator(catalog, location, now),
		Now:        now,
	}, nil
}

// Tracker serves the word lists and statistics of the current user.
type Tracker struct {
	store  store.Store
	auth   auth.Provider
	engine Engine
	logger *slog.Logger
}

// New returns a Tracker on st that identifies users through provider.
func New(st store.Store, provider auth.Provider, engine Engine, logger *slog.Logger) *Tracker {
	if engine.Now == nil {
		engine.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		store:  st,
		auth:   provider,
		engine: engine,
		logger: logger,
	}
}

// SignInEvent is raised by the hosting application once a user is signed in.
type SignInEvent struct {
	UserID string
}

// State is everything loaded for a signed-in user.
type State struct {
	UserID   string
	Lists    []vocabulary.WordList
	Stats    progress.UserStats
	Unlocked []progress.Achievement
}

// ListChange is the result of an operation that modified one word list.
type ListChange struct {
	List     vocabulary.WordList
	Unlocked []progress.Achievement
}

// LearningResult is the outcome of a submitted learning session.
type LearningResult struct {
	List     vocabulary.WordList
	Session  progress.LearningSession
	Mastered []progress.MasteryTransition
	Stats    progress.UserStats
	Unlocked []progress.Achievement
}

// QuizOutcome is the outcome of a submitted quiz.
type QuizOutcome struct {
	List     vocabulary.WordList
	Result   progress.QuizResult
	Mastered []progress.MasteryTransition
	Stats    progress.UserStats
	Unlocked []progress.Achievement
}

// NewWordParams are the user supplied fields of a word.
type NewWordParams struct {
	SourceWord      string
	TargetWord      string
	Pronunciation   string
	ContextSentence string
	ImageURL        string
	Difficulty      string
}

// ImportSummary reports what AddWords did with each word.
type ImportSummary struct {
	List       vocabulary.WordList
	Added      int
	Duplicates []string
	Unlocked   []progress.Achievement
}

// OnSignIn loads the lists and statistics of the user. Statistics are
// recomputed from the lists and saved, so achievements added to the catalog
// since the last sign-in show up.
func (t *Tracker) OnSignIn(ctx context.Context, event SignInEvent) (*State, error) {
	if event.UserID == "" {
		return nil, auth.ErrUnauthenticated
	}

	lists, err := t.store.ListWordLists(ctx, event.UserID)
	if err != nil {
		return nil, fmt.Errorf("store.ListWordLists(%s) > %w", event.UserID, err)
	}
	stats, err := t.loadStats(ctx, event.UserID)
	if err != nil {
		return nil, err
	}

	aggregation := t.engine.Aggregator.Recompute(stats, lists)
	if err := t.store.SaveUserStats(ctx, &aggregation.Stats); err != nil {
		return nil, fmt.Errorf("store.SaveUserStats(%s) > %w", event.UserID, err)
	}
	t.logUnlocked(event.UserID, aggregation.Unlocked)

	t.logger.Debug("signed in",
		slog.String("userID", event.UserID),
		slog.Int("lists", len(lists)),
	)
	return &State{
		UserID:   event.UserID,
		Lists:    lists,
		Stats:    aggregation.Stats,
		Unlocked: aggregation.Unlocked,
	}, nil
}

// SignIn resolves the current user and raises OnSignIn for them.
func (t *Tracker) SignIn(ctx context.Context) (*State, error) {
	userID, err := t.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return t.OnSignIn(ctx, SignInEvent{UserID: userID})
}

// Lists returns the word lists of the current user, oldest first.
func (t *Tracker) Lists(ctx context.Context) ([]vocabulary.WordList, error) {
	userID, err := t.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	lists, err := t.store.ListWordLists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("store.ListWordLists(%s) > %w", userID, err)
	}
	return lists, nil
}

// List returns one word list of the current user.
func (t *Tracker) List(ctx context.Context, listID string) (*vocabulary.WordList, error) {
	userID, err := t.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return t.loadOwnedList(ctx, userID, listID)
}

// CreateList creates a word list owned by the current user.
func (t *Tracker) CreateList(ctx context.Context, params vocabulary.NewListParams) (ListChange, error) {
	userID, err := t.currentUser(ctx)
	if err != nil {
		return ListChange{}, err
	}
	params.Title = strings.TrimSpace(params.Title)
	if params.Title == "" {
		return ListChange{}, fmt.Errorf("%w: a word list needs a title", progress.ErrInvalidInput)
	}

	list := vocabulary.NewWordList(userID, params, t.engine.Now())
	return t.saveList(ctx, userID, &list)
}

// AddWord adds one word to a list of the current user.
func (t *Tracker) AddWord(ctx context.Context, listID string, params NewWordParams) (ListChange, error) {
	userID, err := t.currentUser(ctx)
	if err != nil {
		return ListChange{}, err
	}
	list, err := t.loadOwnedList(ctx, userID, listID)
	if err != nil {
		return ListChange{}, err
	}
	word, err := newWord(list.ID, params)
	if err != nil {
		return ListChange{}, err
	}

	list.AddWord(word, t.engine.Now())
	return t.saveList(ctx, userID, list)
}

// AddWords adds every word whose source word is not in the list yet.
func (t *Tracker) AddWords(ctx context.Context, listID string, params []NewWordParams) (ImportSummary, error) {
	userID, err := t.currentUser(ctx)
	if err != nil {
		return ImportSummary{}, err
	}
	list, err := t.loadOwnedList(ctx, userID, listID)
	if err != nil {
		return ImportSummary{}, err
	}

	summary := ImportSummary{Duplicates: []string{}}
	now := t.engine.Now()
	for _, p := range params {
		word, err := newWord(list.ID, p)
		if err != nil {
			return ImportSummary{}, err
		}
		if _, ok := list.FindBySource(word.SourceWord); ok {
			summary.Duplicates = append(summary.Duplicates, word.SourceWord)
			continue
		}
		list.AddWord(word, now)
		summary.Added++
	}
	if summary.Added == 0 {
		summary.List = *list
		return summary, nil
	}

	change, err := t.saveList(ctx, userID, list)
	if err != nil {
		return ImportSummary{}, err
	}
	summary.List = change.List
	summary.Unlocked = change.Unlocked
	return summary, nil
}

// RemoveWord removes a word from a list of the current user.
func (t *Tracker) RemoveWord(ctx context.Context, listID, wordID string) (ListChange, error) {
	userID, err := t.currentUser(ctx)
	if err != nil {
		return ListChange{}, err
	}
	list, err := t.loadOwnedList(ctx, userID, listID)
	if err != nil {
		return ListChange{}, err
	}
	if !list.RemoveWord(wordID, t.engine.Now()) {
		return ListChange{}, fmt.Errorf("%w: %s", progress.ErrUnknownWord, wordID)
	}
	return t.saveList(ctx, userID, list)
}

// ResetWordMastery is the explicit user reset of a mastered word.
func (t *Tracker) ResetWordMastery(ctx context.Context, listID, wordID string) (ListChange, error) {
	userID, err := t.currentUser(ctx)
	if err != nil {
		return ListChange{}, err
	}
	list, err := t.loadOwnedList(ctx, userID, listID)
	if err != nil {
		return ListChange{}, err
	}
	i, ok := list.WordIndex()[wordID]
	if !ok {
		return ListChange{}, fmt.Errorf("%w: %s", progress.ErrUnknownWord, wordID)
	}

	words := append([]vocabulary.Word(nil), list.Words...)
	words[i] = t.engine.Reviewer.ResetMastery(words[i])
	list.ReplaceWords(words, t.engine.Now())
	return t.saveList(ctx, userID, list)
}

// DeleteList deletes a list of the current user and recomputes the statistics.
func (t *Tracker) DeleteList(ctx context.Context, listID string) error {
	userID, err := t.currentUser(ctx)
	if err != nil {
		return err
	}
	if _, err := t.loadOwnedList(ctx, userID, listID); err != nil {
		return err
	}
	if err := t.store.DeleteWordList(ctx, listID); err != nil {
		return fmt.Errorf("store.DeleteWordList(%s) > %w", listID, err)
	}

	lists, err := t.store.ListWordLists(ctx, userID)
	if err != nil {
		return fmt.Errorf("store.ListWordLists(%s) > %w", userID, err)
	}
	_, err = t.recompute(ctx, userID, lists)
	return err
}

// SubmitLearningSession evaluates a finished learning session, saves the
// reviewed words and folds the session into the user statistics.
// A zero input date is replaced with the current time.
func (t *Tracker) SubmitLearningSession(ctx context.Context, input progress.SessionInput) (LearningResult, error) {
	userID, list, input, err := t.prepareSubmission(ctx, input)
	if err != nil {
		return LearningResult{}, err
	}

	evaluation, err := t.engine.Evaluator.EvaluateLearningSession(list.Words, input)
	if err != nil {
		return LearningResult{}, fmt.Errorf("EvaluateLearningSession(%s) > %w", list.ID, err)
	}
	lists, err := t.saveReviewedWords(ctx, userID, list, evaluation.Words)
	if err != nil {
		return LearningResult{}, err
	}

	stats, err := t.loadStats(ctx, userID)
	if err != nil {
		return LearningResult{}, err
	}
	aggregation, err := t.engine.Aggregator.ApplyLearningSession(stats, lists, evaluation.Session)
	if err != nil {
		return LearningResult{}, fmt.Errorf("ApplyLearningSession(%s) > %w", evaluation.Session.ID, err)
	}
	if err := t.store.SaveUserStats(ctx, &aggregation.Stats); err != nil {
		return LearningResult{}, fmt.Errorf("store.SaveUserStats(%s) > %w", userID, err)
	}

	t.logMastered(list.ID, evaluation.Mastered)
	t.logUnlocked(userID, aggregation.Unlocked)
	t.logger.Info("learning session recorded",
		slog.String("listID", list.ID),
		slog.Int("wordsReviewed", evaluation.Session.WordsReviewed),
		slog.Int("wordsMastered", evaluation.Session.WordsMastered),
		slog.Int("streakDays", aggregation.Stats.StreakDays),
	)
	return LearningResult{
		List:     *list,
		Session:  evaluation.Session,
		Mastered: evaluation.Mastered,
		Stats:    aggregation.Stats,
		Unlocked: aggregation.Unlocked,
	}, nil
}

// SubmitQuiz scores a finished quiz, saves the reviewed words and folds the
// result into the user statistics. A zero input date is replaced with the
// current time.
func (t *Tracker) SubmitQuiz(ctx context.Context, input progress.SessionInput) (QuizOutcome, error) {
	userID, list, input, err := t.prepareSubmission(ctx, input)
	if err != nil {
		return QuizOutcome{}, err
	}

	evaluation, err := t.engine.Evaluator.EvaluateQuiz(list.Words, input)
	if err != nil {
		return QuizOutcome{}, fmt.Errorf("EvaluateQuiz(%s) > %w", list.ID, err)
	}
	lists, err := t.saveReviewedWords(ctx, userID, list, evaluation.Words)
	if err != nil {
		return QuizOutcome{}, err
	}

	stats, err := t.loadStats(ctx, userID)
	if err != nil {
		return QuizOutcome{}, err
	}
	aggregation, err := t.engine.Aggregator.ApplyQuizResult(stats, lists, evaluation.Result)
	if err != nil {
		return QuizOutcome{}, fmt.Errorf("ApplyQuizResult(%s) > %w", evaluation.Result.ID, err)
	}
	if err := t.store.SaveUserStats(ctx, &aggregation.Stats); err != nil {
		return QuizOutcome{}, fmt.Errorf("store.SaveUserStats(%s) > %w", userID, err)
	}

	t.logMastered(list.ID, evaluation.Mastered)
	t.logUnlocked(userID, aggregation.Unlocked)
	t.logger.Info("quiz recorded",
		slog.String("listID", list.ID),
		slog.Float64("score", evaluation.Result.Score),
		slog.Int("wrongAnswers", len(evaluation.Result.WrongAnswers)),
		slog.Int("streakDays", aggregation.Stats.StreakDays),
	)
	return QuizOutcome{
		List:     *list,
		Result:   evaluation.Result,
		Mastered: evaluation.Mastered,
		Stats:    aggregation.Stats,
		Unlocked: aggregation.Unlocked,
	}, nil
}

// Stats returns the statistics of the current user, with totals and
// achievements recomputed from the stored lists. Nothing is saved.
func (t *Tracker) Stats(ctx context.Context) (progress.UserStats, error) {
	userID, err := t.currentUser(ctx)
	if err != nil {
		return progress.UserStats{}, err
	}
	lists, err := t.store.ListWordLists(ctx, userID)
	if err != nil {
		return progress.UserStats{}, fmt.Errorf("store.ListWordLists(%s) > %w", userID, err)
	}
	stats, err := t.loadStats(ctx, userID)
	if err != nil {
		return progress.UserStats{}, err
	}
	return t.engine.Aggregator.Recompute(stats, lists).Stats, nil
}

func (t *Tracker) currentUser(ctx context.Context) (string, error) {
	userID, err := t.auth.CurrentUserID(ctx)
	if err != nil {
		return "", fmt.Errorf("auth.CurrentUserID() > %w", err)
	}
	return userID, nil
}

// loadOwnedList reports lists of other users as not found.
func (t *Tracker) loadOwnedList(ctx context.Context, userID, listID string) (*vocabulary.WordList, error) {
	list, err := t.store.LoadWordList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("store.LoadWordList(%s) > %w", listID, err)
	}
	if list.UserID != userID {
		return nil, fmt.Errorf("%w: word list %s", store.ErrNotFound, listID)
	}
	return list, nil
}

func (t *Tracker) loadStats(ctx context.Context, userID string) (progress.UserStats, error) {
	stats, err := t.store.LoadUserStats(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return progress.NewUserStats(userID), nil
	}
	if err != nil {
		return progress.UserStats{}, fmt.Errorf("store.LoadUserStats(%s) > %w", userID, err)
	}
	return *stats, nil
}

func (t *Tracker) prepareSubmission(ctx context.Context, input progress.SessionInput) (string, *vocabulary.WordList, progress.SessionInput, error) {
	userID, err := t.currentUser(ctx)
	if err != nil {
		return "", nil, input, err
	}
	list, err := t.loadOwnedList(ctx, userID, input.ListID)
	if err != nil {
		return "", nil, input, err
	}
	if input.Date.IsZero() {
		input.Date = t.engine.Now()
	}
	return userID, list, input, nil
}

// saveReviewedWords stores the reviewed words and returns every list of the
// user with the saved list in place.
func (t *Tracker) saveReviewedWords(ctx context.Context, userID string, list *vocabulary.WordList, words []vocabulary.Word) ([]vocabulary.WordList, error) {
	list.ReplaceWords(words, t.engine.Now())
	if err := t.store.SaveWordList(ctx, list); err != nil {
		return nil, fmt.Errorf("store.SaveWordList(%s) > %w", list.ID, err)
	}
	lists, err := t.store.ListWordLists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("store.ListWordLists(%s) > %w", userID, err)
	}
	return withList(lists, *list), nil
}

// saveList stores a modified list and recomputes the user statistics.
func (t *Tracker) saveList(ctx context.Context, userID string, list *vocabulary.WordList) (ListChange, error) {
	if err := t.store.SaveWordList(ctx, list); err != nil {
		return ListChange{}, fmt.Errorf("store.SaveWordList(%s) > %w", list.ID, err)
	}
	lists, err := t.store.ListWordLists(ctx, userID)
	if err != nil {
		return ListChange{}, fmt.Errorf("store.ListWordLists(%s) > %w", userID, err)
	}
	unlocked, err := t.recompute(ctx, userID, withList(lists, *list))
	if err != nil {
		return ListChange{}, err
	}
	return ListChange{List: *list, Unlocked: unlocked}, nil
}

func (t *Tracker) recompute(ctx context.Context, userID string, lists []vocabulary.WordList) ([]progress.Achievement, error) {
	stats, err := t.loadStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	aggregation := t.engine.Aggregator.Recompute(stats, lists)
	if err := t.store.SaveUserStats(ctx, &aggregation.Stats); err != nil {
		return nil, fmt.Errorf("store.SaveUserStats(%s) > %w", userID, err)
	}
	t.logUnlocked(userID, aggregation.Unlocked)
	return aggregation.Unlocked, nil
}

func (t *Tracker) logMastered(listID string, mastered []progress.MasteryTransition) {
	for _, m := range mastered {
		t.logger.Info("word mastered",
			slog.String("listID", listID),
			slog.String("wordID", m.WordID),
			slog.String("sourceWord", m.SourceWord),
		)
	}
}

func (t *Tracker) logUnlocked(userID string, unlocked []progress.Achievement) {
	for _, a := range unlocked {
		t.logger.Info("achievement unlocked",
			slog.String("userID", userID),
			slog.String("achievement", a.ID),
		)
	}
}

// withList replaces the list with the same id, or appends it when a store
// does not return it yet.
func withList(lists []vocabulary.WordList, list vocabulary.WordList) []vocabulary.WordList {
	merged := make([]vocabulary.WordList, 0, len(lists)+1)
	found := false
	for _, l := range lists {
		if l.ID == list.ID {
			merged = append(merged, list)
			found = true
			continue
		}
		merged = append(merged, l)
	}
	if !found {
		merged = append(merged, list)
	}
	return merged
}

func newWord(listID string, params NewWordParams) (vocabulary.Word, error) {
	source := strings.TrimSpace(params.SourceWord)
	target := strings.TrimSpace(params.TargetWord)
	if source == "" || target == "" {
		return vocabulary.Word{}, fmt.Errorf("%w: a word needs a source and a target", progress.ErrInvalidInput)
	}
	difficulty, err := vocabulary.ParseDifficulty(strings.ToLower(strings.TrimSpace(params.Difficulty)))
	if err != nil {
		return vocabulary.Word{}, fmt.Errorf("%w: %w", progress.ErrInvalidInput, err)
	}

	word := vocabulary.NewWord(listID, source, target)
	word.Pronunciation = strings.TrimSpace(params.Pronunciation)
	word.ContextSentence = strings.TrimSpace(params.ContextSentence)
	word.ImageURL = strings.TrimSpace(params.ImageURL)
	word.Difficulty = difficulty
	return word, nil
}
