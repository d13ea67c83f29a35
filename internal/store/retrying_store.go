package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go"

	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

// RetryingStore retries operations of another Store that fail with ErrStore.
// ErrNotFound and context errors are returned immediately.
type RetryingStore struct {
	next     Store
	attempts uint
	delay    time.Duration
	logger   *slog.Logger
}

func NewRetryingStore(next Store, attempts int, delay time.Duration, logger *slog.Logger) *RetryingStore {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryingStore{
		next:     next,
		attempts: uint(attempts),
		delay:    delay,
		logger:   logger,
	}
}

func (s *RetryingStore) do(ctx context.Context, operation string, fn func() error) error {
	return retry.Do(
		func() error {
			err := fn()
			if err != nil && !errors.Is(err, ErrStore) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.LastErrorOnly(true),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("store operation failed, retrying",
				"operation", operation,
				"attempt", n+1,
				"error", err,
			)
		}),
	)
}

func (s *RetryingStore) LoadWordList(ctx context.Context, id string) (*vocabulary.WordList, error) {
	var list *vocabulary.WordList
	err := s.do(ctx, "LoadWordList", func() error {
		var err error
		list, err = s.next.LoadWordList(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *RetryingStore) SaveWordList(ctx context.Context, list *vocabulary.WordList) error {
	return s.do(ctx, "SaveWordList", func() error {
		return s.next.SaveWordList(ctx, list)
	})
}

func (s *RetryingStore) ListWordLists(ctx context.Context, userID string) ([]vocabulary.WordList, error) {
	var lists []vocabulary.WordList
	err := s.do(ctx, "ListWordLists", func() error {
		var err error
		lists, err = s.next.ListWordLists(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (s *RetryingStore) DeleteWordList(ctx context.Context, id string) error {
	return s.do(ctx, "DeleteWordList", func() error {
		return s.next.DeleteWordList(ctx, id)
	})
}

func (s *RetryingStore) LoadUserStats(ctx context.Context, userID string) (*progress.UserStats, error) {
	var stats *progress.UserStats
	err := s.do(ctx, "LoadUserStats", func() error {
		var err error
		stats, err = s.next.LoadUserStats(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *RetryingStore) SaveUserStats(ctx context.Context, stats *progress.UserStats) error {
	return s.do(ctx, "SaveUserStats", func() error {
		return s.next.SaveUserStats(ctx, stats)
	})
}
