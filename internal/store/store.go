// Package store defines the persistence boundary of word lists and user statistics.
package store

import (
	"context"
	"errors"

	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

var (
	// ErrNotFound is returned when a word list or user statistics do not exist.
	ErrNotFound = errors.New("not found")

	// ErrStore is returned for I/O and backend failures. Operations failing
	// with ErrStore may be retried.
	ErrStore = errors.New("store failure")
)

//go:generate mockgen -source=store.go -destination=../mocks/store/mock_store.go -package=mock_store

type WordListStore interface {
	LoadWordList(ctx context.Context, id string) (*vocabulary.WordList, error)
	SaveWordList(ctx context.Context, list *vocabulary.WordList) error
	ListWordLists(ctx context.Context, userID string) ([]vocabulary.WordList, error)
	DeleteWordList(ctx context.Context, id string) error
}

type UserStatsStore interface {
	LoadUserStats(ctx context.Context, userID string) (*progress.UserStats, error)
	SaveUserStats(ctx context.Context, stats *progress.UserStats) error
}

// Store persists both word lists and user statistics.
type Store interface {
	WordListStore
	UserStatsStore
}
