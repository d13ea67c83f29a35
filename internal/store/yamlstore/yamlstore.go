// Package yamlstore keeps word lists and user statistics as YAML files.
//
//	<dir>/lists/<list id>.yml
//	<dir>/stats/<user id>.yml
package yamlstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/store"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

const (
	listsDirectory = "lists"
	statsDirectory = "stats"
	fileExtension  = ".yml"
)

type Store struct {
	directory string
}

var _ store.Store = (*Store)(nil)

func New(directory string) *Store {
	return &Store{directory: directory}
}

func (s *Store) LoadWordList(_ context.Context, id string) (*vocabulary.WordList, error) {
	path, err := s.path(listsDirectory, id)
	if err != nil {
		return nil, err
	}
	list, err := readYamlFile[vocabulary.WordList](path)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *Store) SaveWordList(_ context.Context, list *vocabulary.WordList) error {
	path, err := s.savePath(listsDirectory, list.ID)
	if err != nil {
		return err
	}
	return writeYamlFile(path, list)
}

func (s *Store) ListWordLists(_ context.Context, userID string) ([]vocabulary.WordList, error) {
	dir := filepath.Join(s.directory, listsDirectory)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []vocabulary.WordList{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: os.ReadDir(%s) > %w", store.ErrStore, dir, err)
	}

	lists := []vocabulary.WordList{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileExtension {
			continue
		}
		list, err := readYamlFile[vocabulary.WordList](filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if list.UserID == userID {
			lists = append(lists, list)
		}
	}
	sort.SliceStable(lists, func(i, j int) bool {
		if lists[i].CreatedAt.Equal(lists[j].CreatedAt) {
			return lists[i].ID < lists[j].ID
		}
		return lists[i].CreatedAt.Before(lists[j].CreatedAt)
	})
	return lists, nil
}

func (s *Store) DeleteWordList(_ context.Context, id string) error {
	path, err := s.path(listsDirectory, id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: word list %s", store.ErrNotFound, id)
		}
		return fmt.Errorf("%w: os.Remove(%s) > %w", store.ErrStore, path, err)
	}
	return nil
}

func (s *Store) LoadUserStats(_ context.Context, userID string) (*progress.UserStats, error) {
	path, err := s.path(statsDirectory, userID)
	if err != nil {
		return nil, err
	}
	stats, err := readYamlFile[progress.UserStats](path)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Store) SaveUserStats(_ context.Context, stats *progress.UserStats) error {
	path, err := s.savePath(statsDirectory, stats.UserID)
	if err != nil {
		return err
	}
	return writeYamlFile(path, stats)
}

// path returns the file of id. Ids that cannot name a file are never found.
func (s *Store) path(kind, id string) (string, error) {
	if !isValidID(id) {
		return "", fmt.Errorf("%w: invalid id %q", store.ErrNotFound, id)
	}
	return filepath.Join(s.directory, kind, id+fileExtension), nil
}

func (s *Store) savePath(kind, id string) (string, error) {
	if !isValidID(id) {
		return "", fmt.Errorf("%w: invalid id %q", progress.ErrInvalidInput, id)
	}
	return filepath.Join(s.directory, kind, id+fileExtension), nil
}

func isValidID(id string) bool {
	return id != "" && id == filepath.Base(id) && !strings.HasPrefix(id, ".")
}

func readYamlFile[T any](path string) (T, error) {
	var result T

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, fmt.Errorf("%w: %s", store.ErrNotFound, filepath.Base(path))
		}
		return result, fmt.Errorf("%w: os.Open(%s) > %w", store.ErrStore, path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("%w: yaml.NewDecoder(%s).Decode() > %w", store.ErrStore, path, err)
	}
	return result, nil
}

// writeYamlFile replaces path atomically so a reader never sees a partial file.
func writeYamlFile[T any](path string, data T) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: os.MkdirAll(%s) > %w", store.ErrStore, dir, err)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: os.CreateTemp(%s) > %w", store.ErrStore, dir, err)
	}
	tmpPath := file.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	enc := yaml.NewEncoder(file)
	if err := enc.Encode(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: yaml.NewEncoder().Encode() > %w", store.ErrStore, err)
	}
	if err := enc.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: yaml.Encoder.Close() > %w", store.ErrStore, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: file.Close() > %w", store.ErrStore, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: os.Rename(%s) > %w", store.ErrStore, path, err)
	}
	return nil
}
