// Package firebase stores word lists and user statistics in a Firebase
// Realtime Database through its REST API.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/store"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

const (
	wordListPath  = "/wordLists/{id}.json"
	wordListsPath = "/wordLists.json"
	userStatsPath = "/userStats/{id}.json"
)

type Store struct {
	httpClient *resty.Client
}

var _ store.Store = (*Store)(nil)

// New returns a store for the database at baseURL. authToken is sent as the
// auth query parameter when it is not empty.
func New(baseURL, authToken string, timeout time.Duration) *Store {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(timeout)
	if authToken != "" {
		client.SetQueryParam("auth", authToken)
	}
	return &Store{httpClient: client}
}

func (s *Store) LoadWordList(ctx context.Context, id string) (*vocabulary.WordList, error) {
	var list vocabulary.WordList
	found, err := s.get(ctx, wordListPath, id, nil, &list)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: word list %s", store.ErrNotFound, id)
	}
	normalizeWordList(&list)
	return &list, nil
}

func (s *Store) ListWordLists(ctx context.Context, userID string) ([]vocabulary.WordList, error) {
	var byID map[string]vocabulary.WordList
	query := map[string]string{
		"orderBy": `"userId"`,
		"equalTo": fmt.Sprintf("%q", userID),
	}
	if _, err := s.get(ctx, wordListsPath, "", query, &byID); err != nil {
		return nil, err
	}

	lists := make([]vocabulary.WordList, 0, len(byID))
	for _, list := range byID {
		normalizeWordList(&list)
		lists = append(lists, list)
	}
	sort.Slice(lists, func(i, j int) bool {
		if !lists[i].CreatedAt.Equal(lists[j].CreatedAt) {
			return lists[i].CreatedAt.Before(lists[j].CreatedAt)
		}
		return lists[i].ID < lists[j].ID
	})
	return lists, nil
}

func (s *Store) SaveWordList(ctx context.Context, list *vocabulary.WordList) error {
	return s.put(ctx, wordListPath, list.ID, list)
}

func (s *Store) DeleteWordList(ctx context.Context, id string) error {
	var exists json.RawMessage
	found, err := s.get(ctx, wordListPath, id, map[string]string{"shallow": "true"}, &exists)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: word list %s", store.ErrNotFound, id)
	}

	res, err := s.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete(wordListPath)
	return checkResponse("Delete", id, res, err)
}

func (s *Store) LoadUserStats(ctx context.Context, userID string) (*progress.UserStats, error) {
	var stats progress.UserStats
	found, err := s.get(ctx, userStatsPath, userID, nil, &stats)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: user stats %s", store.ErrNotFound, userID)
	}
	normalizeUserStats(&stats, userID)
	return &stats, nil
}

func (s *Store) SaveUserStats(ctx context.Context, stats *progress.UserStats) error {
	return s.put(ctx, userStatsPath, stats.UserID, stats)
}

// get decodes the document at path into v. It returns false when the
// database holds null there.
func (s *Store) get(ctx context.Context, path, id string, query map[string]string, v interface{}) (bool, error) {
	req := s.httpClient.R().SetContext(ctx).SetQueryParams(query)
	if id != "" {
		req.SetPathParam("id", id)
	} else if path != wordListsPath {
		return false, nil
	}

	res, err := req.Get(path)
	if err := checkResponse("Get", path, res, err); err != nil {
		return false, err
	}

	body := bytes.TrimSpace(res.Body())
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return false, fmt.Errorf("%w: json.Unmarshal(%s) > %w", store.ErrStore, path, err)
	}
	return true, nil
}

func (s *Store) put(ctx context.Context, path, id string, v interface{}) error {
	if id == "" {
		return fmt.Errorf("%w: empty id for %s", store.ErrStore, path)
	}
	res, err := s.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(v).
		Put(path)
	return checkResponse("Put", id, res, err)
}

func checkResponse(method, target string, res *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: client.R().%s(%s) > %w", store.ErrStore, method, target, err)
	}
	if res.StatusCode() < http.StatusOK || res.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s %s status code: %d, body: %s", store.ErrStore, method, target, res.StatusCode(), string(res.Body()))
	}
	return nil
}

// The database drops empty arrays, so they come back as null.
func normalizeWordList(list *vocabulary.WordList) {
	if list.Words == nil {
		list.Words = []vocabulary.Word{}
	}
	list.Recount()
}

func normalizeUserStats(stats *progress.UserStats, userID string) {
	if stats.UserID == "" {
		stats.UserID = userID
	}
	if stats.QuizResults == nil {
		stats.QuizResults = []progress.QuizResult{}
	}
	for i := range stats.QuizResults {
		if stats.QuizResults[i].WrongAnswers == nil {
			stats.QuizResults[i].WrongAnswers = []string{}
		}
	}
	if stats.LearningSessions == nil {
		stats.LearningSessions = []progress.LearningSession{}
	}
	if stats.Achievements == nil {
		stats.Achievements = []progress.Achievement{}
	}
}
