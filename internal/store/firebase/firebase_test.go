package firebase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/store"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

// fakeDatabase serves documents keyed by request path, e.g. "/wordLists/list-1.json".
type fakeDatabase struct {
	mu        sync.Mutex
	documents map[string]json.RawMessage
	requests  []*http.Request
}

func newFakeDatabase(t *testing.T) (*fakeDatabase, *httptest.Server) {
	t.Helper()
	db := &fakeDatabase{documents: make(map[string]json.RawMessage)}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		db.mu.Lock()
		defer db.mu.Unlock()
		db.requests = append(db.requests, r)

		if r.URL.Query().Get("auth") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Permission denied"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			if r.URL.Path == "/wordLists.json" {
				db.query(t, w, r)
				return
			}
			doc, ok := db.documents[r.URL.Path]
			if !ok {
				_, _ = w.Write([]byte("null"))
				return
			}
			if r.URL.Query().Get("shallow") == "true" {
				_, _ = w.Write([]byte("true"))
				return
			}
			_, _ = w.Write(doc)
		case http.MethodPut:
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			db.documents[r.URL.Path] = body
			_, _ = w.Write(body)
		case http.MethodDelete:
			delete(db.documents, r.URL.Path)
			_, _ = w.Write([]byte("null"))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(server.Close)
	return db, server
}

func (db *fakeDatabase) query(t *testing.T, w http.ResponseWriter, r *http.Request) {
	assert.Equal(t, `"userId"`, r.URL.Query().Get("orderBy"))
	var userID string
	require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("equalTo")), &userID))

	result := make(map[string]json.RawMessage)
	for path, doc := range db.documents {
		if !strings.HasPrefix(path, "/wordLists/") {
			continue
		}
		var owner struct {
			UserID string `json:"userId"`
		}
		require.NoError(t, json.Unmarshal(doc, &owner))
		if owner.UserID == userID {
			result[strings.TrimSuffix(strings.TrimPrefix(path, "/wordLists/"), ".json")] = doc
		}
	}
	require.NoError(t, json.NewEncoder(w).Encode(result))
}

func (db *fakeDatabase) has(path string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.documents[path]
	return ok
}

func (db *fakeDatabase) set(path, doc string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.documents[path] = json.RawMessage(doc)
}

func newTestStore(t *testing.T) (*Store, *fakeDatabase) {
	t.Helper()
	db, server := newFakeDatabase(t)
	return New(server.URL, "secret", 5*time.Second), db
}

func testList(id, userID string, createdAt time.Time) *vocabulary.WordList {
	list := vocabulary.WordList{
		ID:             id,
		UserID:         userID,
		Title:          "Spanish " + id,
		SourceLanguage: "es",
		TargetLanguage: "en",
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
		Words: []vocabulary.Word{
			{ID: "w1", ListID: id, SourceWord: "casa", TargetWord: "house", Difficulty: vocabulary.DifficultyEasy, Mastered: true, ReviewCount: 5},
		},
	}
	list.Recount()
	return &list
}

func TestStore_WordLists(t *testing.T) {
	ctx := context.Background()
	s, db := newTestStore(t)
	created := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	_, err := s.LoadWordList(ctx, "list-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	list := testList("list-1", "user-1", created)
	require.NoError(t, s.SaveWordList(ctx, list))
	require.NoError(t, s.SaveWordList(ctx, testList("list-0", "user-1", created.Add(time.Hour))))
	require.NoError(t, s.SaveWordList(ctx, testList("list-2", "user-2", created)))
	assert.True(t, db.has("/wordLists/list-1.json"))

	got, err := s.LoadWordList(ctx, "list-1")
	require.NoError(t, err)
	assert.Equal(t, list, got)

	lists, err := s.ListWordLists(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "list-1", lists[0].ID)
	assert.Equal(t, "list-0", lists[1].ID)

	require.NoError(t, s.DeleteWordList(ctx, "list-1"))
	assert.ErrorIs(t, s.DeleteWordList(ctx, "list-1"), store.ErrNotFound)
	_, err = s.LoadWordList(ctx, "list-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_EmptyListComesBackWithWords(t *testing.T) {
	ctx := context.Background()
	s, db := newTestStore(t)
	db.set("/wordLists/list-1.json", `{"id":"list-1","userId":"user-1","title":"Empty"}`)

	got, err := s.LoadWordList(ctx, "list-1")
	require.NoError(t, err)
	assert.NotNil(t, got.Words)
	assert.Equal(t, 0, got.TotalWords)
}

func TestStore_UserStats(t *testing.T) {
	ctx := context.Background()
	s, db := newTestStore(t)

	_, err := s.LoadUserStats(ctx, "user-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	lastStreak := vocabulary.MustParseDate("2024-01-02")
	stats := progress.NewUserStats("user-1")
	stats.StreakDays = 2
	stats.LastStreak = &lastStreak
	stats.QuizResults = append(stats.QuizResults, progress.QuizResult{
		ID: "q1", ListID: "list-1", Date: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		Score: 0.5, CorrectAnswers: 1, TotalQuestions: 2, WrongAnswers: []string{"w2"},
	})
	require.NoError(t, s.SaveUserStats(ctx, &stats))
	assert.True(t, db.has("/userStats/user-1.json"))

	got, err := s.LoadUserStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, &stats, got)
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected token", func(t *testing.T) {
		_, server := newFakeDatabase(t)
		s := New(server.URL, "wrong", time.Second)

		_, err := s.LoadWordList(ctx, "list-1")
		assert.ErrorIs(t, err, store.ErrStore)
		assert.Contains(t, err.Error(), "status code: 401")
	})

	t.Run("malformed document", func(t *testing.T) {
		s, db := newTestStore(t)
		db.set("/userStats/user-1.json", `{"streakDays":"many"}`)

		_, err := s.LoadUserStats(ctx, "user-1")
		assert.ErrorIs(t, err, store.ErrStore)
	})

	t.Run("unreachable server", func(t *testing.T) {
		_, server := newFakeDatabase(t)
		s := New(server.URL, "secret", time.Second)
		server.Close()

		err := s.SaveWordList(ctx, testList("list-1", "user-1", time.Now()))
		assert.ErrorIs(t, err, store.ErrStore)
	})

	t.Run("empty id", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, err := s.LoadWordList(ctx, "")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
