package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iremert/wordpecker/internal/auth"
	"github.com/iremert/wordpecker/internal/store/yamlstore"
	"github.com/iremert/wordpecker/internal/testutil"
)

func TestCommands_InvalidConfig(t *testing.T) {
	cfgPath := setupBrokenConfigFile(t)

	tests := [][]string{
		{"list", "ls"},
		{"list", "create", "Spanish"},
		{"word", "add", "list-1", "casa", "house"},
		{"learn", "list-1"},
		{"stats", "show"},
		{"migrate", "up"},
		{"auth", "token", "user-1"},
	}
	for _, args := range tests {
		t.Run(args[0]+" "+args[1], func(t *testing.T) {
			_, err := execute(t, cfgPath, "", args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "configuration")
		})
	}
}

func TestListCommands(t *testing.T) {
	setClock(t)
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)

	out, err := execute(t, cfgPath, "", "list", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No word lists yet.")

	out, err = execute(t, cfgPath, "", "list", "create", "Spanish basics", "--source-language", "es", "--target-language", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "Created list Spanish basics")
	assert.Contains(t, out, "Achievement unlocked: List Maker")

	testutil.CreateWordList(t, testutil.StoreDirectory(tmpDir), "list-1", testutil.TestUserID, []string{"casa", "house"})

	out, err = execute(t, cfgPath, "", "list", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Spanish basics")
	assert.Contains(t, out, "list-1  list-1  0/1 mastered")

	out, err = execute(t, cfgPath, "", "word", "add", "list-1", "perro", "dog", "--difficulty", "hard", "--context", "El perro duerme.")
	require.NoError(t, err)
	assert.Contains(t, out, "Added perro to list-1 (2 words)")

	out, err = execute(t, cfgPath, "", "list", "show", "list-1")
	require.NoError(t, err)
	assert.Contains(t, out, "list-1-w1  casa = house  [easy, reviewed 0 times]")
	assert.Contains(t, out, "perro = dog  [hard, reviewed 0 times]")

	out, err = execute(t, cfgPath, "", "word", "remove", "list-1", "list-1-w1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed list-1-w1 from list-1 (1 words)")

	_, err = execute(t, cfgPath, "", "word", "reset", "list-1", "list-1-w1")
	require.Error(t, err, "the word was removed")

	out, err = execute(t, cfgPath, "", "list", "delete", "list-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted list list-1")

	_, err = execute(t, cfgPath, "", "list", "show", "list-1")
	assert.Error(t, err)
}

func TestListImportCommand(t *testing.T) {
	setClock(t)
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	testutil.CreateWordList(t, testutil.StoreDirectory(tmpDir), "list-1", testutil.TestUserID, []string{"casa", "house"})

	csvPath := filepath.Join(tmpDir, "words.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("source,target\ncasa,house\nperro,dog\n,missing\n"), 0644))

	out, err := execute(t, cfgPath, "", "list", "import", "list-1", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped row 4: missing source or target word")
	assert.Contains(t, out, "Skipped duplicate casa")
	assert.Contains(t, out, "Imported 1 words into list-1")
}

func TestLearnCommand(t *testing.T) {
	setClock(t)
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	testutil.CreateWordList(t, testutil.StoreDirectory(tmpDir), "list-1", testutil.TestUserID, []string{"casa", "house", "perro", "dog"})

	out, err := execute(t, cfgPath, "House\ncat\n", "learn", "list-1", "--shuffle=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Starting learn of list-1 with 2 words")
	assert.Contains(t, out, "1 of 2 correct")

	stats, err := yamlstore.New(testutil.StoreDirectory(tmpDir)).LoadUserStats(context.Background(), testutil.TestUserID)
	require.NoError(t, err)
	require.Len(t, stats.LearningSessions, 1)
	assert.Equal(t, 2, stats.LearningSessions[0].WordsReviewed)
	assert.Equal(t, 1, stats.StreakDays)
	assert.Equal(t, "2025-01-10", stats.LastStreak.String())

	list, err := yamlstore.New(testutil.StoreDirectory(tmpDir)).LoadWordList(context.Background(), "list-1")
	require.NoError(t, err)
	require.Len(t, list.Words, 2)
	assert.Equal(t, 1, list.Words[0].ReviewCount)
	assert.True(t, list.Words[0].Reviews[0].Correct)
	assert.Equal(t, 1, list.Words[1].ReviewCount)
	assert.False(t, list.Words[1].Reviews[0].Correct)
}

func TestQuizCommand_Results(t *testing.T) {
	setClock(t)
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	testutil.CreateWordList(t, testutil.StoreDirectory(tmpDir), "list-1", testutil.TestUserID, []string{"casa", "house", "perro", "dog"})

	resultsPath := filepath.Join(tmpDir, "results.yml")
	require.NoError(t, os.WriteFile(resultsPath, []byte(`time_spent: 30
outcomes:
  - word_id: list-1-w1
    correct: true
    response_time_ms: 1200
  - word_id: list-1-w2
    correct: false
    response_time_ms: 3400
`), 0644))

	out, err := execute(t, cfgPath, "", "quiz", "list-1", "--results", resultsPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Quiz saved: 1 of 2 correct (50%)")
	assert.Contains(t, out, "Achievement unlocked: Quiz Taker")

	_, err = execute(t, cfgPath, "", "quiz", "list-1", "--results", filepath.Join(tmpDir, "missing.yml"))
	assert.Error(t, err)
}

func TestStatsCommands(t *testing.T) {
	setClock(t)
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	testutil.CreateWordList(t, testutil.StoreDirectory(tmpDir), "list-1", testutil.TestUserID, []string{"casa", "house"})

	_, err := execute(t, cfgPath, "house\n", "learn", "list-1")
	require.NoError(t, err)

	out, err := execute(t, cfgPath, "", "stats", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Streak: 1 days (last 2025-01-10)")
	assert.Contains(t, out, "Learning sessions: 1")
	assert.Contains(t, out, "[x] First Steps")

	out, err = execute(t, cfgPath, "", "stats", "report", "--year", "2025", "--month", "1")
	require.NoError(t, err)
	reportPath := filepath.Join(tmpDir, "reports", "progress-test-user-2025-01.md")
	assert.Contains(t, out, reportPath)
	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "list-1")

	_, err = execute(t, cfgPath, "", "stats", "report", "--month", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--month needs --year")
}

func TestMigrateCommand(t *testing.T) {
	t.Run("yaml store has no schema", func(t *testing.T) {
		cfgPath := testutil.SetupTestConfig(t, t.TempDir())
		_, err := execute(t, cfgPath, "", "migrate", "up")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no database schema")
	})

	t.Run("sqlite", func(t *testing.T) {
		tmpDir := t.TempDir()
		cfgPath := filepath.Join(tmpDir, "config.yml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("store:\n  driver: sqlite3\n  database:\n    path: "+filepath.Join(tmpDir, "wordpecker.db")+"\n"), 0644))

		out, err := execute(t, cfgPath, "", "migrate", "up")
		require.NoError(t, err)
		assert.Contains(t, out, "Migrations applied")

		out, err = execute(t, cfgPath, "", "migrate", "status")
		require.NoError(t, err)
		assert.NotContains(t, out, "Schema version: 0")
	})
}

func TestAuthTokenCommand(t *testing.T) {
	setClock(t)
	tmpDir := t.TempDir()

	_, err := execute(t, testutil.SetupTestConfig(t, tmpDir), "", "auth", "token", "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")

	cfgPath := testutil.SetupTestConfigWithToken(t, tmpDir, "token-user")
	out, err := execute(t, cfgPath, "", "auth", "token", "other-user", "--ttl", "876000h")
	require.NoError(t, err)

	token := out[:len(out)-1]
	userID, err := auth.NewTokenProvider(token, testutil.TestJWTSecret, nil).CurrentUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "other-user", userID)

	out, err = execute(t, cfgPath, "", "list", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No word lists yet.")
}
