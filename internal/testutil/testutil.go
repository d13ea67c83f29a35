// Package testutil provides shared test helpers for config files and word list fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iremert/wordpecker/internal/auth"
	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/store/yamlstore"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

const (
	TestUserID    = "test-user"
	TestJWTSecret = "test-secret"
)

// FixtureTime is the creation time of every fixture.
var FixtureTime = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

// SetupTestConfig writes a config file that uses a YAML store under tmpDir
// and signs in as TestUserID. Returns the path to the config file. The auth
// section comes last so helpers can append to it.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"data", "reports"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`engine:
  timezone: UTC
store:
  driver: yaml
  directory: %s
  retry:
    attempts: 1
    delay_ms: 0
outputs:
  report_directory: %s
auth:
  user_id: %s
`,
		StoreDirectory(tmpDir),
		filepath.Join(tmpDir, "reports"),
		TestUserID,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithToken creates a config file that signs in with a token
// issued for userID instead of a static user id.
func SetupTestConfigWithToken(t *testing.T, tmpDir, userID string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	token, err := auth.IssueToken(userID, TestJWTSecret, time.Now(), time.Hour)
	require.NoError(t, err)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte(fmt.Sprintf("  token: %s\n  jwt_secret: %s\n", token, TestJWTSecret))...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// StoreDirectory returns the YAML store directory used by SetupTestConfig.
func StoreDirectory(tmpDir string) string {
	return filepath.Join(tmpDir, "data")
}

// WordListOption configures optional fields of a word list fixture.
type WordListOption func(*vocabulary.WordList)

// WithLanguages sets the source and target languages.
func WithLanguages(source, target string) WordListOption {
	return func(list *vocabulary.WordList) {
		list.SourceLanguage = source
		list.TargetLanguage = target
	}
}

// WithMasteredWord marks the word with the given source word as mastered.
func WithMasteredWord(source string) WordListOption {
	return func(list *vocabulary.WordList) {
		for i := range list.Words {
			if list.Words[i].SourceWord == source {
				list.Words[i].Mastered = true
				list.Words[i].ReviewCount = progress.DefaultMasteryThreshold
			}
		}
	}
}

// NewWordList builds a list from source and target word pairs. Word ids are
// "<listID>-w<n>" starting at 1.
func NewWordList(listID, userID string, pairs []string, opts ...WordListOption) vocabulary.WordList {
	list := vocabulary.NewWordList(userID, vocabulary.NewListParams{
		Title:          listID,
		SourceLanguage: "es",
		TargetLanguage: "en",
	}, FixtureTime)
	list.ID = listID

	for i := 0; i+1 < len(pairs); i += 2 {
		word := vocabulary.NewWord(listID, pairs[i], pairs[i+1])
		word.ID = fmt.Sprintf("%s-w%d", listID, i/2+1)
		list.Words = append(list.Words, word)
	}
	for _, opt := range opts {
		opt(&list)
	}
	list.Recount()
	return list
}

// CreateWordList saves a word list fixture into a YAML store directory.
func CreateWordList(t *testing.T, storeDir, listID, userID string, pairs []string, opts ...WordListOption) vocabulary.WordList {
	t.Helper()

	list := NewWordList(listID, userID, pairs, opts...)
	require.NoError(t, yamlstore.New(storeDir).SaveWordList(context.Background(), &list))
	return list
}
