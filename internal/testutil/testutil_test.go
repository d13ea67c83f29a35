package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iremert/wordpecker/internal/auth"
	"github.com/iremert/wordpecker/internal/config"
	"github.com/iremert/wordpecker/internal/store/yamlstore"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)
	assert.Equal(t, filepath.Join(tmpDir, "config.yml"), got)

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Store.Driver)
	assert.Equal(t, StoreDirectory(tmpDir), cfg.Store.Directory)
	assert.Equal(t, TestUserID, cfg.Auth.UserID)
	assert.Equal(t, filepath.Join(tmpDir, "reports"), cfg.Outputs.ReportDirectory)
	assert.DirExists(t, StoreDirectory(tmpDir))
}

func TestSetupTestConfigWithToken(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfigWithToken(t, tmpDir, "token-user")

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "jwt_secret: "+TestJWTSecret)

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	userID, err := auth.NewTokenProvider(cfg.Auth.Token, cfg.Auth.JWTSecret, nil).CurrentUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-user", userID)
}

func TestNewWordList(t *testing.T) {
	tests := []struct {
		name         string
		pairs        []string
		opts         []WordListOption
		wantWords    int
		wantLearned  int
		wantLanguage string
	}{
		{
			name:         "pairs",
			pairs:        []string{"casa", "house", "perro", "dog"},
			wantWords:    2,
			wantLanguage: "es",
		},
		{
			name:         "odd trailing word is ignored",
			pairs:        []string{"casa", "house", "gato"},
			wantWords:    1,
			wantLanguage: "es",
		},
		{
			name:         "options",
			pairs:        []string{"Haus", "house", "Hund", "dog"},
			opts:         []WordListOption{WithLanguages("de", "en"), WithMasteredWord("Hund")},
			wantWords:    2,
			wantLearned:  1,
			wantLanguage: "de",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewWordList("list-1", TestUserID, tt.pairs, tt.opts...)

			assert.Equal(t, "list-1", got.ID)
			assert.Equal(t, TestUserID, got.UserID)
			assert.Equal(t, FixtureTime, got.CreatedAt)
			assert.Equal(t, tt.wantWords, got.TotalWords)
			assert.Equal(t, tt.wantLearned, got.LearnedWords)
			assert.Equal(t, tt.wantLanguage, got.SourceLanguage)
			require.Len(t, got.Words, tt.wantWords)
			assert.Equal(t, "list-1-w1", got.Words[0].ID)
			assert.Equal(t, "list-1", got.Words[0].ListID)
		})
	}
}

func TestCreateWordList(t *testing.T) {
	storeDir := StoreDirectory(t.TempDir())
	want := CreateWordList(t, storeDir, "list-1", TestUserID, []string{"casa", "house"})

	got, err := yamlstore.New(storeDir).LoadWordList(context.Background(), "list-1")
	require.NoError(t, err)
	assert.Equal(t, want.Words[0].SourceWord, got.Words[0].SourceWord)
	assert.Equal(t, want.TotalWords, got.TotalWords)
}
