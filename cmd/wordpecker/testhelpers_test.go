package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

// setClock fixes the engine clock for the duration of a test.
func setClock(t *testing.T) {
	t.Helper()
	oldClock := clock
	clock = func() time.Time { return testNow }
	t.Cleanup(func() { clock = oldClock })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// execute runs the root command with the given config file and stdin.
func execute(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	oldConfigFile := configFile
	t.Cleanup(func() { configFile = oldConfigFile })

	var stdout bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	err := cmd.Execute()
	return stdout.String(), err
}
