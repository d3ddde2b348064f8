package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mpcontainers/config"
)

func TestRunWritesLogDir(t *testing.T) {
	saved := *config.Properties
	defer func() {
		*config.Properties = saved
	}()
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(input, []byte("hello, world.\n"), 0644))
	config.Properties.LogDir = filepath.Join(dir, "logs")
	config.Properties.PastChars = 2
	config.Properties.OutputLength = 10

	require.NoError(t, run([]string{input}))
	matches, err := filepath.Glob(filepath.Join(dir, "logs", "markov-*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	require.Contains(t, string(data), "windows")
}

func TestRunRejectsTinyLoadFactor(t *testing.T) {
	saved := *config.Properties
	defer func() {
		*config.Properties = saved
	}()
	config.Properties.LoadFactor = 1e-10
	require.Error(t, run([]string{"unused"}))
}
