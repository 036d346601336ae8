package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pexlite.log")
	logger, closer, err := newLogger(path)
	require.NoError(t, err)
	logger.Printf("viewport now %dx%d", 24, 80)
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "pexlite: ")
	assert.Contains(t, string(b), "viewport now 24x80")
	assert.Contains(t, string(b), "log_test.go")
}

func TestNewLoggerEmptyPathDiscards(t *testing.T) {
	logger, closer, err := newLogger("")
	require.NoError(t, err)
	logger.Printf("nowhere")
	assert.NoError(t, closer.Close())
}
