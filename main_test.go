package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := writeFile(t, "config.toml", "timeout = \"5s\"\nprovider = \"proc\"\nmax_tasks = 10\n")

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", path,
		"--provider", "mock",
		"--refresh", "750ms",
		"--debug",
		"--log-file", "",
	}))
	cfg, err := loadCommandConfig(cmd, path)
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.Provider, "flag wins")
	assert.Equal(t, 5*time.Second, cfg.Timeout, "file value kept")
	assert.Equal(t, 750*time.Millisecond, cfg.Refresh)
	assert.Equal(t, 10, cfg.MaxTasks)
	assert.True(t, cfg.Debug)
	assert.Empty(t, cfg.LogFile)
}

func TestInvalidFlagValueIsRejected(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--timeout", "0s", "--provider", "mock"}))
	_, err := loadCommandConfig(cmd, writeFile(t, "empty.toml", ""))
	assert.ErrorContains(t, err, "timeout")
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "pexlite "+version))
}

func TestHistoryCommand(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "history.db")
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("provider = \"mock\"\n"), 0o644))

	h, err := OpenHistory(db, DetermineSQLiteDriver(false))
	require.NoError(t, err)
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_, err = h.Record(RunRecord{
		ID: "0badf00d-0000-4000-8000-000000000000", Started: started, Ended: started.Add(time.Minute),
		Provider: "mock", Reason: "quit", Stats: Stats{Resizes: 4, Inputs: 17},
	})
	require.NoError(t, err)
	require.NoError(t, h.Close())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"history", "--config", cfgPath, "--history-db", db, "--limit", "5"})
	require.NoError(t, cmd.Execute())

	got := out.String()
	assert.Contains(t, got, "0badf00d")
	assert.NotContains(t, got, "0badf00d-")
	assert.Contains(t, got, "1m0s")
	assert.Contains(t, got, "quit")
	assert.Contains(t, got, "17")
}

func TestHistoryTableEmpty(t *testing.T) {
	assert.Equal(t, "no runs recorded", historyTable(nil))
}

func TestRootRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
