package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "state", "history.db"), DetermineSQLiteDriver(false))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryRoundTrip(t *testing.T) {
	h := openTestHistory(t)
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	id, err := h.Record(RunRecord{
		Started:  started,
		Ended:    started.Add(90 * time.Second),
		Provider: "mock",
		Reason:   "quit",
		Stats:    Stats{Resizes: 2, Timeouts: 80, Inputs: 14, Interrupts: 3, Refreshes: 45, LastErrno: 0},
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	runs, err := h.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	r := runs[0]
	assert.Equal(t, id, r.ID)
	assert.True(t, r.Started.Equal(started))
	assert.Equal(t, 90*time.Second, r.Ended.Sub(r.Started))
	assert.Equal(t, "quit", r.Reason)
	assert.Equal(t, Stats{Resizes: 2, Timeouts: 80, Inputs: 14, Interrupts: 3, Refreshes: 45}, r.Stats)
}

func TestHistoryRecentNewestFirst(t *testing.T) {
	h := openTestHistory(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, reason := range []string{"quit", "wait failed", "quit"} {
		// whole seconds and fractions mixed so ordering can't rely on equal widths
		started := base.Add(time.Duration(i)*time.Second + time.Duration(i%2)*time.Millisecond)
		_, err := h.Record(RunRecord{Started: started, Ended: started, Provider: "proc", Reason: reason})
		require.NoError(t, err)
	}

	runs, err := h.Recent(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].Started.After(runs[1].Started))
	assert.Equal(t, "wait failed", runs[1].Reason)
}

func TestHistoryKeepsGivenID(t *testing.T) {
	h := openTestHistory(t)
	id, err := h.Record(RunRecord{ID: "fixed", Started: time.Now(), Ended: time.Now(), Provider: "mock", Reason: "quit"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)

	_, err = h.Record(RunRecord{ID: "fixed", Started: time.Now(), Ended: time.Now(), Provider: "mock", Reason: "quit"})
	assert.Error(t, err, "ids are unique")
}

func TestDetermineSQLiteDriver(t *testing.T) {
	assert.Equal(t, "sqlite", DetermineSQLiteDriver(false).DriverName())

	cgo := DetermineSQLiteDriver(true)
	if cgoSQLite {
		assert.Equal(t, "sqlite3", cgo.DriverName())
		assert.Contains(t, cgo.DisplayName(), "CGO")
	} else {
		assert.Equal(t, "sqlite", cgo.DriverName())
	}
}
