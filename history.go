package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// RunRecord is one dashboard session as stored in the history database.
type RunRecord struct {
	ID       string
	Started  time.Time
	Ended    time.Time
	Provider string
	Reason   string
	Stats    Stats
}

// History stores finished runs in sqlite.
type History struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started TEXT NOT NULL,
	ended TEXT NOT NULL,
	provider TEXT NOT NULL,
	reason TEXT NOT NULL,
	resizes INTEGER NOT NULL DEFAULT 0,
	timeouts INTEGER NOT NULL DEFAULT 0,
	inputs INTEGER NOT NULL DEFAULT 0,
	interrupts INTEGER NOT NULL DEFAULT 0,
	refreshes INTEGER NOT NULL DEFAULT 0,
	last_errno INTEGER NOT NULL DEFAULT 0
);`

// historyTime has a fixed width so the text column sorts chronologically.
const historyTime = "2006-01-02T15:04:05.000000000Z07:00"

func OpenHistory(path string, driver *SQLiteConfig) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history dir: %w", err)
	}
	db, err := driver.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history with %s: %w", driver.DisplayName(), err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &History{db: db}, nil
}

func newRunID() string {
	return uuid.New().String()
}

// Record inserts r, filling in an id when it has none.
func (h *History) Record(r RunRecord) (string, error) {
	if r.ID == "" {
		r.ID = newRunID()
	}
	_, err := h.db.Exec("INSERT INTO runs (id, started, ended, provider, reason, resizes, timeouts, inputs, interrupts, refreshes, last_errno) "+
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);",
		r.ID, r.Started.UTC().Format(historyTime), r.Ended.UTC().Format(historyTime), r.Provider, r.Reason,
		int64(r.Stats.Resizes), int64(r.Stats.Timeouts), int64(r.Stats.Inputs), int64(r.Stats.Interrupts),
		int64(r.Stats.Refreshes), r.Stats.LastErrno)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return r.ID, nil
}

// Recent returns up to limit runs, newest first.
func (h *History) Recent(limit int) ([]RunRecord, error) {
	rows, err := h.db.Query("SELECT id, started, ended, provider, reason, resizes, timeouts, inputs, interrupts, refreshes, last_errno "+
		"FROM runs ORDER BY started DESC LIMIT ?;", limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var started, ended string
		var resizes, timeouts, inputs, interrupts, refreshes int64
		if err := rows.Scan(&r.ID, &started, &ended, &r.Provider, &r.Reason,
			&resizes, &timeouts, &inputs, &interrupts, &refreshes, &r.Stats.LastErrno); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Started, _ = time.Parse(historyTime, started)
		r.Ended, _ = time.Parse(historyTime, ended)
		r.Stats.Resizes = uint64(resizes)
		r.Stats.Timeouts = uint64(timeouts)
		r.Stats.Inputs = uint64(inputs)
		r.Stats.Interrupts = uint64(interrupts)
		r.Stats.Refreshes = uint64(refreshes)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (h *History) Close() error {
	return h.db.Close()
}
