package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger writes to a rotating file because the dashboard owns stdout.
// An empty path discards everything.
func newLogger(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return discardLogger(), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
	}
	return log.New(w, "pexlite: ", log.Ltime|log.Lshortfile), w, nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
