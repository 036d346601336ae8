// Package rawmode switches a tty in and out of raw mode and reports its size.
package rawmode

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when raw mode is requested on something that is
// not a tty (a pipe, a file, /dev/null under a test runner).
var ErrNotTerminal = errors.New("not a terminal")

// State is the terminal configuration captured before entering raw mode.
type State struct {
	fd    int
	saved *term.State
}

// Enable puts stdin in raw mode and returns the original configuration.
func Enable() (*State, error) {
	return EnableFile(os.Stdin)
}

// EnableFile puts f in raw mode: no echo, no line buffering, no signal keys.
// Reads return as soon as one byte is available.
func EnableFile(f *os.File) (*State, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	return &State{fd: fd, saved: saved}, nil
}

// Restore puts the terminal back the way Enable found it. A nil State is a no-op
// so callers can defer Restore right after a failed Enable.
func Restore(s *State) error {
	if s == nil || s.saved == nil {
		return nil
	}
	if err := term.Restore(s.fd, s.saved); err != nil {
		return fmt.Errorf("disable raw mode: %w", err)
	}
	s.saved = nil
	return nil
}
