// Package tasks produces point-in-time listings of OS tasks (one row per
// thread) for the dashboard.
package tasks

import (
	"time"
	"unicode/utf8"
)

// MaxTasks caps a snapshot no matter what the provider finds.
const MaxTasks = 1000

// MaxCommandLen is the most bytes of a command name a Record keeps.
const MaxCommandLen = 31

// State is the scheduler state of a task.
type State int

const (
	Unknown State = iota
	Running
	Sleeping
	DiskWait
	Zombie
	Stopped
)

// ParseState maps a /proc state letter to a State.
func ParseState(c byte) State {
	switch c {
	case 'R':
		return Running
	case 'S', 'I':
		return Sleeping
	case 'D':
		return DiskWait
	case 'Z':
		return Zombie
	case 'T', 't':
		return Stopped
	}
	return Unknown
}

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Sleeping:
		return "Sleeping"
	case DiskWait:
		return "Disk sleep"
	case Zombie:
		return "Zombie"
	case Stopped:
		return "Stopped"
	}
	return "Unknown"
}

// Code is the one letter ps(1) would show.
func (s State) Code() byte {
	switch s {
	case Running:
		return 'R'
	case Sleeping:
		return 'S'
	case DiskWait:
		return 'D'
	case Zombie:
		return 'Z'
	case Stopped:
		return 'T'
	}
	return '?'
}

// Record is one task. Records are never modified after a provider returns them.
type Record struct {
	PID     int
	TID     int
	Command string
	State   State
}

// NewRecord builds a Record, cutting the command down to MaxCommandLen bytes
// without splitting a rune.
func NewRecord(pid, tid int, command string, state State) Record {
	return Record{PID: pid, TID: tid, Command: truncate(command, MaxCommandLen), State: state}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

// Snapshot is one enumeration, in the provider's order.
type Snapshot struct {
	Records []Record
	Taken   time.Time
}

func (s Snapshot) Len() int {
	return len(s.Records)
}

// Counts tallies records by state.
func (s Snapshot) Counts() map[State]int {
	counts := make(map[State]int)
	for _, r := range s.Records {
		counts[r.State]++
	}
	return counts
}

// Provider produces snapshots. Collect must return quickly; it runs on the
// event loop between redraws. max bounds the number of records returned.
type Provider interface {
	Collect(max int) (Snapshot, error)
}
