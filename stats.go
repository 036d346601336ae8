package main

import (
	"fmt"
	"strings"
)

// Stats counts what the event loop did. Diagnostic only; nothing reads them
// to make decisions.
type Stats struct {
	Resizes    uint64
	Timeouts   uint64
	Inputs     uint64
	Interrupts uint64
	Refreshes  uint64
	LastErrno  int
	// Notifications is the raw resize signal count, before coalescing.
	Notifications uint64
}

// Summary is printed to the shell after the terminal is restored.
func (s Stats) Summary() string {
	var b strings.Builder
	b.WriteString("pexlite session summary\n")
	fmt.Fprintf(&b, "  resizes handled:   %d (%d notifications)\n", s.Resizes, s.Notifications)
	fmt.Fprintf(&b, "  timeouts elapsed:  %d\n", s.Timeouts)
	fmt.Fprintf(&b, "  inputs processed:  %d\n", s.Inputs)
	fmt.Fprintf(&b, "  interrupted waits: %d\n", s.Interrupts)
	fmt.Fprintf(&b, "  snapshots taken:   %d\n", s.Refreshes)
	if s.LastErrno != 0 {
		fmt.Fprintf(&b, "  last error code:   %d\n", s.LastErrno)
	}
	return b.String()
}
