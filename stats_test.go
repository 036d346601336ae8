package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	s := Stats{Resizes: 1, Notifications: 3, Timeouts: 12, Inputs: 4, Interrupts: 2, Refreshes: 6}
	out := s.Summary()
	assert.Contains(t, out, "resizes handled:   1 (3 notifications)")
	assert.Contains(t, out, "timeouts elapsed:  12")
	assert.Contains(t, out, "inputs processed:  4")
	assert.Contains(t, out, "interrupted waits: 2")
	assert.Contains(t, out, "snapshots taken:   6")
	assert.NotContains(t, out, "last error code")

	s.LastErrno = 9
	assert.Contains(t, s.Summary(), "last error code:   9")
}
