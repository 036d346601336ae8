package tasks

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		in   byte
		want State
	}{
		{'R', Running},
		{'S', Sleeping},
		{'I', Sleeping},
		{'D', DiskWait},
		{'Z', Zombie},
		{'T', Stopped},
		{'t', Stopped},
		{'X', Unknown},
		{'?', Unknown},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseState(tc.in), "state %q", tc.in)
	}
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "Disk sleep", DiskWait.String())
	assert.Equal(t, "Unknown", State(42).String())
	assert.Equal(t, byte('Z'), Zombie.Code())
	assert.Equal(t, byte('?'), Unknown.Code())
}

func TestNewRecordTruncatesCommand(t *testing.T) {
	r := NewRecord(1, 1, strings.Repeat("x", 40), Running)
	assert.Len(t, r.Command, MaxCommandLen)

	// 30 ASCII bytes then a 2-byte rune straddling the limit
	r = NewRecord(1, 1, strings.Repeat("a", 30)+"éé", Running)
	assert.Equal(t, strings.Repeat("a", 30), r.Command)
}

func TestMockCollect(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	snap, err := Mock{Now: func() time.Time { return fixed }}.Collect(MaxTasks)
	require.NoError(t, err)

	// 50 processes with 1,2,3,4,1,2,... threads
	assert.Equal(t, 123, snap.Len())
	assert.Equal(t, fixed, snap.Taken)

	first := snap.Records[0]
	assert.Equal(t, Record{PID: 100, TID: 100, Command: "systemd", State: Running}, first)
	assert.Equal(t, Record{PID: 110, TID: 111, Command: "kthreadd", State: Sleeping}, snap.Records[2])

	counts := snap.Counts()
	assert.Equal(t, snap.Len(), counts[Running]+counts[Sleeping]+counts[DiskWait])
}

func TestMockCollectHonoursMax(t *testing.T) {
	snap, err := Mock{}.Collect(7)
	require.NoError(t, err)
	assert.Equal(t, 7, snap.Len())

	snap, err = Mock{}.Collect(0)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
}
