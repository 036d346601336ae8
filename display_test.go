package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slzatz/pexlite/screen"
	"github.com/slzatz/pexlite/tasks"
)

func drawn(v View) []string {
	d := newFakeDisplay(v.Rows, v.Cols)
	Draw(d, v)
	return d.current
}

func linesAt(lines []string, row int) []string {
	var out []string
	prefix := fmt.Sprintf("%d,", row)
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			out = append(out, l)
		}
	}
	return out
}

func styled(lines []string, style screen.Style) []string {
	var out []string
	tag := fmt.Sprintf(",%d:", style)
	for _, l := range lines {
		if strings.Contains(l, tag) {
			out = append(out, l)
		}
	}
	return out
}

func TestAvailableRows(t *testing.T) {
	tests := []struct {
		rows  int
		debug bool
		want  int
	}{
		{24, false, 20},
		{24, true, 17},
		{5, false, 1},
		{4, false, 0},
		{3, true, 0},
		{0, false, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, availableRows(tc.rows, tc.debug), "rows=%d debug=%v", tc.rows, tc.debug)
	}
}

func TestDrawHighlightsSelection(t *testing.T) {
	v := View{Snapshot: snapshotOf(1, 2, 3, 4, 5), Selection: Selection{Index: 2}, Rows: 24, Cols: 60}
	lines := drawn(v)

	sel := styled(lines, screen.Selected)
	if assert.Len(t, sel, 1) {
		assert.True(t, strings.HasPrefix(sel[0], "5,0,5:"), sel[0])
		assert.Contains(t, sel[0], "cmd3")
	}
	// everything fits, no position indicator
	assert.NotContains(t, strings.Join(lines, "\n"), "3/5")
}

func TestDrawRowsArePaddedToWidth(t *testing.T) {
	v := View{Snapshot: snapshotOf(1), Rows: 10, Cols: 40}
	row := linesAt(drawn(v), 3)
	if assert.Len(t, row, 1) {
		text := row[0][strings.Index(row[0], ":")+1:]
		assert.Len(t, text, 40)
	}
}

func TestDrawFitsStaleSelection(t *testing.T) {
	// fitted for 20 rows, drawn with the debug panel taking three of them
	v := View{
		Snapshot:  mockSnapshot(t),
		Selection: Selection{Index: 19, Offset: 0},
		Debug:     true,
		Rows:      24,
		Cols:      80,
	}
	lines := drawn(v)

	sel := styled(lines, screen.Selected)
	if assert.Len(t, sel, 1) {
		assert.True(t, strings.HasPrefix(sel[0], "19,0,5:"), sel[0])
	}
	first := linesAt(lines, 3)
	if assert.Len(t, first, 1) {
		assert.Contains(t, first[0], fmt.Sprintf("%7d", v.Snapshot.Records[3].TID))
	}
	assert.Contains(t, strings.Join(lines, "\n"), "20/123")
}

func mockSnapshot(t *testing.T) tasks.Snapshot {
	t.Helper()
	s, err := tasks.Mock{}.Collect(tasks.MaxTasks)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestDrawWithNoRoomForRows(t *testing.T) {
	v := View{Snapshot: snapshotOf(1, 2, 3, 4, 5), Rows: 4, Cols: 40}
	lines := drawn(v)

	assert.Empty(t, styled(lines, screen.Selected))
	assert.Empty(t, linesAt(lines, 4))
	footer := linesAt(lines, 3)
	assert.Contains(t, strings.Join(footer, "\n"), "1/5")
}

func TestDrawTinyViewport(t *testing.T) {
	for _, size := range [][2]int{{0, 0}, {1, 5}, {2, 2}, {3, 80}} {
		v := View{Snapshot: snapshotOf(1, 2, 3), Debug: true, Rows: size[0], Cols: size[1]}
		lines := drawn(v)
		assert.Empty(t, styled(lines, screen.Selected), "%v", size)
		assert.Empty(t, styled(lines, screen.Debug), "%v", size)
	}
}

func TestDrawHeaderCounts(t *testing.T) {
	snap := tasks.Snapshot{Records: []tasks.Record{
		tasks.NewRecord(1, 1, "init", tasks.Sleeping),
		tasks.NewRecord(2, 2, "busy", tasks.Running),
		tasks.NewRecord(3, 3, "dead", tasks.Zombie),
	}}
	lines := drawn(View{Snapshot: snap, Rows: 24, Cols: 120})

	header := linesAt(lines, 0)
	if assert.NotEmpty(t, header) {
		assert.Contains(t, header[0], "3 total, 1 running, 1 sleeping, 0 disk, 0 stopped, 1 zombie")
	}
	assert.Contains(t, strings.Join(lines, "\n"), "1:hline 120")

	assert.Len(t, styled(linesAt(lines, 5), screen.ZombieRow), 1)
	assert.Len(t, styled(linesAt(lines, 4), screen.RunningRow), 1)
}

func TestDrawHelpStopsAboveFooter(t *testing.T) {
	help := make([]string, 30)
	for i := range help {
		help[i] = fmt.Sprintf("help line %d", i)
	}
	lines := drawn(View{Snapshot: snapshotOf(1, 2), Help: true, HelpLines: help, Rows: 10, Cols: 40})

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "2,0,0:help line 0")
	assert.Contains(t, joined, "8,0,0:help line 6")
	assert.NotContains(t, joined, "help line 7")
	assert.NotContains(t, joined, "cmd1")
}

func TestDrawDebugPanel(t *testing.T) {
	v := View{
		Snapshot: snapshotOf(1, 2),
		Debug:    true,
		Rows:     24,
		Cols:     100,
		Stats:    Stats{Resizes: 2, Timeouts: 7, Inputs: 3, Interrupts: 4, Refreshes: 1},
		Notified: 9,
	}
	debug := styled(drawn(v), screen.Debug)
	if assert.Len(t, debug, DEBUG_ROWS) {
		assert.True(t, strings.HasPrefix(debug[0], "20,0,4:viewport 24x100  visible 17"), debug[0])
		assert.Contains(t, debug[1], "resizes 2 (signals 9)  timeouts 7  inputs 3  interrupts 4  refreshes 1")
	}
}

func TestFillUsesDisplayWidth(t *testing.T) {
	assert.Equal(t, "日本 ", fill("日本語", 5))
	assert.Equal(t, "ab   ", fill("ab", 5))
	assert.Equal(t, "", fill("ab", 0))
}
