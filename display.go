package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/slzatz/pexlite/screen"
	"github.com/slzatz/pexlite/tasks"
	"github.com/slzatz/pexlite/terminal"
)

// Fixed layout, top to bottom: title + rule, column titles, task rows,
// optional debug panel, key bar.
const (
	HEADER_ROWS       = 2
	TABLE_HEADER_ROWS = 1
	FOOTER_ROWS       = 1
	DEBUG_ROWS        = 3
)

const footerKeys = "Keys: [q]uit | [r]efresh | [h]elp | [d]ebug"

// Canvas is the part of the terminal a frame is drawn with.
type Canvas interface {
	Clear()
	WriteAt(row, col int, text string, style screen.Style)
	HLine(row int, ch rune, length int)
}

// View is everything one frame depends on.
type View struct {
	Snapshot  tasks.Snapshot
	Selection Selection
	Debug     bool
	Help      bool
	HelpLines []string
	Rows      int
	Cols      int
	Stats     Stats
	LastKey   terminal.Key
	Notified  uint64
}

// availableRows is how many task rows fit, never negative.
func availableRows(rows int, debug bool) int {
	n := rows - HEADER_ROWS - FOOTER_ROWS - TABLE_HEADER_ROWS
	if debug {
		n -= DEBUG_ROWS
	}
	return max(n, 0)
}

// Draw renders v. It has no effect beyond the calls it makes on c.
func Draw(c Canvas, v View) {
	c.Clear()
	avail := availableRows(v.Rows, v.Debug)

	drawHeader(c, v)
	if v.Help {
		drawHelp(c, v)
	} else {
		drawTable(c, v, avail)
	}
	if v.Debug {
		drawDebug(c, v, avail)
	}
	drawFooter(c, v, avail)
}

func drawHeader(c Canvas, v View) {
	counts := v.Snapshot.Counts()
	title := fmt.Sprintf("pexlite  Tasks: %d total, %d running, %d sleeping, %d disk, %d stopped, %d zombie",
		v.Snapshot.Len(), counts[tasks.Running], counts[tasks.Sleeping], counts[tasks.DiskWait],
		counts[tasks.Stopped], counts[tasks.Zombie])
	c.WriteAt(0, 0, title, screen.Header)

	hint := "Press 'q' to quit"
	if col := v.Cols - len(hint); col > runewidth.StringWidth(title)+1 {
		c.WriteAt(0, col, hint, screen.Header)
	}
	c.HLine(1, screen.BoxLine, v.Cols)
}

func tableHeader() string {
	return fmt.Sprintf("%7s %7s %1s %-10s %s", "PID", "TID", "S", "STATE", "COMMAND")
}

func formatRow(r tasks.Record) string {
	return fmt.Sprintf("%7d %7d %c %-10s %s", r.PID, r.TID, r.State.Code(), r.State, r.Command)
}

func rowStyle(r tasks.Record) screen.Style {
	switch r.State {
	case tasks.Running:
		return screen.RunningRow
	case tasks.Sleeping:
		return screen.SleepingRow
	case tasks.Zombie:
		return screen.ZombieRow
	}
	return screen.Normal
}

// fill pads or cuts s to exactly width display columns so highlighted rows
// run to the right edge.
func fill(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}

func drawTable(c Canvas, v View, avail int) {
	top := HEADER_ROWS
	c.WriteAt(top, 0, fill(tableHeader(), v.Cols), screen.TableHeader)
	if avail == 0 || v.Snapshot.Len() == 0 {
		return
	}

	// the stored selection is fitted for the rows navigation last saw; the
	// debug panel can change that without touching the selection itself
	sel := v.Selection
	sel.fit(v.Snapshot.Len(), avail)

	for y := 0; y < avail; y++ {
		fr := y + sel.Offset
		if fr > v.Snapshot.Len()-1 {
			break
		}
		rec := v.Snapshot.Records[fr]
		style := rowStyle(rec)
		if fr == sel.Index {
			style = screen.Selected
		}
		c.WriteAt(top+TABLE_HEADER_ROWS+y, 0, fill(formatRow(rec), v.Cols), style)
	}
}

func drawHelp(c Canvas, v View) {
	top := HEADER_ROWS
	bottom := v.Rows - FOOTER_ROWS
	if v.Debug {
		bottom -= DEBUG_ROWS
	}
	for i, line := range v.HelpLines {
		if top+i >= bottom {
			break
		}
		c.WriteAt(top+i, 0, line, screen.Normal)
	}
}

func drawDebug(c Canvas, v View, avail int) {
	top := v.Rows - FOOTER_ROWS - DEBUG_ROWS
	if top < HEADER_ROWS {
		return
	}
	s := v.Stats
	lines := [DEBUG_ROWS]string{
		fmt.Sprintf("viewport %dx%d  visible %d  selected %d  offset %d",
			v.Rows, v.Cols, avail, v.Selection.Index, v.Selection.Offset),
		fmt.Sprintf("resizes %d (signals %d)  timeouts %d  inputs %d  interrupts %d  refreshes %d",
			s.Resizes, v.Notified, s.Timeouts, s.Inputs, s.Interrupts, s.Refreshes),
		fmt.Sprintf("last key %s  snapshot %s", v.LastKey, v.Snapshot.Taken.Format("15:04:05")),
	}
	for i, line := range lines {
		c.WriteAt(top+i, 0, fill(line, v.Cols), screen.Debug)
	}
}

func drawFooter(c Canvas, v View, avail int) {
	row := v.Rows - FOOTER_ROWS
	if row < HEADER_ROWS {
		return
	}
	c.WriteAt(row, 0, footerKeys, screen.Footer)

	n := v.Snapshot.Len()
	if v.Help || n <= avail {
		return
	}
	sel := v.Selection
	sel.fit(n, avail)
	pos := fmt.Sprintf("%d/%d", sel.Index+1, n)
	c.WriteAt(row, max(v.Cols-len(pos)-1, 0), pos, screen.Footer)
}
