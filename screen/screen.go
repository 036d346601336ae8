// Package screen draws full-screen frames on a raw-mode terminal with ANSI
// escape sequences. A frame is composed in memory and written with one call
// to Present.
package screen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/slzatz/pexlite/rawmode"
)

// BoxLine as the HLine rune draws with the DEC line drawing set instead of a
// printable character.
const BoxLine rune = -1

const (
	enterAltScreen = "\x1b[?1049h"
	exitAltScreen  = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	eraseDisplay   = "\x1b[H\x1b[2J"
	reset          = "\x1b[0m"
)

// SizeFunc reports the current viewport size.
type SizeFunc func() (*rawmode.Winsize, error)

// Screen is the terminal rendering surface.
type Screen struct {
	out    io.Writer
	ab     strings.Builder
	rows   int
	cols   int
	size   SizeFunc
	styles Styles
	raw    *rawmode.State
	mode   ttyMode
	closed bool
}

// ttyMode switches raw mode on and off.
type ttyMode struct {
	enable  func(*os.File) (*rawmode.State, error)
	restore func(*rawmode.State) error
}

var rawTTY = ttyMode{enable: rawmode.EnableFile, restore: rawmode.Restore}

// New wraps out without touching terminal modes.
func New(out io.Writer, size SizeFunc, styles Styles) *Screen {
	return &Screen{out: out, size: size, styles: styles, mode: rawTTY}
}

// Open takes over the terminal: raw mode on in, alternate screen and hidden
// cursor on out. On error everything already changed is put back.
func Open(in, out *os.File, theme Theme) (*Screen, error) {
	size := func() (*rawmode.Winsize, error) { return rawmode.WindowSize(out) }
	return open(in, out, size, NewStyles(NewRenderer(out), theme), rawTTY)
}

func open(in *os.File, out io.Writer, size SizeFunc, styles Styles, mode ttyMode) (*Screen, error) {
	raw, err := mode.enable(in)
	if err != nil {
		return nil, err
	}
	s := New(out, size, styles)
	s.mode = mode
	s.raw = raw

	if _, err := io.WriteString(out, enterAltScreen+hideCursor); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	if err := s.Reconcile(); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	return s, nil
}

// Dimensions returns the cached viewport size.
func (s *Screen) Dimensions() (rows, cols int) {
	return s.rows, s.cols
}

// Reconcile drops the cached size and asks the terminal again.
func (s *Screen) Reconcile() error {
	s.rows, s.cols = 0, 0
	ws, err := s.size()
	if err != nil {
		return fmt.Errorf("get window size: %w", err)
	}
	s.rows, s.cols = int(ws.Row), int(ws.Col)
	return nil
}

// Clear starts a new frame.
func (s *Screen) Clear() {
	s.ab.Reset()
	s.ab.WriteString(hideCursor)
	s.ab.WriteString(reset)
	s.ab.WriteString(eraseDisplay)
}

// WriteAt puts text at a zero-based row and column. Anything that would run
// past the right edge is cut; rows off screen are ignored. Text may already
// carry SGR sequences.
func (s *Screen) WriteAt(row, col int, text string, style Style) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return
	}
	text = ansi.Truncate(text, s.cols-col, "")
	if text == "" {
		return
	}
	fmt.Fprintf(&s.ab, "\x1b[%d;%dH", row+1, col+1)
	if style < 0 || style >= numStyles {
		style = Normal
	}
	s.ab.WriteString(s.styles[style].Render(text))
}

// HLine draws length copies of ch starting at column 0.
func (s *Screen) HLine(row int, ch rune, length int) {
	if row < 0 || row >= s.rows {
		return
	}
	length = min(length, s.cols)
	if length <= 0 {
		return
	}
	fmt.Fprintf(&s.ab, "\x1b[%d;1H", row+1)
	if ch == BoxLine {
		// x = 0x78 vertical line; q = 0x71 horizontal line
		s.ab.WriteString("\x1b(0")
		s.ab.WriteString(strings.Repeat("q", length))
		s.ab.WriteString("\x1b(B")
		return
	}
	s.ab.WriteString(strings.Repeat(string(ch), length))
}

// Present writes the frame.
func (s *Screen) Present() error {
	s.ab.WriteString(reset)
	_, err := io.WriteString(s.out, s.ab.String())
	s.ab.Reset()
	return err
}

// Close gives the terminal back: main screen, visible cursor, cooked mode.
// It is safe to call more than once.
func (s *Screen) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var errs []error
	if s.raw != nil {
		if _, err := io.WriteString(s.out, reset+eraseDisplay+showCursor+exitAltScreen); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.mode.restore(s.raw); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
