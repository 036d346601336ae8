package rawmode

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Winsize represents terminal window dimensions in a platform-agnostic way
type Winsize struct {
	Row    uint16
	Col    uint16
	Xpixel uint16
	Ypixel uint16
}

// GetWindowSize asks the kernel for the current size of the terminal on stdout.
func GetWindowSize() (*Winsize, error) {
	return WindowSize(os.Stdout)
}

// WindowSize is GetWindowSize for an arbitrary tty.
func WindowSize(f *os.File) (*Winsize, error) {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return nil, fmt.Errorf("TIOCGWINSZ: %w", err)
	}
	return &Winsize{
		Row:    ws.Row,
		Col:    ws.Col,
		Xpixel: ws.Xpixel,
		Ypixel: ws.Ypixel,
	}, nil
}
