package terminal

import (
	"bufio"
	"fmt"
	"io"
)

// Special keys
const (
	KeyNoSpl     = iota
	KeyArrowLeft = iota + 999
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyIns
)

// ESC-prefixed sequences, minus the ESC, zero padded to four bytes.
// Both the normal (CSI) and application (SS3) cursor forms are listed
// since terminals differ on which one raw mode gets.
var specialKeys = map[[4]byte]int{
	{'[', 'A', 0, 0}:   KeyArrowUp,
	{'[', 'B', 0, 0}:   KeyArrowDown,
	{'[', 'D', 0, 0}:   KeyArrowLeft,
	{'[', 'C', 0, 0}:   KeyArrowRight,
	{'O', 'A', 0, 0}:   KeyArrowUp,
	{'O', 'B', 0, 0}:   KeyArrowDown,
	{'O', 'D', 0, 0}:   KeyArrowLeft,
	{'O', 'C', 0, 0}:   KeyArrowRight,
	{'[', '5', '~', 0}: KeyPageUp,
	{'[', '6', '~', 0}: KeyPageDown,
	{'[', 'H', 0, 0}:   KeyHome,
	{'[', 'F', 0, 0}:   KeyEnd,
	{'O', 'H', 0, 0}:   KeyHome,
	{'O', 'F', 0, 0}:   KeyEnd,
	{'[', '1', '~', 0}: KeyHome,
	{'[', '4', '~', 0}: KeyEnd,
	{'[', '3', '~', 0}: KeyDelete,
	{'[', '2', '~', 0}: KeyIns,
	{'O', 'P', 0, 0}:   KeyF1,
	{'O', 'Q', 0, 0}:   KeyF2,
	{'O', 'R', 0, 0}:   KeyF3,
	{'O', 'S', 0, 0}:   KeyF4,
}

var specialNames = map[int]string{
	KeyArrowLeft:  "<Left>",
	KeyArrowRight: "<Right>",
	KeyArrowUp:    "<Up>",
	KeyArrowDown:  "<Down>",
	KeyDelete:     "<Del>",
	KeyHome:       "<Home>",
	KeyEnd:        "<End>",
	KeyPageUp:     "<PgUp>",
	KeyPageDown:   "<PgDn>",
	KeyF1:         "<F1>",
	KeyF2:         "<F2>",
	KeyF3:         "<F3>",
	KeyF4:         "<F4>",
	KeyIns:        "<Ins>",
}

// ErrNoInput indicates that there is no input when reading from keyboard
// in raw mode. This happens when the tty read timeout is set to a low number
var ErrNoInput = fmt.Errorf("no input")

// Key represents the key entered by the user
type Key struct {
	Regular rune
	Special int
}

// Code folds a key into one int: the rune for regular keys, the Key* constant
// otherwise.
func (k Key) Code() int {
	if k.Regular != 0 {
		return int(k.Regular)
	}
	return k.Special
}

func (k Key) String() string {
	if k.Regular == 0 {
		if name, ok := specialNames[k.Special]; ok {
			return name
		}
		return "<?>"
	}
	switch {
	case k.Regular == 27:
		return "<Esc>"
	case k.Regular < 32:
		return fmt.Sprintf("<C-%c>", k.Regular+'a'-1)
	case k.Regular == 127:
		return "<BS>"
	}
	return string(k.Regular)
}

// Reader decodes VT100 key sequences from a raw-mode tty.
type Reader struct {
	bufr *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{bufr: bufio.NewReader(r)}
}

// Buffered reports bytes already read from the tty but not yet returned as keys.
// The multiplexer has to check it because select(2) can't see them.
func (r *Reader) Buffered() int {
	return r.bufr.Buffered()
}

// ReadKey reads one key. It must only be called when input is known to be
// available, otherwise it blocks on the tty.
func (r *Reader) ReadKey() (Key, error) {
	c, n, err := r.bufr.ReadRune()
	if err != nil {
		return Key{}, err
	}

	// tty read timeout expired with nothing typed
	if n == 0 {
		return Key{}, ErrNoInput
	}

	if c != 27 {
		return Key{c, KeyNoSpl}, nil
	}

	// nothing has been buffered, probably plain escape
	if r.bufr.Buffered() == 0 {
		return Key{27, KeyNoSpl}, nil
	}

	stack := [4]byte{}
	for j := 0; j < 4 && r.bufr.Buffered() > 0; j++ {
		b, err := r.bufr.ReadByte()
		if err != nil {
			return Key{}, err
		}
		stack[j] = b

		if key, found := specialKeys[stack]; found {
			return Key{0, key}, nil
		}
		if sequenceDone(stack[:j+1]) {
			return Key{27, KeyNoSpl}, nil
		}
	}

	// unknown CSI longer than the table entries (ESC [1;2Q is shift-F2):
	// swallow the rest up to the final byte so none of it reads as keys
	if stack[0] == '[' {
		for r.bufr.Buffered() > 0 {
			b, err := r.bufr.ReadByte()
			if err != nil {
				return Key{}, err
			}
			if isFinalByte(b) {
				break
			}
		}
	}
	return Key{27, KeyNoSpl}, nil
}

// sequenceDone reports whether seq, the bytes after ESC, is a complete
// sequence the table doesn't know.
func sequenceDone(seq []byte) bool {
	switch {
	case seq[0] != '[' && seq[0] != 'O':
		// ESC followed by a plain key (alt-x)
		return true
	case len(seq) == 1:
		return false
	case seq[0] == 'O':
		return true
	}
	return isFinalByte(seq[len(seq)-1])
}

// isFinalByte is the range that ends a CSI sequence.
func isFinalByte(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}
