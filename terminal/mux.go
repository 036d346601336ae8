package terminal

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Outcome is what a Wait observed.
type Outcome int

const (
	// Ready: a key can be read without blocking.
	Ready Outcome = iota
	// TimedOut: nothing arrived within the timeout.
	TimedOut
	// Interrupted: the wait was cut short by a resize notification. Not an error;
	// the caller re-checks the resize flag and waits again.
	Interrupted
	// Failed: select(2) reported a real error, see WaitError.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Ready:
		return "ready"
	case TimedOut:
		return "timed out"
	case Interrupted:
		return "interrupted"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// WaitError carries the errno of a failed wait.
type WaitError struct {
	Errno unix.Errno
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("wait for input: %v", e.Errno)
}

func (e *WaitError) Unwrap() error {
	return e.Errno
}

// Code is the errno reported to the user on exit.
func (e *WaitError) Code() int {
	return int(e.Errno)
}

// Buffered is implemented by input readers that may hold decoded-but-unread
// bytes select(2) can't see.
type Buffered interface {
	Buffered() int
}

type selectFunc func(nfd int, r, w, e *unix.FdSet, tv *unix.Timeval) (int, error)

// Multiplexer waits for a key or a timeout, whichever comes first.
type Multiplexer struct {
	fd   int
	in   Buffered
	wake *Waker
	sel  selectFunc
}

// NewMultiplexer watches fd for input. in and wake may be nil.
func NewMultiplexer(fd int, in Buffered, wake *Waker) *Multiplexer {
	return &Multiplexer{
		fd:   fd,
		in:   in,
		wake: wake,
		sel:  unix.Select,
	}
}

// Wait blocks up to timeout.
func (m *Multiplexer) Wait(timeout time.Duration) (Outcome, error) {
	if m.in != nil && m.in.Buffered() > 0 {
		return Ready, nil
	}

	// select(2) on Linux writes the unslept time back into tv, so tv is built
	// fresh from timeout on every call. Reusing it across an EINTR retry would
	// shrink the timeout toward zero.
	tv := unix.NsecToTimeval(timeout.Nanoseconds())

	var rfds unix.FdSet
	rfds.Zero()
	rfds.Set(m.fd)
	nfd := m.fd
	if m.wake != nil {
		rfds.Set(m.wake.fd())
		nfd = max(nfd, m.wake.fd())
	}

	n, err := m.sel(nfd+1, &rfds, nil, nil, &tv)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return Interrupted, nil
		}
		var errno unix.Errno
		if !errors.As(err, &errno) {
			errno = unix.EIO
		}
		return Failed, &WaitError{Errno: errno}
	}
	if n == 0 {
		return TimedOut, nil
	}
	if m.wake != nil && rfds.IsSet(m.wake.fd()) {
		m.wake.Drain()
		return Interrupted, nil
	}
	if rfds.IsSet(m.fd) {
		return Ready, nil
	}
	return Interrupted, nil
}
