package terminal

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var wakeByte = []byte{1}

// Waker is a self-pipe. Wake can be called from any goroutine and never
// blocks or allocates; the multiplexer watches the read end and reports
// Interrupted when it becomes readable.
type Waker struct {
	r, w int
}

func NewWaker() (*Waker, error) {
	p := make([]int, 2)
	if err := unix.Pipe(p); err != nil {
		return nil, fmt.Errorf("wake pipe: %w", err)
	}
	for _, fd := range p {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return nil, fmt.Errorf("wake pipe: %w", err)
		}
	}
	return &Waker{r: p[0], w: p[1]}, nil
}

// Wake makes the next (or current) Wait return Interrupted. A full pipe means
// a wake is already pending, so EAGAIN is ignored.
func (w *Waker) Wake() {
	_, _ = unix.Write(w.w, wakeByte)
}

// Drain empties the pipe so one or many Wake calls produce one Interrupted.
func (w *Waker) Drain() {
	var buf [64]byte
	for {
		n, err := unix.Read(w.r, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

func (w *Waker) fd() int {
	return w.r
}

func (w *Waker) Close() error {
	return errors.Join(unix.Close(w.r), unix.Close(w.w))
}
