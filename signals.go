package main

import (
	"os"
	"os/signal"
	"syscall"
)

// waker is satisfied by *terminal.Waker.
type waker interface {
	Wake()
}

// startResizeNotifier forwards SIGWINCH to flag and wakes a blocked wait.
// The goroutine does nothing else: no logging, no drawing, no state besides
// the flag. The returned stop function unhooks the signal and waits for the
// goroutine to exit.
func startResizeNotifier(flag *ResizeFlag, w waker) (stop func()) {
	return notifyOn(flag, w, syscall.SIGWINCH)
}

func notifyOn(flag *ResizeFlag, w waker, sigs ...os.Signal) (stop func()) {
	signal_chan := make(chan os.Signal, 1)
	signal.Notify(signal_chan, sigs...)
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		for {
			select {
			case <-signal_chan:
				flag.Notify()
				if w != nil {
					w.Wake()
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(signal_chan)
		close(done)
		<-exited
	}
}
