package main

import "sync/atomic"

// ResizeFlag records that the viewport changed size. Notify may run on any
// goroutine at any time; Take is called once per loop iteration by the event
// loop, which is the only place the resize is acted on. Any number of
// Notify calls between two Takes produce one reconciliation.
type ResizeFlag struct {
	pending  atomic.Bool
	notified atomic.Uint64
}

func (f *ResizeFlag) Notify() {
	f.pending.Store(true)
	f.notified.Add(1)
}

// Take reports whether a resize is pending and clears it.
func (f *ResizeFlag) Take() bool {
	return f.pending.Swap(false)
}

// Clear drops a pending resize without acting on it.
func (f *ResizeFlag) Clear() {
	f.pending.Store(false)
}

// Notified counts raw notifications, coalesced or not. Diagnostic only.
func (f *ResizeFlag) Notified() uint64 {
	return f.notified.Load()
}
