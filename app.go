package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/slzatz/pexlite/tasks"
	"github.com/slzatz/pexlite/terminal"
)

// Display is the terminal the loop draws on.
type Display interface {
	Canvas
	Dimensions() (rows, cols int)
	Reconcile() error
	Present() error
}

// Waiter blocks until a key is ready or the timeout passes.
type Waiter interface {
	Wait(timeout time.Duration) (terminal.Outcome, error)
}

// KeySource hands out one key per call once the Waiter said Ready.
type KeySource interface {
	ReadKey() (terminal.Key, error)
}

// App encapsulates the application state. Everything here is owned by the
// goroutine running MainLoop; the only field touched from elsewhere is the
// resize flag, which is atomic.
type App struct {
	Display  Display
	Input    Waiter
	Keys     KeySource
	Provider tasks.Provider
	Resize   *ResizeFlag
	Config   Config
	Logger   *log.Logger
	Now      func() time.Time

	Run        bool
	exitReason string

	keys        *CommandRegistry[func(*App)]
	snap        tasks.Snapshot
	sel         Selection
	debug       bool
	help        bool
	helpLines   []string
	helpWidth   int
	refreshDue  bool
	lastRefresh time.Time
	lastKey     terminal.Key
	stats       Stats
}

// CreateApp creates and initializes the application struct
func CreateApp(cfg Config, d Display, in Waiter, keys KeySource, p tasks.Provider, flag *ResizeFlag, logger *log.Logger) *App {
	if logger == nil {
		logger = discardLogger()
	}
	a := &App{
		Display:  d,
		Input:    in,
		Keys:     keys,
		Provider: p,
		Resize:   flag,
		Config:   cfg,
		Logger:   logger,
		Now:      time.Now,
		debug:    cfg.Debug,
	}
	a.keys = a.setKeyCommands()
	return a
}

// ExitReason says why MainLoop returned: "quit" or a short failure label.
func (a *App) ExitReason() string {
	return a.exitReason
}

func (a *App) visibleRows() int {
	rows, _ := a.Display.Dimensions()
	return availableRows(rows, a.debug)
}

func (a *App) view(rows, cols int) View {
	return View{
		Snapshot:  a.snap,
		Selection: a.sel,
		Debug:     a.debug,
		Help:      a.help,
		HelpLines: a.helpLines,
		Rows:      rows,
		Cols:      cols,
		Stats:     a.stats,
		LastKey:   a.lastKey,
		Notified:  a.Resize.Notified(),
	}
}

// refresh replaces the snapshot when it is due. The highlight follows the
// selected thread if it is still there.
func (a *App) refresh() error {
	now := a.Now()
	if !a.refreshDue && now.Sub(a.lastRefresh) < a.Config.Refresh {
		return nil
	}
	snap, err := a.Provider.Collect(a.Config.MaxTasks)
	if err != nil {
		return fmt.Errorf("collect tasks: %w", err)
	}

	if a.sel.Index < a.snap.Len() {
		tid := a.snap.Records[a.sel.Index].TID
		for i, r := range snap.Records {
			if r.TID == tid {
				a.sel.Index = i
				break
			}
		}
	}
	a.snap = snap
	a.lastRefresh = now
	a.refreshDue = false
	a.stats.Refreshes++
	a.sel.Clamp(a.snap.Len(), a.visibleRows())
	return nil
}

func (a *App) stop(reason string, err error) (Stats, error) {
	a.Run = false
	a.exitReason = reason
	a.stats.Notifications = a.Resize.Notified()
	a.Logger.Printf("stopping (%s): %v", reason, err)
	return a.stats, err
}

// MainLoop runs until the quit key or a fatal error. It never restores the
// terminal itself; whoever acquired the terminal releases it.
func (a *App) MainLoop() (Stats, error) {
	a.Resize.Clear()
	// a resize between Open and Clear left no flag behind
	if err := a.Display.Reconcile(); err != nil {
		return a.stop("resize failed", err)
	}
	a.Run = true
	a.refreshDue = true
	a.Logger.Printf("event loop started: timeout %v, refresh %v", a.Config.Timeout, a.Config.Refresh)

	for a.Run {
		if a.Resize.Take() {
			if err := a.Display.Reconcile(); err != nil {
				return a.stop("resize failed", err)
			}
			a.stats.Resizes++
			a.sel.Clamp(a.snap.Len(), a.visibleRows())
			a.helpWidth = 0
			rows, cols := a.Display.Dimensions()
			a.Logger.Printf("viewport now %dx%d", rows, cols)
		}

		rows, cols := a.Display.Dimensions()

		if err := a.refresh(); err != nil {
			return a.stop("provider failed", err)
		}
		if a.help && a.helpWidth != cols {
			a.helpLines = renderHelp(helpBody(a.keys), cols, a.Config.HelpStyle)
			a.helpWidth = cols
		}

		Draw(a.Display, a.view(rows, cols))
		if err := a.Display.Present(); err != nil {
			return a.stop("draw failed", fmt.Errorf("present frame: %w", err))
		}

		outcome, err := a.Input.Wait(a.Config.Timeout)
		switch outcome {
		case terminal.Interrupted:
			a.stats.Interrupts++
		case terminal.TimedOut:
			a.stats.Timeouts++
		case terminal.Ready:
			a.stats.Inputs++
			k, err := a.Keys.ReadKey()
			if errors.Is(err, terminal.ErrNoInput) {
				continue
			}
			if err != nil {
				return a.stop("input failed", fmt.Errorf("read key: %w", err))
			}
			a.processKey(k)
		default:
			var werr *terminal.WaitError
			if errors.As(err, &werr) {
				a.stats.LastErrno = werr.Code()
			}
			if err == nil {
				err = fmt.Errorf("wait for input: %v", outcome)
			}
			return a.stop("wait failed", err)
		}
	}
	a.stats.Notifications = a.Resize.Notified()
	a.Logger.Printf("event loop finished: %s", a.exitReason)
	return a.stats, nil
}
