package main

import (
	"github.com/slzatz/pexlite/terminal"
)

func (a *App) setKeyCommands() *CommandRegistry[func(*App)] {
	registry := NewCommandRegistry[func(*App)]()

	registry.Register("quit", (*App).quit, CommandInfo{
		Description: "Quit",
		Category:    "General",
	}, 'q', ctrlKey('c'))

	registry.Register("debug", (*App).toggleDebug, CommandInfo{
		Description: "Show or hide the debug panel",
		Category:    "General",
	}, 'd')

	registry.Register("help", (*App).toggleHelp, CommandInfo{
		Description: "Show or hide this help",
		Category:    "General",
	}, 'h', '?')

	registry.Register("refresh", (*App).requestRefresh, CommandInfo{
		Description: "Take a new snapshot now",
		Category:    "General",
	}, 'r')

	registry.Register("up", (*App).moveUp, CommandInfo{
		Description: "Select the previous task",
		Category:    "Navigation",
	}, terminal.KeyArrowUp, 'k')

	registry.Register("down", (*App).moveDown, CommandInfo{
		Description: "Select the next task",
		Category:    "Navigation",
	}, terminal.KeyArrowDown, 'j')

	registry.Register("page up", (*App).pageUp, CommandInfo{
		Description: "Move up one screen",
		Category:    "Navigation",
	}, terminal.KeyPageUp)

	registry.Register("page down", (*App).pageDown, CommandInfo{
		Description: "Move down one screen",
		Category:    "Navigation",
	}, terminal.KeyPageDown)

	registry.Register("top", (*App).moveTop, CommandInfo{
		Description: "Select the first task",
		Category:    "Navigation",
	}, terminal.KeyHome)

	registry.Register("bottom", (*App).moveBottom, CommandInfo{
		Description: "Select the last task",
		Category:    "Navigation",
	}, terminal.KeyEnd)

	return registry
}

// processKey applies one key. Unbound keys are ignored. Nothing here does
// I/O; effects land in the selection and toggles and show up on the next
// frame.
func (a *App) processKey(k terminal.Key) {
	a.lastKey = k
	if fn, ok := a.keys.Lookup(k.Code()); ok {
		fn(a)
	}
}

func (a *App) quit() {
	a.Run = false
	a.exitReason = "quit"
}

func (a *App) toggleDebug() {
	a.debug = !a.debug
}

func (a *App) toggleHelp() {
	a.help = !a.help
	a.helpWidth = 0
}

func (a *App) requestRefresh() {
	a.refreshDue = true
}

func (a *App) moveUp() {
	a.sel.Up(a.snap.Len(), a.visibleRows())
}

func (a *App) moveDown() {
	a.sel.Down(a.snap.Len(), a.visibleRows())
}

func (a *App) pageUp() {
	a.sel.PageUp(a.snap.Len(), a.visibleRows())
}

func (a *App) pageDown() {
	a.sel.PageDown(a.snap.Len(), a.visibleRows())
}

func (a *App) moveTop() {
	a.sel.Top(a.snap.Len(), a.visibleRows())
}

func (a *App) moveBottom() {
	a.sel.Bottom(a.snap.Len(), a.visibleRows())
}
