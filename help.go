package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

const version = "0.1.0"

// helpBody is the markdown behind the help overlay.
func helpBody(registry *CommandRegistry[func(*App)]) string {
	var b strings.Builder
	b.WriteString(registry.FormatAllHelp())
	b.WriteString("\nThe task list refreshes on its own and the screen redraws at least once per wait timeout.\n")
	return b.String()
}

// renderHelp turns the help markdown into screen lines wrapped to width.
func renderHelp(markdown string, width int, style string) []string {
	if termenv.EnvNoColor() {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return []string{"Error creating renderer: " + err.Error()}
	}
	out, err := r.Render(markdown)
	if err != nil {
		return []string{"Error rendering: " + err.Error()}
	}
	return strings.Split(strings.Trim(out, "\n"), "\n")
}

func versionString() string {
	return fmt.Sprintf("pexlite %s (%s/%s, %s)", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
