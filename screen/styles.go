package screen

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style names a role on screen; the theme decides what it looks like.
type Style int

const (
	Normal Style = iota
	Header
	Footer
	TableHeader
	Debug
	Selected
	RunningRow
	SleepingRow
	ZombieRow
	numStyles
)

// Theme holds lipgloss colour strings ("6", "#ff8800", "212") per role.
type Theme struct {
	Header      string `toml:"header" yaml:"header"`
	Footer      string `toml:"footer" yaml:"footer"`
	TableHeader string `toml:"table_header" yaml:"table_header"`
	Debug       string `toml:"debug" yaml:"debug"`
	SelectedFg  string `toml:"selected_fg" yaml:"selected_fg"`
	SelectedBg  string `toml:"selected_bg" yaml:"selected_bg"`
	Running     string `toml:"running" yaml:"running"`
	Sleeping    string `toml:"sleeping" yaml:"sleeping"`
	Zombie      string `toml:"zombie" yaml:"zombie"`
}

// DefaultTheme matches the old ncurses pairs: cyan header, green footer,
// yellow accents.
func DefaultTheme() Theme {
	return Theme{
		Header:      "6",
		Footer:      "2",
		TableHeader: "3",
		Debug:       "5",
		SelectedFg:  "229",
		SelectedBg:  "57",
		Running:     "2",
		Sleeping:    "",
		Zombie:      "1",
	}
}

// Styles is indexed by Style.
type Styles [numStyles]lipgloss.Style

func color(c string) lipgloss.TerminalColor {
	if c == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(c)
}

// NewStyles binds a theme to a renderer, so colours degrade to whatever the
// renderer's profile supports.
func NewStyles(r *lipgloss.Renderer, th Theme) Styles {
	var s Styles
	s[Normal] = r.NewStyle()
	s[Header] = r.NewStyle().Foreground(color(th.Header)).Bold(true)
	s[Footer] = r.NewStyle().Foreground(color(th.Footer))
	s[TableHeader] = r.NewStyle().Foreground(color(th.TableHeader)).Bold(true).Reverse(true)
	s[Debug] = r.NewStyle().Foreground(color(th.Debug))
	s[Selected] = r.NewStyle().Foreground(color(th.SelectedFg)).Background(color(th.SelectedBg)).Bold(true)
	s[RunningRow] = r.NewStyle().Foreground(color(th.Running))
	s[SleepingRow] = r.NewStyle().Foreground(color(th.Sleeping))
	s[ZombieRow] = r.NewStyle().Foreground(color(th.Zombie))
	return s
}

// NewRenderer returns a lipgloss renderer for out. NO_COLOR forces plain text.
func NewRenderer(out termenv.File) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(out)
	if termenv.EnvNoColor() {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}
