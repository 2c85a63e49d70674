package console

import (
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"
)

// Color palette, ANSI 256 colors.
var (
	ColorAccent    = lipgloss.Color("213")
	ColorBot       = lipgloss.Color("141")
	ColorText      = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("245")
	ColorError     = lipgloss.Color("196")
	ColorBorder    = lipgloss.Color("62")
)

// Styles groups the styles used for one kind of output each.
type Styles struct {
	Title     lipgloss.Style
	Hint      lipgloss.Style
	Speaker   lipgloss.Style
	Reply     lipgloss.Style
	Info      lipgloss.Style
	Meta      lipgloss.Style
	Error     lipgloss.Style
	Separator lipgloss.Style
}

// DefaultStyles returns the colored theme.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),
		Hint: lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true),
		Speaker: lipgloss.NewStyle().
			Foreground(ColorBot).
			Bold(true),
		Reply: lipgloss.NewStyle().
			Foreground(ColorText),
		Info: lipgloss.NewStyle().
			Foreground(ColorText),
		Meta: lipgloss.NewStyle().
			Foreground(ColorTextMuted),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Separator: lipgloss.NewStyle().
			Foreground(ColorBorder),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:     plain,
		Hint:      plain,
		Speaker:   plain,
		Reply:     plain,
		Info:      plain,
		Meta:      plain,
		Error:     plain,
		Separator: plain,
	}
}

// ColorEnabled resolves a color mode ("auto", "always", "never") for the
// given output file. Auto honours NO_COLOR and requires a terminal.
func ColorEnabled(mode string, f *os.File) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}
