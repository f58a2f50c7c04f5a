package ui

import (
	"github.com/gdamore/tcell/v2"

	"serial-monitor/pkg/transcript"
)

// Theme is a named color palette for the monitor surface.
type Theme struct {
	Name       string
	Background tcell.Color
	Foreground tcell.Color
	Accent     tcell.Color
	Border     tcell.Color
	Error      tcell.Color
	TX         tcell.Color
	RX         tcell.Color
}

// DefaultTheme is the theme applied until the user picks another.
const DefaultTheme = "Catppuccin Frappe"

// themes is the built-in catalogue, in selector order.
var themes = []Theme{
	{
		Name:       "Catppuccin Frappe",
		Background: tcell.NewHexColor(0x303446),
		Foreground: tcell.NewHexColor(0xc6d0f5),
		Accent:     tcell.NewHexColor(0xca9ee6),
		Border:     tcell.NewHexColor(0xa6d189),
		Error:      tcell.NewHexColor(0xe78284),
		TX:         tcell.NewHexColor(0xe5c890),
		RX:         tcell.NewHexColor(0x8caaee),
	},
	{
		Name:       "Dracula",
		Background: tcell.NewHexColor(0x282a36),
		Foreground: tcell.NewHexColor(0xf8f8f2),
		Accent:     tcell.NewHexColor(0xbd93f9),
		Border:     tcell.NewHexColor(0x50fa7b),
		Error:      tcell.NewHexColor(0xff5555),
		TX:         tcell.NewHexColor(0xf1fa8c),
		RX:         tcell.NewHexColor(0x8be9fd),
	},
	{
		Name:       "Solarized Dark",
		Background: tcell.NewHexColor(0x002b36),
		Foreground: tcell.NewHexColor(0x839496),
		Accent:     tcell.NewHexColor(0x6c71c4),
		Border:     tcell.NewHexColor(0x859900),
		Error:      tcell.NewHexColor(0xdc322f),
		TX:         tcell.NewHexColor(0xb58900),
		RX:         tcell.NewHexColor(0x268bd2),
	},
	{
		Name:       "Nord",
		Background: tcell.NewHexColor(0x2e3440),
		Foreground: tcell.NewHexColor(0xd8dee9),
		Accent:     tcell.NewHexColor(0xb48ead),
		Border:     tcell.NewHexColor(0xa3be8c),
		Error:      tcell.NewHexColor(0xbf616a),
		TX:         tcell.NewHexColor(0xebcb8b),
		RX:         tcell.NewHexColor(0x81a1c1),
	},
	{
		Name:       "Terminal",
		Background: tcell.ColorReset,
		Foreground: tcell.ColorReset,
		Accent:     tcell.ColorTeal,
		Border:     tcell.ColorGreen,
		Error:      tcell.ColorRed,
		TX:         tcell.ColorYellow,
		RX:         tcell.ColorBlue,
	},
}

// ThemeNames returns the catalogue names in selector order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// LookupTheme returns the named theme, or the default theme when the
// name is unknown or empty.
func LookupTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return LookupTheme(DefaultTheme)
}

// Base returns the plain text style.
func (t Theme) Base() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)
}

// Focused returns the style of the control holding keyboard focus.
func (t Theme) Focused() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Accent).Bold(true)
}

// BorderStyle returns the style of the log view frame.
func (t Theme) BorderStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Border)
}

// ForKind returns the style of a transcript entry of the given kind.
func (t Theme) ForKind(k transcript.Kind) tcell.Style {
	switch k {
	case transcript.KindError:
		return tcell.StyleDefault.Background(t.Background).Foreground(t.Error)
	case transcript.KindTX:
		return tcell.StyleDefault.Background(t.Background).Foreground(t.TX)
	case transcript.KindRX:
		return tcell.StyleDefault.Background(t.Background).Foreground(t.RX)
	default:
		return t.Base()
	}
}
