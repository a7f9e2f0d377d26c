package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme bundles palette + symbols.
// All UI helpers pull from `current`.
type Theme struct {
	Light bool

	Text, Title, Muted, Success, Error, Warning lipgloss.Color
	Accent                                      lipgloss.Color

	Bullet, Empty             string
	SymUp, SymDown, SymDelete string
}

var (
	accentHue = 210.0
	current   = palette(false, accentHue)
)

func palette(light bool, hue float64) Theme {
	t := Theme{
		Light:     light,
		Accent:    AccentColor(hue),
		Bullet:    "•",
		Empty:     "Nothing here yet.",
		SymUp:     "↑",
		SymDown:   "↓",
		SymDelete: "✖",
	}
	if light {
		t.Text = lipgloss.Color("#1f2328")
		t.Title = lipgloss.Color("#0b0d10")
		t.Muted = lipgloss.Color("#6e7781")
		t.Success = lipgloss.Color("#1a7f37")
		t.Error = lipgloss.Color("#cf222e")
		t.Warning = lipgloss.Color("#9a6700")
	} else {
		t.Text = lipgloss.Color("#e6edf3")
		t.Title = lipgloss.Color("#ffffff")
		t.Muted = lipgloss.Color("#8b949e")
		t.Success = lipgloss.Color("#3fb950")
		t.Error = lipgloss.Color("#f85149")
		t.Warning = lipgloss.Color("#d29922")
	}
	return t
}

// AccentColor maps a hue to the accent shade used everywhere
// (saturation 90%, lightness 55%).
func AccentColor(hue float64) lipgloss.Color {
	return lipgloss.Color(colorful.Hsl(hue, 0.90, 0.55).Clamped().Hex())
}

// SetTheme switches between the light and dark palette, keeping the accent.
func SetTheme(light bool) {
	current = palette(light, accentHue)
}

// SetAccent recolors the accent of the current palette.
func SetAccent(hue float64) {
	accentHue = hue
	current.Accent = AccentColor(hue)
}

// Expose what renderers need
func Current() Theme { return current }

// Applier routes preference changes to the package palette.
type Applier struct{}

func (Applier) ApplyTheme(light bool)   { SetTheme(light) }
func (Applier) ApplyAccent(hue float64) { SetAccent(hue) }

// ------- styles derived from the current palette -------

func TitleStyle() lipgloss.Style   { return lipgloss.NewStyle().Bold(true).Foreground(current.Title) }
func TextStyle() lipgloss.Style    { return lipgloss.NewStyle().Foreground(current.Text) }
func MutedStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(current.Muted) }
func AccentStyle() lipgloss.Style  { return lipgloss.NewStyle().Foreground(current.Accent) }
func SuccessStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(current.Success) }
func ErrorStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(current.Error).Bold(true) }
func WarningStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(current.Warning) }

func SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(current.Accent)
}

func BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(current.Accent).
		Padding(0, 1)
}
