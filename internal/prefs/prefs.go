// Package prefs keeps the theme and accent hue, applies them through an
// Applier and persists them in a kv.Store.
package prefs

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Makepad-fr/shortlist/internal/kv"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	// DefaultAccent is used when neither storage nor config provide a hue.
	DefaultAccent = "210"
)

// Applier makes a preference visible. Implemented by the UI layer.
type Applier interface {
	ApplyTheme(light bool)
	ApplyAccent(hue float64)
}

type nopApplier struct{}

func (nopApplier) ApplyTheme(bool)     {}
func (nopApplier) ApplyAccent(float64) {}

// Preferences is not safe for concurrent use.
type Preferences struct {
	kv      kv.Store
	applier Applier
	logger  *zap.Logger

	light  bool
	accent string
}

type Option func(*Preferences)

func WithLogger(l *zap.Logger) Option {
	return func(p *Preferences) {
		if l != nil {
			p.logger = l
		}
	}
}

// Load reads the saved theme (anything but "light" means dark) and accent and
// applies both. A missing or unparsable accent is replaced by defaultAccent,
// which is then saved so later loads agree.
func Load(backend kv.Store, applier Applier, defaultAccent string, opts ...Option) (*Preferences, error) {
	if applier == nil {
		applier = nopApplier{}
	}
	p := &Preferences{kv: backend, applier: applier, logger: zap.NewNop()}
	for _, o := range opts {
		o(p)
	}

	theme, _, err := backend.Get(kv.KeyTheme)
	if err != nil {
		p.logger.Debug("theme unreadable, using dark", zap.Error(err))
	}
	p.light = theme == ThemeLight
	p.applier.ApplyTheme(p.light)

	saved, ok, err := backend.Get(kv.KeyAccent)
	if err != nil {
		p.logger.Debug("accent unreadable, using default", zap.Error(err))
		ok = false
	}
	if hue, valid := ParseHue(saved); ok && valid {
		p.accent = saved
		p.applier.ApplyAccent(hue)
		return p, nil
	}

	if _, valid := ParseHue(defaultAccent); !valid {
		defaultAccent = DefaultAccent
	}
	if err := p.SetAccent(defaultAccent); err != nil {
		return p, err
	}
	return p, nil
}

func (p *Preferences) Light() bool { return p.light }

func (p *Preferences) Theme() string {
	if p.light {
		return ThemeLight
	}
	return ThemeDark
}

// Accent returns the raw stored accent value.
func (p *Preferences) Accent() string { return p.accent }

// AccentHue returns the accent normalized into [0, 360).
func (p *Preferences) AccentHue() float64 {
	h, _ := ParseHue(p.accent)
	return h
}

// SetTheme applies and saves the theme.
func (p *Preferences) SetTheme(light bool) error {
	p.light = light
	p.applier.ApplyTheme(light)
	if err := p.kv.Set(kv.KeyTheme, p.Theme()); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	p.logger.Debug("theme set", zap.String("theme", p.Theme()))
	return nil
}

func (p *Preferences) ToggleTheme() error {
	return p.SetTheme(!p.light)
}

// SetAccent applies and saves hue as given. Values that are not numbers
// are ignored.
func (p *Preferences) SetAccent(hue string) error {
	hue = strings.TrimSpace(hue)
	h, ok := ParseHue(hue)
	if !ok {
		return nil
	}
	p.accent = hue
	p.applier.ApplyAccent(h)
	if err := p.kv.Set(kv.KeyAccent, hue); err != nil {
		return fmt.Errorf("save accent: %w", err)
	}
	p.logger.Debug("accent set", zap.String("accent", hue))
	return nil
}

func (p *Preferences) SetAccentHue(hue float64) error {
	return p.SetAccent(strconv.FormatFloat(hue, 'f', -1, 64))
}

// ParseHue parses a number and wraps it onto the color wheel [0, 360).
func ParseHue(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	h := math.Mod(f, 360)
	if h < 0 {
		h += 360
	}
	return h, true
}
