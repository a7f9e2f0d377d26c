// Package tui is the interactive terminal front end. It forwards key
// presses to the list store and preferences and redraws from the store's
// visible items after every change.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Makepad-fr/shortlist/internal/model"
	"github.com/Makepad-fr/shortlist/internal/prefs"
	"github.com/Makepad-fr/shortlist/internal/store"
	"github.com/Makepad-fr/shortlist/internal/ui"
)

const accentStep = 10.0

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeFilter
	modeConfirmClear
)

type tickMsg time.Time

// Model implements tea.Model on top of a store and preferences.
type Model struct {
	store  *store.Store
	prefs  *prefs.Preferences
	logger *zap.Logger

	list   list.Model
	add    textinput.Model
	filter textinput.Model
	help   help.Model
	keys   keyMap

	mode      mode
	status    string
	statusErr bool

	now           time.Time
	clock         func() time.Time
	copyText      func(string) error
	width, height int
}

type Option func(*Model)

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock replaces time.Now for the header clock.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.clock = now }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copyText = write }
}

func New(s *store.Store, p *prefs.Preferences, opts ...Option) Model {
	m := Model{
		store:    s,
		prefs:    p,
		logger:   zap.NewNop(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		clock:    time.Now,
		copyText: clipboard.WriteAll,
		width:    80,
		height:   24,
	}
	for _, o := range opts {
		o(&m)
	}
	m.now = m.clock()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	m.list = l

	m.add = textinput.New()
	m.add.Prompt = "+ "
	m.add.Placeholder = "New item..."
	m.add.CharLimit = 200

	m.filter = textinput.New()
	m.filter.Prompt = "/ "
	m.filter.Placeholder = "Search..."

	m.resize()
	m.refresh("")
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(s *store.Store, p *prefs.Preferences, opts ...Option) error {
	_, err := tea.NewProgram(New(s, p, opts...), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// refresh reloads the visible items, keeping selectID selected when it is
// still visible.
func (m *Model) refresh(selectID string) {
	if selectID == "" {
		if it, ok := m.selected(); ok {
			selectID = it.ID
		}
	}
	idx := m.list.Index()
	visible := m.store.VisibleItems()
	m.list.SetItems(toListItems(visible))
	for i, it := range visible {
		if it.ID == selectID {
			m.list.Select(i)
			return
		}
	}
	if idx >= len(visible) {
		idx = len(visible) - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.list.Select(idx)
}

func (m Model) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return it.Item, true
}

func (m *Model) setStatus(msg string) {
	m.status, m.statusErr = msg, false
}

// report logs and shows a persistence failure. The in-memory change stands.
func (m *Model) report(action string, err error) {
	if err == nil {
		return
	}
	m.logger.Warn("save failed", zap.String("action", action), zap.Error(err))
	m.status, m.statusErr = action+": "+err.Error(), true
}

func (m *Model) resize() {
	m.help.Width = m.width
	// header (2) + input (1) + status (1) + help (1) + footer (1) + borders
	m.list.SetSize(m.width-4, max(m.height-10, 1))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tickMsg:
		m.now = time.Time(msg)
		return m, m.tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeFilter:
			return m.updateFilter(msg)
		case modeConfirmClear:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.statusErr = "", false
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.add.SetValue("")
		return m, m.add.Focus()
	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.filter.SetValue(m.store.Filter())
		m.filter.CursorEnd()
		return m, m.filter.Focus()
	case msg.String() == "esc":
		if m.store.Filter() != "" {
			m.store.SetFilter("")
			m.filter.SetValue("")
			m.refresh("")
		}
		return m, nil
	case key.Matches(msg, m.keys.MoveUp), key.Matches(msg, m.keys.MoveDown):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		dir := store.Down
		if key.Matches(msg, m.keys.MoveUp) {
			dir = store.Up
		}
		m.report("move", m.store.Move(it.ID, dir))
		m.refresh(it.ID)
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.report("delete", m.store.Delete(it.ID))
		m.refresh("")
		if !m.statusErr {
			m.setStatus("deleted")
		}
		return m, nil
	case key.Matches(msg, m.keys.ClearAll):
		if m.store.Len() == 0 {
			return m, nil
		}
		m.mode = modeConfirmClear
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.report("theme", m.prefs.ToggleTheme())
		return m, nil
	case key.Matches(msg, m.keys.AccentDec), key.Matches(msg, m.keys.AccentInc):
		step := accentStep
		if key.Matches(msg, m.keys.AccentDec) {
			step = -accentStep
		}
		hue := math.Mod(m.prefs.AccentHue()+step+360, 360)
		m.report("accent", m.prefs.SetAccentHue(hue))
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.copyText(it.Text); err != nil {
			m.logger.Debug("clipboard unavailable", zap.Error(err))
			m.status, m.statusErr = "copy: "+err.Error(), true
			return m, nil
		}
		m.setStatus("copied")
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.add.Value()
		m.add.SetValue("")
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.report("add", m.store.Add(text))
		if first := m.store.Items(); len(first) > 0 {
			m.refresh(first[0].ID)
		}
		return m, nil
	case "esc":
		m.mode = modeBrowse
		m.add.SetValue("")
		m.add.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeBrowse
		m.filter.Blur()
		return m, nil
	case "esc":
		m.mode = modeBrowse
		m.filter.SetValue("")
		m.filter.Blur()
		m.store.SetFilter("")
		m.refresh("")
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != m.store.Filter() {
		m.store.SetFilter(m.filter.Value())
		m.refresh("")
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	switch msg.String() {
	case "y", "Y":
		m.report("clear", m.store.ClearAll())
		m.refresh("")
		if !m.statusErr {
			m.setStatus("cleared")
		}
	default:
		m.setStatus("kept everything")
	}
	return m, nil
}

func (m Model) View() string {
	t := ui.Current()
	var b strings.Builder

	total, shown := m.store.Len(), len(m.list.Items())
	counts := fmt.Sprintf("%d items", total)
	if m.store.Filter() != "" {
		counts = fmt.Sprintf("%d of %d items", shown, total)
	}
	left := ui.TitleStyle().Render("Shortlist") + "  " + ui.MutedStyle().Render(counts)
	clock := ui.AccentStyle().Render(m.now.Format("15:04:05"))
	pad := m.width - 4 - lipgloss.Width(left) - lipgloss.Width(clock)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left + strings.Repeat(" ", pad) + clock + "\n\n")

	if shown == 0 {
		empty := t.Empty
		if m.store.Filter() != "" {
			empty = fmt.Sprintf("No items match %q.", m.store.Filter())
		}
		b.WriteString(ui.MutedStyle().Render(empty) + "\n")
	} else {
		b.WriteString(m.list.View() + "\n")
	}

	switch m.mode {
	case modeAdd:
		b.WriteString(m.add.View() + "\n")
	case modeFilter:
		b.WriteString(m.filter.View() + "\n")
	case modeConfirmClear:
		b.WriteString(ui.WarningStyle().Render(fmt.Sprintf("Delete all %d items? [y/N]", total)) + "\n")
	default:
		if f := m.store.Filter(); f != "" {
			b.WriteString(ui.MutedStyle().Render("filter: "+f+"  (esc to clear)") + "\n")
		}
	}

	if m.status != "" {
		style := ui.SuccessStyle()
		if m.statusErr {
			style = ui.ErrorStyle()
		}
		b.WriteString(style.Render(m.status) + "\n")
	}

	b.WriteString(m.help.View(m.keys) + "\n")
	b.WriteString(ui.MutedStyle().Render(fmt.Sprintf("%s theme · accent %s° · © %d", m.prefs.Theme(), m.prefs.Accent(), m.now.Year())))

	return ui.BorderStyle().Render(b.String())
}
