package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/shortlist/internal/model"
	"github.com/Makepad-fr/shortlist/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct{ model.Item }

func (i listItem) FilterValue() string { return i.Text }

func toListItems(items []model.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{it})
	}
	return out
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	controls := ui.MutedStyle().Render(fmt.Sprintf("%s %s %s", t.SymUp, t.SymDown, t.SymDelete))
	prefix := "  "
	bullet := ui.AccentStyle().Render(t.Bullet)
	textStyle := ui.TextStyle()
	if index == m.Index() {
		prefix = ui.SelectedStyle().Render("> ")
		textStyle = ui.SelectedStyle()
	}

	room := m.Width() - lipgloss.Width(prefix) - lipgloss.Width(bullet) - lipgloss.Width(controls) - 3
	text := textStyle.Render(ui.Truncate(it.Text, room))

	gap := room - lipgloss.Width(text)
	if gap < 0 {
		gap = 0
	}
	fmt.Fprintf(w, "%s%s %s %*s%s", prefix, bullet, text, gap+1, "", controls)
}
