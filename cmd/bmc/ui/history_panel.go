package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Roman01-info/bmc-v3/internal/history"
)

// HistoryPanel lists saved plans for restore or delete.
type HistoryPanel struct {
	styles Styles
	items  []history.Item
	cursor int
	width  int
}

func NewHistoryPanel(styles Styles) HistoryPanel {
	return HistoryPanel{styles: styles, width: 60}
}

// SetItems replaces the listed plans and clamps the cursor.
func (p *HistoryPanel) SetItems(items []history.Item) {
	p.items = items
	if p.cursor >= len(items) {
		p.cursor = len(items) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *HistoryPanel) SetWidth(w int) { p.width = w }

// Selected returns the plan under the cursor.
func (p HistoryPanel) Selected() (history.Item, bool) {
	if len(p.items) == 0 {
		return history.Item{}, false
	}
	return p.items[p.cursor], true
}

// Update handles cursor movement. Restore and delete keys are handled by the
// owning model since they mutate application state.
func (p HistoryPanel) Update(msg tea.Msg) (HistoryPanel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	}
	return p, nil
}

// View renders the panel.
func (p HistoryPanel) View() string {
	title := p.styles.Title.Render("পূর্ববর্তী প্ল্যান (History)")

	if len(p.items) == 0 {
		empty := p.styles.Muted.Render("কোনো সংরক্ষিত প্ল্যান নেই")
		return p.styles.Panel.Width(p.width).Render(title + "\n" + empty)
	}

	var rows []string
	for i, item := range p.items {
		ts := item.Timestamp
		if t, err := time.Parse(time.RFC3339, item.Timestamp); err == nil {
			ts = t.Local().Format("02 Jan 2006 15:04")
		}
		line := fmt.Sprintf("%s  %s", p.styles.Muted.Render(ts), item.Preview)
		if i == p.cursor {
			line = p.styles.Selected.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	hint := p.styles.Muted.Render("↑/↓: move • enter: restore • x: delete • esc: close")
	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, append(rows, hint)...)...)
	return p.styles.Panel.Width(p.width).Render(body)
}
