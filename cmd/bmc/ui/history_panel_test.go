package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Roman01-info/bmc-v3/internal/history"
)

func panelWithItems(n int) HistoryPanel {
	p := NewHistoryPanel(NewStyles(LightTheme()))
	items := make([]history.Item, n)
	for i := range items {
		items[i] = history.Item{ID: string(rune('a' + i)), Preview: "plan", Timestamp: "2026-08-29T10:00:00Z"}
	}
	p.SetItems(items)
	return p
}

func TestPanelCursorMovement(t *testing.T) {
	p := panelWithItems(3)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown}) // clamped at last item

	item, ok := p.Selected()
	if !ok || item.ID != "c" {
		t.Fatalf("expected last item selected, got %+v ok=%v", item, ok)
	}

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if item, _ := p.Selected(); item.ID != "b" {
		t.Fatalf("expected cursor to move up, got %s", item.ID)
	}
}

func TestPanelCursorClampsAfterShrink(t *testing.T) {
	p := panelWithItems(3)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})

	p.SetItems([]history.Item{{ID: "only"}})
	if item, ok := p.Selected(); !ok || item.ID != "only" {
		t.Fatalf("cursor not clamped: %+v ok=%v", item, ok)
	}

	p.SetItems(nil)
	if _, ok := p.Selected(); ok {
		t.Fatal("empty panel should have no selection")
	}
}

func TestPanelViewEmptyState(t *testing.T) {
	p := NewHistoryPanel(NewStyles(LightTheme()))
	p.SetItems(nil)

	if view := p.View(); !strings.Contains(view, "কোনো সংরক্ষিত প্ল্যান নেই") {
		t.Fatal("empty panel should show placeholder text")
	}
}
