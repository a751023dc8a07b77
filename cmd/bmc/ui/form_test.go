package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Roman01-info/bmc-v3/internal/canvas"
)

func TestFormDataRoundTrip(t *testing.T) {
	f := NewForm(NewStyles(LightTheme()))

	want := canvas.CanvasData{
		KeyPartners:      "স্থানীয় সরবরাহকারী",
		CustomerSegments: "ছোট ব্যবসা",
	}
	f.SetData(want)

	got := f.Data()
	if got != want {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestFormFocusCycling(t *testing.T) {
	f := NewForm(NewStyles(LightTheme()))

	if f.Focused() != 0 {
		t.Fatalf("initial focus = %d", f.Focused())
	}

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	if f.Focused() != 1 {
		t.Fatalf("after tab focus = %d", f.Focused())
	}

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if want := len(canvas.Fields) - 1; f.Focused() != want {
		t.Fatalf("shift+tab should wrap to %d, got %d", want, f.Focused())
	}
}

func TestFormTypingFillsFocusedBlock(t *testing.T) {
	f := NewForm(NewStyles(LightTheme()))

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab}) // move to key activities
	for _, r := range "ডেলিভারি" {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	if got := f.Data().KeyActivities; got != "ডেলিভারি" {
		t.Fatalf("typed text landed in wrong block: %+v", f.Data())
	}
}

func TestFormBlocksAreNotLengthCapped(t *testing.T) {
	f := NewForm(NewStyles(LightTheme()))

	long := strings.Repeat("ক", 5000)
	f.SetData(canvas.CanvasData{KeyPartners: long})

	if got := f.Data().KeyPartners; got != long {
		t.Fatalf("long value was truncated: %d runes survived", len([]rune(got)))
	}
}

func TestFormResetClearsAllBlocks(t *testing.T) {
	f := NewForm(NewStyles(LightTheme()))
	f.SetData(canvas.CanvasData{ValuePropositions: "x", Channels: "y"})

	f.Reset()

	if f.Data().NonEmpty() {
		t.Fatal("reset form should be empty")
	}
	if f.Focused() != 0 {
		t.Fatalf("reset should focus the first block, got %d", f.Focused())
	}
}

func TestFormViewShowsAllLabels(t *testing.T) {
	f := NewForm(NewStyles(LightTheme()))
	f.SetWidth(100)

	view := f.View()
	for _, field := range canvas.Fields {
		if !strings.Contains(view, canvas.Labels[field].Label) {
			t.Errorf("view missing label for %s", field)
		}
	}
}

func TestFormViewShowsHintForFocusedBlock(t *testing.T) {
	f := NewForm(NewStyles(LightTheme()))
	f.SetWidth(100)
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})

	// Once the block has text the placeholder is gone; the hint next to
	// the label must still show the prompt.
	for _, r := range "ডেলিভারি" {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	focused := canvas.Fields[f.Focused()]
	if !strings.Contains(f.View(), canvas.Labels[focused].Description) {
		t.Errorf("view missing hint for focused block %s", focused)
	}
}
