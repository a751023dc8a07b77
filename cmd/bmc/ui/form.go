package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Roman01-info/bmc-v3/internal/canvas"
)

const fieldHeight = 3

// Form is the nine-block canvas entry form. Tab and Shift+Tab move between
// blocks; the focused block gets an accent border.
type Form struct {
	styles Styles
	areas  []textarea.Model
	focus  int
	width  int
}

// NewForm builds an empty form with one textarea per canvas block.
func NewForm(styles Styles) Form {
	areas := make([]textarea.Model, len(canvas.Fields))
	for i, f := range canvas.Fields {
		ta := textarea.New()
		ta.Placeholder = canvas.Labels[f].Description
		ta.SetHeight(fieldHeight)
		ta.CharLimit = 0
		ta.ShowLineNumbers = false
		areas[i] = ta
	}
	form := Form{styles: styles, areas: areas, width: 80}
	form.areas[0].Focus()
	return form
}

// Data collects the current block values.
func (f Form) Data() canvas.CanvasData {
	var d canvas.CanvasData
	for i, field := range canvas.Fields {
		d.Set(field, f.areas[i].Value())
	}
	return d
}

// SetData replaces all block values, e.g. when restoring a saved plan.
func (f *Form) SetData(d canvas.CanvasData) {
	for i, field := range canvas.Fields {
		f.areas[i].SetValue(d.Get(field))
	}
}

// Reset clears every block and returns focus to the first one.
func (f *Form) Reset() {
	for i := range f.areas {
		f.areas[i].Reset()
		f.areas[i].Blur()
	}
	f.focus = 0
	f.areas[0].Focus()
}

// SetWidth resizes all textareas.
func (f *Form) SetWidth(w int) {
	f.width = w
	inner := w - 6
	if inner < 20 {
		inner = 20
	}
	for i := range f.areas {
		f.areas[i].SetWidth(inner)
	}
}

// Focused reports the index of the focused block.
func (f Form) Focused() int { return f.focus }

func (f *Form) moveFocus(delta int) tea.Cmd {
	f.areas[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.areas)) % len(f.areas)
	return f.areas[f.focus].Focus()
}

// Update routes key input to the focused textarea and handles block
// navigation.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyTab:
			return f, f.moveFocus(1)
		case tea.KeyShiftTab:
			return f, f.moveFocus(-1)
		}
	}

	var cmd tea.Cmd
	f.areas[f.focus], cmd = f.areas[f.focus].Update(msg)
	return f, cmd
}

// View renders all nine blocks stacked vertically.
func (f Form) View() string {
	var blocks []string
	for i, field := range canvas.Fields {
		label := f.styles.FieldLabel.Render(canvas.Labels[field].Label)
		box := f.styles.FieldBlurred
		if i == f.focus {
			box = f.styles.FieldFocused
			// The placeholder disappears once text is typed; keep the
			// prompt visible next to the focused block.
			label += " " + f.styles.FieldHint.Render(canvas.Labels[field].Description)
		}
		blocks = append(blocks, label+"\n"+box.Render(f.areas[i].View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
