package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/srs-wizard/internal/editor"
	"github.com/dpshade/srs-wizard/internal/layout"
	"github.com/dpshade/srs-wizard/internal/models"
)

// formEntry is one input on a step form. A text field has one entry; a list field has one entry
// per list item.
type formEntry struct {
	field layout.Field
	index int // list item index, 0 for text fields

	input     textinput.Model
	area      textarea.Model
	multiline bool
}

func (e *formEntry) value() string {
	if e.multiline {
		return e.area.Value()
	}
	return e.input.Value()
}

func (e *formEntry) focus() tea.Cmd {
	if e.multiline {
		return e.area.Focus()
	}
	return e.input.Focus()
}

func (e *formEntry) blur() {
	if e.multiline {
		e.area.Blur()
		return
	}
	e.input.Blur()
}

// label is printed above the first entry of a field
func (e *formEntry) label() string {
	if e.field.IsList {
		return e.field.List.Label()
	}
	return e.field.Text.Label()
}

// StepForm edits the section of one wizard step. It is rebuilt from the record whenever the
// shape of the section changes (step change, list entry added or removed); keystrokes are
// written back to the record through the editor.
type StepForm struct {
	step    int
	entries []formEntry
	focused int
	width   int
}

// NewStepForm builds the form of a section step from the record. focus selects the entry that
// receives focus and is clamped to the form.
func NewStepForm(step int, record models.Record, width, focus int) *StepForm {
	f := &StepForm{step: step, width: width}
	if step < 0 || step >= models.ReviewStep {
		return f
	}

	for _, field := range layout.Fields(models.Section(step)) {
		if !field.IsList {
			f.entries = append(f.entries, f.newEntry(field, 0, field.Text.Placeholder(), record.Text(field.Text)))
			continue
		}
		for i, item := range record.List(field.List) {
			f.entries = append(f.entries, f.newEntry(field, i, field.List.Placeholder(i), item))
		}
	}

	if focus >= len(f.entries) {
		focus = len(f.entries) - 1
	}
	if focus < 0 {
		focus = 0
	}
	f.focused = focus
	if len(f.entries) > 0 {
		f.entries[f.focused].focus()
	}
	return f
}

func (f *StepForm) newEntry(field layout.Field, index int, placeholder, value string) formEntry {
	e := formEntry{field: field, index: index, multiline: field.Multiline}
	if field.Multiline {
		ta := textarea.New()
		ta.Placeholder = placeholder
		ta.CharLimit = 0
		ta.ShowLineNumbers = false
		ta.SetWidth(f.inputWidth())
		ta.SetHeight(3)
		ta.SetValue(value)
		e.area = ta
		return e
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.Width = f.inputWidth() - 2
	ti.SetValue(value)
	e.input = ti
	return e
}

func (f *StepForm) inputWidth() int {
	if f.width < 30 {
		return 30
	}
	return f.width
}

// Step returns the wizard step the form edits
func (f *StepForm) Step() int {
	return f.step
}

// Focused returns the index of the focused entry
func (f *StepForm) Focused() int {
	return f.focused
}

// Len returns the number of entries on the form
func (f *StepForm) Len() int {
	return len(f.entries)
}

// FocusedList reports the list field and item index under the cursor, if any
func (f *StepForm) FocusedList() (models.ListField, int, bool) {
	if len(f.entries) == 0 {
		return 0, 0, false
	}
	e := f.entries[f.focused]
	return e.field.List, e.index, e.field.IsList
}

// Update handles a message for the focused entry and returns the record with the entry's value
// written back
func (f *StepForm) Update(msg tea.Msg, record models.Record) (models.Record, tea.Cmd) {
	if len(f.entries) == 0 {
		return record, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab":
			return record, f.move(1)
		case "shift+tab":
			return record, f.move(-1)
		case "down", "enter":
			// Multiline entries keep arrow keys and enter for the text itself
			if !f.entries[f.focused].multiline {
				return record, f.move(1)
			}
		case "up":
			if !f.entries[f.focused].multiline {
				return record, f.move(-1)
			}
		}
	}

	e := &f.entries[f.focused]
	var cmd tea.Cmd
	if e.multiline {
		e.area, cmd = e.area.Update(msg)
	} else {
		e.input, cmd = e.input.Update(msg)
	}
	return f.writeBack(record, e), cmd
}

func (f *StepForm) writeBack(record models.Record, e *formEntry) models.Record {
	value := e.value()
	if !e.field.IsList {
		if record.Text(e.field.Text) == value {
			return record
		}
		return editor.SetText(record, e.field.Text, value)
	}

	items := record.List(e.field.List)
	if e.index < len(items) && items[e.index] == value {
		return record
	}
	updated, err := editor.Replace(record, e.field.List, e.index, value)
	if err != nil {
		return record
	}
	return updated
}

// move shifts focus by delta, wrapping around the form
func (f *StepForm) move(delta int) tea.Cmd {
	f.entries[f.focused].blur()
	f.focused = (f.focused + delta + len(f.entries)) % len(f.entries)
	return f.entries[f.focused].focus()
}

// Resize updates input widths based on window size
func (f *StepForm) Resize(width int) {
	f.width = width
	for i := range f.entries {
		if f.entries[i].multiline {
			f.entries[i].area.SetWidth(f.inputWidth())
		} else {
			f.entries[i].input.Width = f.inputWidth() - 2
		}
	}
}

// View renders the form. When height is positive the entries are windowed so the focused one
// stays visible.
func (f *StepForm) View(height int) string {
	if len(f.entries) == 0 {
		return StyleTextMuted.Render("Nothing to edit on this step.")
	}

	blocks := make([]string, len(f.entries))
	for i := range f.entries {
		blocks[i] = f.renderEntry(i)
	}

	if height <= 0 {
		return strings.Join(blocks, "\n")
	}

	start, end := f.focused, f.focused+1
	used := lipgloss.Height(blocks[f.focused])
	for {
		grown := false
		if end < len(blocks) && used+lipgloss.Height(blocks[end]) <= height {
			used += lipgloss.Height(blocks[end])
			end++
			grown = true
		}
		if start > 0 && used+lipgloss.Height(blocks[start-1]) <= height {
			start--
			used += lipgloss.Height(blocks[start])
			grown = true
		}
		if !grown {
			break
		}
	}

	top, bottom := CreateScrollIndicators(start > 0, end < len(blocks))
	parts := []string{}
	if start > 0 {
		parts = append(parts, top)
	}
	parts = append(parts, blocks[start:end]...)
	if end < len(blocks) {
		parts = append(parts, bottom)
	}
	return strings.Join(parts, "\n")
}

func (f *StepForm) renderEntry(i int) string {
	e := &f.entries[i]
	var lines []string

	if e.index == 0 {
		label := e.label()
		if i == f.focused {
			label = "▶ " + label
		}
		lines = append(lines, StyleFormLabel.Render(label))
	}

	widget := e.input.View()
	if e.multiline {
		widget = e.area.View()
	}
	if e.field.IsList {
		widget = StyleTextDim.Render(fmt.Sprintf("%2d.", e.index+1)) + " " + widget
	}
	lines = append(lines, AddFormPadding(widget))

	if isLastOfField(f.entries, i) {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func isLastOfField(entries []formEntry, i int) bool {
	return i == len(entries)-1 || entries[i+1].field != entries[i].field
}
