package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fukushu-cli/fukushu/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput with verdict-aware styling. After a
// submission it locks and renders the answer on a colored bar until the
// question is committed or retyped.
type AnswerInput struct {
	Model    textinput.Model
	Width    int
	locked   bool
	passed   bool
	accurate bool
	shown    string
}

// NewAnswerInput creates a new styled answer input.
func NewAnswerInput(placeholder string, width int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	return AnswerInput{
		Model: ti,
		Width: width,
	}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages. Keystrokes are ignored while the input is locked.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.locked {
		return a, nil
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the input, or the locked verdict bar after submission.
func (a AnswerInput) View() string {
	if !a.locked {
		return a.Model.View()
	}

	bg := theme.Correct
	if !a.passed {
		bg = theme.Incorrect
	}
	bar := lipgloss.NewStyle().
		Background(bg).
		Foreground(theme.Reading).
		Bold(true).
		Width(a.Width).
		Align(lipgloss.Center).
		Render(a.shown)
	if a.passed && !a.accurate {
		bar += " " + lipgloss.NewStyle().Foreground(theme.Warning).Render("≈")
	}
	return bar
}

// Value returns the current input value.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Lock freezes the input and shows the given answer with verdict coloring.
// The shown answer may differ from what was typed when an override replaced it.
func (a *AnswerInput) Lock(shown string, passed, accurate bool) {
	a.locked = true
	a.shown = shown
	a.passed = passed
	a.accurate = accurate
}

// Mark updates the verdict coloring of a locked input without changing
// the shown text.
func (a *AnswerInput) Mark(passed, accurate bool) {
	a.passed = passed
	a.accurate = accurate
}

// Unlock clears the verdict bar and restores typing with an empty value.
func (a *AnswerInput) Unlock() {
	a.locked = false
	a.shown = ""
	a.Model.SetValue("")
}

// Locked reports whether the input is frozen on a verdict.
func (a AnswerInput) Locked() bool {
	return a.locked
}
