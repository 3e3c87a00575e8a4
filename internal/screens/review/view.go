package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/fukushu-cli/fukushu/internal/subject"
	"github.com/fukushu-cli/fukushu/internal/ui/components"
	"github.com/fukushu-cli/fukushu/internal/ui/layout"
	"github.com/fukushu-cli/fukushu/internal/ui/theme"
)

// View renders the screen content.
func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.done {
		return s.renderSummary()
	}
	return s.renderQuestion()
}

func renderError(width, height int, msg string) string {
	card := theme.IncorrectCard.Render(
		lipgloss.NewStyle().Foreground(theme.Incorrect).Bold(true).Render("Error") +
			"\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Render(msg))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *Screen) renderQuestion() string {
	subj := s.currentSubject()
	if subj == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(theme.Characters.Width(layout.ContentWidth).Render(subj.Characters))
	b.WriteString("\n")
	b.WriteString(theme.QuestionLabel.Width(layout.ContentWidth).Render(questionLabel(subj.Kind, s.ctrl.QuestionType())))
	b.WriteString("\n\n")

	inputView := s.input.View()
	if s.shake {
		inputView = "  " + inputView
	}
	b.WriteString(inputView)
	b.WriteString("\n")

	if s.banner != "" {
		b.WriteString("\n")
		b.WriteString(theme.Banner.Width(layout.ContentWidth).Align(lipgloss.Center).Render(s.banner))
		b.WriteString("\n")
	}
	if s.note != "" {
		b.WriteString("\n")
		b.WriteString(theme.Note.Width(layout.ContentWidth).Align(lipgloss.Center).Render(s.note))
		b.WriteString("\n")
	}
	if s.delayed {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Width(layout.ContentWidth).Align(lipgloss.Center).Render("· · ·"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(components.NewStatsBar(s.agg.Session(), layout.ContentWidth).View())

	if s.popup != nil {
		b.WriteString("\n\n")
		b.WriteString(s.renderPopup())
	}

	return theme.Card.Render(b.String())
}

func (s *Screen) renderPopup() string {
	arrow := "↓"
	color := theme.Incorrect
	if s.popup.Up() {
		arrow = "↑"
		color = theme.Correct
	}
	text := fmt.Sprintf("%s %s → %s", arrow, s.popup.From.Name(), s.popup.To.Name())
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Width(layout.ContentWidth).
		Align(lipgloss.Center).
		Render(text)
}

func (s *Screen) renderSummary() string {
	sess := s.agg.Session()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Width(layout.ContentWidth).Align(lipgloss.Center).Render("Session Complete"))
	b.WriteString("\n\n")

	row := func(label string, value string) {
		l := lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
		v := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(value)
		gap := layout.ContentWidth - lipgloss.Width(l) - lipgloss.Width(v)
		if gap < 1 {
			gap = 1
		}
		b.WriteString(l + strings.Repeat(" ", gap) + v + "\n")
	}

	row("Items completed", fmt.Sprintf("%d", sess.Complete))
	row("Answers given", fmt.Sprintf("%d", sess.Answered))
	row("Correct", fmt.Sprintf("%d", sess.Correct))
	row("Accuracy", fmt.Sprintf("%d%%", sess.PercentCorrect()))

	b.WriteString("\n")
	b.WriteString(theme.Hint.Width(layout.ContentWidth).Align(lipgloss.Center).Render("Press Enter to finish"))

	return theme.Card.Render(b.String())
}

func questionLabel(kind subject.Kind, qtype subject.QuestionType) string {
	var kindName string
	switch kind {
	case subject.KindRadical:
		kindName = "Radical"
	case subject.KindKanji:
		kindName = "Kanji"
	case subject.KindVocabulary:
		kindName = "Vocabulary"
	case subject.KindKanaVocabulary:
		kindName = "Kana Vocabulary"
	default:
		kindName = string(kind)
	}

	if kind == subject.KindRadical {
		return kindName + " Name"
	}
	if qtype == subject.QuestionReading {
		return kindName + " Reading"
	}
	return kindName + " Meaning"
}
