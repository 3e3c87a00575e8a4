package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#60A5FA") // Blue
	Meaning   = lipgloss.Color("#E5E7EB") // Light gray
	Reading   = lipgloss.Color("#1F2937") // Ink
	Correct   = lipgloss.Color("#34D399") // Green
	Incorrect = lipgloss.Color("#F87171") // Red
	Warning   = lipgloss.Color("#FBBF24") // Amber
	Lightning = lipgloss.Color("#FDE047") // Yellow
	Text      = lipgloss.Color("#F9FAFB") // White
	TextDim   = lipgloss.Color("#9CA3AF") // Gray
	BgCard    = lipgloss.Color("#111827") // Near black
	Border    = lipgloss.Color("#374151") // Slate
)

// Typography
var (
	Characters = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Align(lipgloss.Center)

	QuestionLabel = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Banner = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	Note = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Cards
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	CorrectCard = Card.BorderForeground(Correct)

	IncorrectCard = Card.BorderForeground(Incorrect)
)
