package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/fukushu-cli/fukushu/internal/stats"
	"github.com/fukushu-cli/fukushu/internal/ui/theme"
)

// StatsBar shows session progress: completed items, remaining items and the
// running percent-correct, with a horizontal completion bar underneath.
type StatsBar struct {
	Session stats.SessionStats
	Width   int
}

// NewStatsBar creates a stats bar for the given session snapshot.
func NewStatsBar(s stats.SessionStats, width int) StatsBar {
	return StatsBar{Session: s, Width: width}
}

// View renders the stats bar.
func (b StatsBar) View() string {
	s := b.Session

	left := lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("✓ %d", s.Complete))
	mid := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("◌ %d left", s.Remaining))
	right := lipgloss.NewStyle().Foreground(theme.Primary).
		Render(fmt.Sprintf("%d%%", s.PercentCorrect()))

	gap := b.Width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	row := left + strings.Repeat(" ", gap/2) + mid + strings.Repeat(" ", gap-gap/2) + right

	barWidth := b.Width
	if barWidth < 4 {
		barWidth = 4
	}
	filled := int(float64(barWidth) * float64(s.PercentComplete()) / 100)
	if filled > barWidth {
		filled = barWidth
	}
	filledStr := lipgloss.NewStyle().
		Background(theme.Primary).
		Render(strings.Repeat(" ", filled))
	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled))

	return row + "\n" + filledStr + emptyStr
}
