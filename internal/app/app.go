package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/fukushu-cli/fukushu/internal/screens/review"
	"github.com/fukushu-cli/fukushu/internal/ui/layout"
)

// AppModel is the root Bubble Tea model. It hosts the single review
// screen and owns the frame chrome.
type AppModel struct {
	screen *review.Screen
	width  int
	height int
}

func newAppModel(screen *review.Screen) AppModel {
	return AppModel{screen: screen}
}

func (m AppModel) Init() tea.Cmd {
	return m.screen.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.screen.Title(), m.lightning(), m.showBolt(), m.width)
	footer := layout.RenderFooter(m.screen.KeyHints(), m.width)
	content := m.screen.View(m.width, m.height)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) lightning() bool {
	return m.screen.Lightning()
}

func (m AppModel) showBolt() bool {
	return m.screen.ShowBolt()
}

// Run starts the Bubble Tea program over the given review screen.
func Run(screen *review.Screen) error {
	p := tea.NewProgram(newAppModel(screen))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
