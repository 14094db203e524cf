package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pagerModel shows pre-rendered content in a scrollable viewport.
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func newPagerModel(title, content string) pagerModel {
	return pagerModel{title: title, content: content}
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Header and footer take one line each.
		h := max(0, msg.Height-2)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) || key.Matches(msg, keys.Back) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return ""
	}
	header := viewportTitleStyle.Render(m.title)
	pct := previewPctStyle.Render(fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100))
	gap := max(0, m.viewport.Width-lipgloss.Width(header)-lipgloss.Width(pct))
	top := header + lipgloss.NewStyle().Width(gap).Render("") + pct

	footer := helpStyle.Render(fmt.Sprintf("%s/%s scroll • %s quit",
		keys.Up.Help().Key, keys.Down.Help().Key, keys.Quit.Help().Key))
	return lipgloss.JoinVertical(lipgloss.Left, top, m.viewport.View(), footer)
}

// Page shows content full-screen until the user quits.
func Page(title, content string, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(newPagerModel(title, content),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running pager: %w", err)
	}
	return nil
}
