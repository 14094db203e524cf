package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmModel is a yes/no dialog rendered as a bordered box.
//
// Navigation: left/right/tab/shift+tab move focus between Yes and No.
// Enter activates the focused button. y/n/esc are shortcut accelerators.
// Focus starts on No since the prompt guards destructive actions.
type confirmModel struct {
	message   string
	focusYes  bool
	done      bool
	confirmed bool

	width  int
	height int
}

func newConfirmModel(message string) confirmModel {
	return confirmModel{message: message}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, confirmYesKey):
			return m.finish(true)
		case key.Matches(msg, confirmNoKey), key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
			return m.finish(false)
		case key.Matches(msg, keys.Enter):
			return m.finish(m.focusYes)
		case key.Matches(msg, confirmLeft), key.Matches(msg, confirmRight),
			key.Matches(msg, confirmTab), key.Matches(msg, confirmShiftTab):
			m.focusYes = !m.focusYes
		}
	}
	return m, nil
}

func (m confirmModel) finish(confirmed bool) (tea.Model, tea.Cmd) {
	m.done = true
	m.confirmed = confirmed
	return m, tea.Quit
}

// View renders the message and Yes / No buttons. Nothing is drawn once the
// user has answered so the prompt does not linger in the scrollback.
func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	question := lipgloss.NewStyle().
		Width(40).
		Align(lipgloss.Center).
		Render(m.message)

	var yesBtn, noBtn string
	if m.focusYes {
		yesBtn = dialogActiveButtonStyle.Render("Yes")
		noBtn = dialogButtonStyle.Render("No")
	} else {
		yesBtn = dialogButtonStyle.Render("Yes")
		noBtn = dialogActiveButtonStyle.Render("No")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yesBtn, "  ", noBtn)
	ui := lipgloss.JoinVertical(lipgloss.Center, question, "", buttons)
	return dialogBoxStyle.Render(ui) + "\n"
}

// Confirm shows message in a yes/no dialog reading keys from in and
// drawing to out. It reports whether the user chose Yes.
func Confirm(message string, in io.Reader, out io.Writer) (bool, error) {
	p := tea.NewProgram(newConfirmModel(message), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("running confirm prompt: %w", err)
	}
	m, ok := final.(confirmModel)
	if !ok {
		return false, nil
	}
	return m.confirmed, nil
}

// Key bindings for the confirm dialog (not part of the shared keyMap).
var (
	confirmYesKey = key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	)
	confirmNoKey = key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "cancel"),
	)
	confirmLeft = key.NewBinding(
		key.WithKeys("left", "h"),
	)
	confirmRight = key.NewBinding(
		key.WithKeys("right", "l"),
	)
	confirmTab = key.NewBinding(
		key.WithKeys("tab"),
	)
	confirmShiftTab = key.NewBinding(
		key.WithKeys("shift+tab"),
	)
)
