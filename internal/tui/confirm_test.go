package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press feeds msg to m and returns the resulting confirmModel and command.
func press(t *testing.T, m confirmModel, msg tea.Msg) (confirmModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	cm, ok := next.(confirmModel)
	if !ok {
		t.Fatalf("Update returned %T, want confirmModel", next)
	}
	return cm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewConfirmModel(t *testing.T) {
	m := newConfirmModel("Uninstall demo?")
	if m.focusYes {
		t.Error("focus should default to No")
	}
	if m.done || m.confirmed {
		t.Error("new confirm should not be answered")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestConfirmUpdate_Accelerators(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want bool
	}{
		{"y", runeKey('y'), true},
		{"Y", runeKey('Y'), true},
		{"n", runeKey('n'), false},
		{"N", runeKey('N'), false},
		{"q", runeKey('q'), false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, false},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := press(t, newConfirmModel("Delete?"), tt.msg)
			if !m.done {
				t.Error("dialog should be answered")
			}
			if m.confirmed != tt.want {
				t.Errorf("confirmed = %v, want %v", m.confirmed, tt.want)
			}
			if !isQuit(cmd) {
				t.Error("answering should quit the program")
			}
		})
	}
}

func TestConfirmUpdate_EnterDefaultsToNo(t *testing.T) {
	m, cmd := press(t, newConfirmModel("Delete?"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.confirmed {
		t.Error("enter on default focus should cancel")
	}
	if !isQuit(cmd) {
		t.Error("enter should quit")
	}
}

func TestConfirmUpdate_NavigateThenEnter(t *testing.T) {
	m := newConfirmModel("Delete?")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.focusYes {
		t.Fatal("tab should move focus to Yes")
	}
	if cmd != nil {
		t.Error("navigation should not produce a command")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.focusYes {
		t.Fatal("left should toggle focus back to No")
	}

	m, _ = press(t, m, runeKey('l'))
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.confirmed {
		t.Error("enter on Yes should confirm")
	}
	if !isQuit(cmd) {
		t.Error("enter should quit")
	}
}

func TestConfirmUpdate_IgnoresOtherKeys(t *testing.T) {
	m, cmd := press(t, newConfirmModel("Delete?"), runeKey('x'))
	if m.done {
		t.Error("unrelated key should not answer the dialog")
	}
	if cmd != nil {
		t.Error("unrelated key should not produce a command")
	}
}

func TestConfirmUpdate_WindowSize(t *testing.T) {
	m, _ := press(t, newConfirmModel("Delete?"), tea.WindowSizeMsg{Width: 80, Height: 24})
	if m.width != 80 || m.height != 24 {
		t.Errorf("size = %dx%d, want 80x24", m.width, m.height)
	}
}

func TestConfirmView(t *testing.T) {
	m := newConfirmModel("Uninstall demo?")
	view := m.View()
	for _, want := range []string{"Uninstall demo?", "Yes", "No"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = press(t, m, runeKey('n'))
	if m.View() != "" {
		t.Error("view should be empty once answered")
	}
}

func TestConfirm_Program(t *testing.T) {
	var out strings.Builder
	ok, err := Confirm("Uninstall demo?", strings.NewReader("y"), &out)
	if err != nil {
		t.Fatalf("Confirm() error: %v", err)
	}
	if !ok {
		t.Error("expected confirmation from scripted input")
	}
}
