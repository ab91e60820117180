package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelProgress(t *testing.T) {
	updates := make(chan Progress, 1)
	m := New(updates)

	next, _ := m.Update(progressMsg(Progress{Done: 3, Total: 10}))
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "3/10") {
		t.Errorf("view should show progress, got %q", view)
	}
}

func TestModelFinish(t *testing.T) {
	m := New(make(chan Progress))

	next, cmd := m.Update(finishedMsg{})
	m = next.(Model)

	if !m.finished {
		t.Error("model should mark completion")
	}
	if cmd == nil {
		t.Fatal("completion should quit the program")
	}
	if !strings.Contains(m.View(), "done") {
		t.Errorf("finished view should say so, got %q", m.View())
	}
}

func TestModelQuitKeys(t *testing.T) {
	m := New(make(chan Progress))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c should quit")
	}
}

func TestModelDrainsChannel(t *testing.T) {
	updates := make(chan Progress, 2)
	updates <- Progress{Done: 1, Total: 2}
	close(updates)

	m := New(updates)

	msg := m.Init()()
	p, ok := msg.(progressMsg)
	if !ok {
		t.Fatalf("expected a progress message, got %T", msg)
	}
	if p.Done != 1 {
		t.Errorf("unexpected progress %+v", p)
	}

	next, _ := m.Update(msg)
	m = next.(Model)

	if _, ok := m.wait()().(finishedMsg); !ok {
		t.Error("closed channel should finish the model")
	}
}
