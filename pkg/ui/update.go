package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// updateMain handles keys on the main view
func (m *Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	// Ignore everything else until the running action reports back
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-GridColumns)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(GridColumns)
	case key.Matches(msg, m.keys.Left):
		if m.cursor%GridColumns > 0 {
			m.moveCursor(-1)
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%GridColumns < GridColumns-1 {
			m.moveCursor(1)
		}
	case key.Matches(msg, m.keys.Mode):
		m.mode = m.mode.Toggle()
		m.statusMsg = ""
	case key.Matches(msg, m.keys.Apply):
		if len(m.buttons) == 0 {
			return m, nil
		}
		return m, m.applyCmd(m.buttons[m.cursor].preset)
	case key.Matches(msg, m.keys.Backup):
		return m, m.run(m.actions.Backup)
	case key.Matches(msg, m.keys.Open):
		return m, m.run(m.actions.OpenConfig)
	case key.Matches(msg, m.keys.Export):
		return m, m.run(m.actions.Export)
	case key.Matches(msg, m.keys.About):
		return m, m.aboutCmd()
	default:
		// 1-9 picks a mirror directly
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(m.buttons) {
			m.cursor = n - 1
			return m, m.applyCmd(m.buttons[m.cursor].preset)
		}
	}
	return m, nil
}

// updateDialog handles keys while a result dialog is open
func (m *Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Dismiss) {
		m.uiState = StateMain
		m.dialog.Title = ""
		m.dialog.Message = ""
		return m, nil
	}
	if msg.String() == "q" {
		return m, tea.Quit
	}
	return m, nil
}

// moveCursor shifts the grid selection by delta, staying on the grid.
func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.buttons) {
		return
	}
	m.cursor = next
}
