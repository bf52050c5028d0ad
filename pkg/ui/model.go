package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xlttj/pypisrc/pkg/app"
	"github.com/xlttj/pypisrc/pkg/source"
)

// Model represents the state of the UI
type Model struct {
	uiState UIState

	actions *app.Actions
	mode    app.Mode

	buttons []button
	cursor  int

	// index-url read back from the config file
	current string

	// Result shown while in StateDialog
	dialog app.Result
	// Status/info message (non-dialog feedback)
	statusMsg string

	// One action runs at a time
	busy    bool
	spinner spinner.Model

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel builds the UI over actions, starting in mode.
func NewModel(actions *app.Actions, mode app.Mode) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTitle))

	if mode == "" {
		mode = app.DefaultMode
	}

	return &Model{
		uiState: StateMain,
		actions: actions,
		mode:    mode,
		buttons: buildButtons(actions.Presets()),
		current: actions.Current(),
		spinner: sp,
		keys:    defaultKeyMap(),
		help:    help.New(),
		width:   80, // Default width, will be updated on first WindowSizeMsg
		height:  24,
	}
}

// Mode returns the active apply mode.
func (m *Model) Mode() app.Mode {
	return m.mode
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		return m.handleResult(msg.result)

	case tea.KeyMsg:
		// Global shortcut that works in any state
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.uiState {
		case StateMain:
			return m.updateMain(msg)
		case StateDialog:
			return m.updateDialog(msg)
		}
	}

	return m, nil
}

// handleResult stores a finished action's outcome.
func (m *Model) handleResult(res app.Result) (tea.Model, tea.Cmd) {
	m.busy = false
	m.current = m.actions.Current()

	if res.Kind == app.KindStatus {
		m.statusMsg = res.Message
		return m, nil
	}
	m.statusMsg = ""
	m.dialog = res
	m.uiState = StateDialog
	return m, nil
}

// run starts action in the background and marks the model busy.
func (m *Model) run(action func() app.Result) tea.Cmd {
	m.busy = true
	m.statusMsg = ""
	return tea.Batch(
		func() tea.Msg { return resultMsg{result: action()} },
		m.spinner.Tick,
	)
}

func (m *Model) applyCmd(p source.Preset) tea.Cmd {
	mode := m.mode
	return m.run(func() app.Result {
		return m.actions.Apply(context.Background(), mode, p)
	})
}

func (m *Model) aboutCmd() tea.Cmd {
	return m.run(func() app.Result {
		return m.actions.About(context.Background())
	})
}
