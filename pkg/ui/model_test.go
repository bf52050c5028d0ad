package ui

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/Masterminds/semver/v3"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlttj/pypisrc/pkg/app"
	"github.com/xlttj/pypisrc/pkg/config"
	"github.com/xlttj/pypisrc/pkg/logging"
	"github.com/xlttj/pypisrc/pkg/source"
)

type stubRunner struct {
	urls []string
	err  error
}

func (s *stubRunner) SetSource(_ context.Context, url string) error {
	s.urls = append(s.urls, url)
	return s.err
}

func (s *stubRunner) Version(context.Context) (*semver.Version, error) {
	return semver.NewVersion("24.0")
}

type stubClipboard struct{ text string }

func (s *stubClipboard) WriteAll(text string) error {
	s.text = text
	return nil
}

func newTestModel(t *testing.T) (*Model, *config.Editor, *stubRunner) {
	t.Helper()
	home := t.TempDir()
	paths, err := config.Locate("linux", func(k string) string {
		if k == "HOME" {
			return home
		}
		return ""
	})
	require.NoError(t, err)

	editor := config.NewEditor(paths)
	runner := &stubRunner{}
	actions := app.New(editor, runner, logging.Discard(),
		app.WithClipboard(&stubClipboard{}),
		app.WithOpener(func(string) error { return nil }),
	)
	return NewModel(actions, ""), editor, runner
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runAction executes the action half of a command batch and feeds the
// result back, the way the Bubble Tea runtime would.
func runAction(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		require.NotEmpty(t, batch)
		msg = batch[0]()
	}
	res, ok := msg.(resultMsg)
	require.True(t, ok, "expected resultMsg, got %T", msg)
	m.Update(res)
}

func TestButtonsFollowPresetTable(t *testing.T) {
	m, _, _ := newTestModel(t)
	presets := source.Presets()
	require.Len(t, m.buttons, len(presets))
	for i, p := range presets {
		assert.Equal(t, p.Label, m.buttons[i].label)
		assert.Equal(t, p.URL, m.buttons[i].preset.URL)
	}
}

func TestDefaultModeIsShell(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.Equal(t, app.ModeShell, m.Mode())

	m.Update(keyPress("tab"))
	assert.Equal(t, app.ModeConf, m.Mode())
	m.Update(keyPress("m"))
	assert.Equal(t, app.ModeShell, m.Mode())
}

func TestGridNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(keyPress("right"))
	assert.Equal(t, 1, m.cursor)
	m.Update(keyPress("right")) // already in last column
	assert.Equal(t, 1, m.cursor)
	m.Update(keyPress("down"))
	assert.Equal(t, 3, m.cursor)
	m.Update(keyPress("left"))
	assert.Equal(t, 2, m.cursor)
	m.Update(keyPress("up"))
	m.Update(keyPress("up")) // stays on first row
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 10; i++ {
		m.Update(keyPress("down"))
	}
	assert.Equal(t, 8, m.cursor, "odd button count ends on the last left cell")
}

func TestApplyShellModeShowsDialog(t *testing.T) {
	m, editor, runner := newTestModel(t)

	_, cmd := m.Update(keyPress("enter"))
	assert.True(t, m.busy)
	runAction(t, m, cmd)

	assert.False(t, m.busy)
	assert.Equal(t, []string{source.Presets()[0].URL}, runner.urls)
	assert.False(t, editor.Exists())
	assert.Equal(t, StateDialog, m.uiState)
	assert.Equal(t, app.KindSuccess, m.dialog.Kind)
	assert.Contains(t, m.View(), "Index URL changed to")

	m.Update(keyPress("enter"))
	assert.Equal(t, StateMain, m.uiState)
}

func TestApplyConfModeWritesFile(t *testing.T) {
	m, editor, runner := newTestModel(t)
	m.Update(keyPress("tab"))

	_, cmd := m.Update(keyPress("3"))
	runAction(t, m, cmd)

	assert.Empty(t, runner.urls)
	data, err := os.ReadFile(editor.Paths().File)
	require.NoError(t, err)
	assert.Equal(t, config.Render(source.Presets()[2].URL), string(data))
	assert.Equal(t, source.Presets()[2].URL, m.current)
	assert.Contains(t, m.viewMain(), source.Presets()[2].URL)
}

func TestApplyFailureShowsErrorDialog(t *testing.T) {
	m, _, runner := newTestModel(t)
	runner.err = errors.New("exit status 1")

	_, cmd := m.Update(keyPress("enter"))
	runAction(t, m, cmd)

	assert.Equal(t, StateDialog, m.uiState)
	assert.Equal(t, app.KindError, m.dialog.Kind)
	assert.Contains(t, m.View(), "exit status 1")

	// The error is only shown; the UI keeps running.
	_, cmd = m.Update(keyPress("esc"))
	assert.Nil(t, cmd)
	assert.Equal(t, StateMain, m.uiState)
}

func TestBackupWithoutConfigShowsError(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(keyPress("b"))
	runAction(t, m, cmd)

	assert.Equal(t, app.KindError, m.dialog.Kind)
	assert.ErrorIs(t, m.dialog.Err, config.ErrFileNotFound)
}

func TestOpenWithoutConfigShowsError(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(keyPress("o"))
	runAction(t, m, cmd)

	assert.Equal(t, StateDialog, m.uiState)
	assert.ErrorIs(t, m.dialog.Err, config.ErrFileNotFound)
}

func TestExportSetsStatusLine(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(keyPress("e"))
	runAction(t, m, cmd)

	assert.Equal(t, StateMain, m.uiState)
	assert.Contains(t, m.statusMsg, "Copied 9 mirrors")
}

func TestAboutDialog(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(keyPress("?"))
	runAction(t, m, cmd)

	assert.Equal(t, app.KindInfo, m.dialog.Kind)
	assert.Contains(t, m.dialog.Message, "pip 24.0.0")
}

func TestBusyIgnoresActions(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(keyPress("enter"))
	require.NotNil(t, cmd)

	_, second := m.Update(keyPress("b"))
	assert.Nil(t, second)
	_, quit := m.Update(keyPress("q"))
	assert.NotNil(t, quit, "quit still works while busy")
}

func TestViewShowsModeAndButtons(t *testing.T) {
	m, _, _ := newTestModel(t)
	view := m.View()

	assert.Contains(t, view, TitleApp)
	assert.Contains(t, view, "(•) "+LabelModeShell)
	assert.Contains(t, view, "( ) "+LabelModeConf)
	assert.Contains(t, view, "index-url: (not set)")
	assert.Contains(t, view, TitleOther)
	assert.Contains(t, view, "[b] backup config")
	assert.Contains(t, view, "[e] export mirrors")
	for _, p := range source.Presets() {
		assert.Contains(t, view, p.Label)
	}
}
