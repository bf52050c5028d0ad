package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/xlttj/pypisrc/pkg/app"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTitle)).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelp))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Width(ButtonWidth).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(ColorBorder))

	selectedButtonStyle = buttonStyle.
				Foreground(lipgloss.Color(ColorSelectedFg)).
				Background(lipgloss.Color(ColorSelectedBg)).
				BorderForeground(lipgloss.Color(ColorSelectedBg))
)

// View renders the current model state
func (m *Model) View() string {
	switch m.uiState {
	case StateDialog:
		return m.viewDialog()
	case StateMain:
		return m.viewMain()
	}
	return "Unknown state"
}

// viewMain renders the mode toggle, mirror grid and footer
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(TitleApp))
	b.WriteString("\n")
	current := m.current
	if current == "" {
		current = "(not set)"
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("index-url: %s", current)))
	b.WriteString("\n\n")

	b.WriteString(m.viewMode())
	b.WriteString("\n")
	b.WriteString(m.viewGrid())
	b.WriteString("\n")
	b.WriteString(m.viewOther())
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + " Working...")
	case m.statusMsg != "":
		b.WriteString(okStyle.Render(m.statusMsg))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *Model) viewMode() string {
	radio := func(on bool, label string) string {
		if on {
			return "(•) " + label
		}
		return "( ) " + label
	}
	body := titleStyle.Render(TitleMode) + "\n" +
		radio(m.mode == app.ModeShell, LabelModeShell) + "\n" +
		radio(m.mode == app.ModeConf, LabelModeConf)
	return sectionStyle.Render(body)
}

func (m *Model) viewGrid() string {
	var rows []string
	for start := 0; start < len(m.buttons); start += GridColumns {
		var cells []string
		for i := start; i < start+GridColumns && i < len(m.buttons); i++ {
			label := fmt.Sprintf("%d %s", i+1, m.buttons[i].label)
			style := buttonStyle
			if i == m.cursor {
				style = selectedButtonStyle
			}
			cells = append(cells, style.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	selected := ""
	if len(m.buttons) > 0 {
		selected = helpStyle.Render(m.buttons[m.cursor].preset.URL)
	}
	body := titleStyle.Render(TitleMirrors) + "\n" +
		lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n" + selected
	return sectionStyle.Render(body)
}

// viewOther lists the actions that are not tied to a mirror
func (m *Model) viewOther() string {
	var hints []string
	for _, k := range []key.Binding{m.keys.Backup, m.keys.Open, m.keys.Export, m.keys.About} {
		h := k.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return sectionStyle.Render(titleStyle.Render(TitleOther) + "\n" + strings.Join(hints, "  "))
}

// viewDialog renders the modal result box centred on screen
func (m *Model) viewDialog() string {
	border := lipgloss.Color(ColorSuccess)
	title := okStyle.Render(m.dialog.Title)
	if m.dialog.Kind == app.KindError {
		border = lipgloss.Color(ColorError)
		title = errorStyle.Render(m.dialog.Title)
	} else if m.dialog.Kind == app.KindInfo {
		border = lipgloss.Color(ColorTitle)
		title = titleStyle.Render(m.dialog.Title)
	}

	box := lipgloss.NewStyle().
		Width(DialogWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Render(title + "\n\n" + m.dialog.Message + "\n\n" + helpStyle.Render("enter: close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
