package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tudu/internal/ui"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	barStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 2)

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// rowDelegate renders one todo per line: checkbox, title, progress.
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Title
	if it.todo.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	pct := mutedStyle.Render(fmt.Sprintf("%3d%%", it.todo.Progress))

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s  %s\n", prefix, box, text, pct)
}

func (m Model) View() string {
	w, h := m.width, m.height
	if w == 0 {
		w, h = 80, 24
	}

	listHeight := h - 4
	if m.mode == modeAdd {
		listHeight = h - 6
	}
	m.list.SetSize(w-2, listHeight)

	if m.mode == modeEdit {
		title := "Edit item"
		if m.inputErr != "" {
			title += " — " + errorStyle.Render(m.inputErr)
		}
		dialog := dialogStyle.Render(title + "\n\n" + m.input.View() + "\n\n" + helpStyle.Render("enter save · esc cancel"))
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, dialog)
	}

	content := m.list.View()
	if m.mode == modeAdd {
		title := "Add new item"
		if m.inputErr != "" {
			title += " — " + errorStyle.Render(m.inputErr)
		}
		content += "\n" + barStyle.Render(title+"\n"+m.input.View())
	}

	status := m.status
	if m.listening {
		sym := ui.Current().SymListening
		if sym == "" {
			sym = "●"
		}
		status = pendingStyle.Render(sym+" listening...") + " " + status
	}
	if status != "" {
		content += "\n" + status
	}
	return panelString(content)
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}
