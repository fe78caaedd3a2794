package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/promptpilot/pkg/prompt"
)

// View renders the current screen.
func (m *model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.mode {
	case modeForm:
		body = dialogStyle.Render(m.form.view(m.store.Project().Name()))
	case modeConfirmDelete:
		body = m.renderConfirm()
	case modeSwitchProject:
		body = m.renderSwitchProject()
	default:
		body = m.list.View()
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if toast := m.renderToast(); toast != "" {
		b.WriteString(toast)
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m *model) renderConfirm() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Delete Prompt"))
	b.WriteString("\n\n")
	b.WriteString(prompt.DeleteConfirmMessage(m.pending.Name))
	b.WriteString("\n\n")
	b.WriteString(tipsStyle.Render("y/enter delete • n/esc cancel"))
	return dialogStyle.Render(b.String())
}

func (m *model) renderSwitchProject() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Switch Project"))
	b.WriteString("\n\n")
	b.WriteString(m.projectInput.View())
	b.WriteString("\n\n")
	b.WriteString(tipsStyle.Render("enter open • empty for global only • esc cancel"))
	return dialogStyle.Render(b.String())
}

func (m *model) renderToast() string {
	if !m.toastActive() {
		return ""
	}
	style := toastStyle
	if m.toast.isError {
		style = toastErrorStyle
	}
	return style.Render(m.toast.message)
}

func (m *model) renderStatusBar() string {
	global, project := m.store.Paths()
	if project == "" {
		project = "none"
	}
	left := "global: " + global
	right := "project: " + project
	return statusBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
}
