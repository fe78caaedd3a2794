package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/promptpilot/pkg/prompt"
)

type formField int

const (
	fieldName formField = iota
	fieldBody
	fieldScope
	fieldCount
)

// promptForm collects a short name, a detailed instruction and a scope.
// For an update, previous holds the prompt being replaced.
type promptForm struct {
	name     textinput.Model
	body     textarea.Model
	scope    prompt.Scope
	focus    formField
	previous *prompt.Prompt
	err      string
}

func newPromptForm(previous *prompt.Prompt, width int) *promptForm {
	name := textinput.New()
	name.Placeholder = "short-name"
	name.CharLimit = prompt.NameMaxLength
	name.Prompt = ""

	body := textarea.New()
	body.Placeholder = "Detailed instruction..."
	body.ShowLineNumbers = false
	body.CharLimit = 0
	body.SetHeight(8)

	f := &promptForm{
		name:     name,
		body:     body,
		scope:    prompt.ScopeGlobal,
		previous: previous,
	}
	if previous != nil {
		f.name.SetValue(previous.Name)
		f.body.SetValue(previous.Body)
		f.scope = previous.Scope
	}
	f.setWidth(width)
	f.focusField(fieldName)
	return f
}

func (f *promptForm) isUpdate() bool {
	return f.previous != nil
}

func (f *promptForm) setWidth(width int) {
	w := width - 8
	if w < 20 {
		w = 20
	}
	f.name.Width = w
	f.body.SetWidth(w)
}

func (f *promptForm) focusField(field formField) {
	f.focus = field
	f.name.Blur()
	f.body.Blur()
	switch field {
	case fieldName:
		f.name.Focus()
	case fieldBody:
		f.body.Focus()
	}
}

func (f *promptForm) next() {
	f.focusField((f.focus + 1) % fieldCount)
}

func (f *promptForm) prev() {
	f.focusField((f.focus + fieldCount - 1) % fieldCount)
}

func (f *promptForm) toggleScope() {
	if f.scope == prompt.ScopeGlobal {
		f.scope = prompt.ScopeProject
	} else {
		f.scope = prompt.ScopeGlobal
	}
}

// values returns the raw field contents.
func (f *promptForm) values() (name, body string, scope prompt.Scope) {
	return f.name.Value(), f.body.Value(), f.scope
}

// update routes a key to the focused field. Enter on the name moves on;
// in the body it inserts a newline.
func (f *promptForm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		f.next()
		return nil
	case "shift+tab":
		f.prev()
		return nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		if msg.Type == tea.KeyEnter {
			f.next()
			return nil
		}
		f.name, cmd = f.name.Update(msg)
	case fieldBody:
		f.body, cmd = f.body.Update(msg)
	case fieldScope:
		switch msg.String() {
		case "left", "right", " ", "h", "l", "enter":
			f.toggleScope()
		case "g":
			f.scope = prompt.ScopeGlobal
		case "p":
			f.scope = prompt.ScopeProject
		}
	}
	return cmd
}

func (f *promptForm) view(projectName string) string {
	var b strings.Builder

	title := "New Prompt"
	if f.isUpdate() {
		title = fmt.Sprintf("Edit Prompt %q", f.previous.Name)
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(f.label(fieldName, fmt.Sprintf("Short name (max %d)", prompt.NameMaxLength)))
	b.WriteString("\n")
	b.WriteString(f.name.View())
	b.WriteString("\n\n")

	b.WriteString(f.label(fieldBody, "Detailed instruction"))
	b.WriteString("\n")
	b.WriteString(f.body.View())
	b.WriteString("\n\n")

	b.WriteString(f.label(fieldScope, "Scope"))
	b.WriteString("\n")
	var options []string
	for _, scope := range prompt.Scopes {
		label := string(scope)
		if scope == prompt.ScopeProject && projectName != "" {
			label = fmt.Sprintf("%s (%s)", scope, projectName)
		}
		if scope == f.scope {
			options = append(options, scopeSelectedStyle.Render(label))
		} else {
			options = append(options, scopeIdleStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, options...))
	b.WriteString("\n")

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tipsStyle.Render("tab next field • ←/→ scope • ctrl+s save • esc cancel"))
	return b.String()
}

func (f *promptForm) label(field formField, text string) string {
	if f.focus == field {
		return focusedLabelStyle.Render("› " + text)
	}
	return labelStyle.Render("  " + text)
}
