package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/promptpilot/pkg/prompt"
	"github.com/entrhq/promptpilot/pkg/workspace"
)

func (m *model) Init() tea.Cmd {
	return nil
}

// Update handles all state updates for the menu.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		if m.form != nil {
			m.form.setWidth(msg.Width)
		}
		return m, nil

	case storeChangedMsg:
		m.logger.Infof("Prompt file changed on disk: %s", msg.path)
		m.refreshItems()
		return m, nil

	case toastExpiredMsg:
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

// updateFocused forwards non-key messages such as cursor blinks.
func (m *model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeForm:
		if m.form != nil {
			var nameCmd, bodyCmd tea.Cmd
			m.form.name, nameCmd = m.form.name.Update(msg)
			m.form.body, bodyCmd = m.form.body.Update(msg)
			cmd = tea.Batch(nameCmd, bodyCmd)
		}
	case modeSwitchProject:
		m.projectInput, cmd = m.projectInput.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m.handleFormKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	case modeSwitchProject:
		return m.handleSwitchKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the user types a filter the list owns every key.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter":
		item, ok := m.list.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		return m.choose(item)

	case "esc", "q":
		if m.list.FilterState() == list.FilterApplied {
			m.list.ResetFilter()
			return m, nil
		}
		return m.back()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// back leaves the current list, quitting from the main menu.
func (m *model) back() (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeMenu:
		m.quitting = true
		return m, tea.Quit
	case modePickEdit, modePickDelete:
		m.showManage()
	default:
		m.showMenu()
	}
	return m, nil
}

func (m *model) choose(item menuItem) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modePickEdit:
		previous := item.prompt
		m.openForm(&previous)
		return m, nil
	case modePickDelete:
		return m.requestDelete(item.prompt)
	}

	switch item.kind {
	case itemAdd:
		m.openForm(nil)
	case itemPrompt:
		return m.copyPrompt(item.prompt)
	case itemManage:
		m.showManage()
	case itemEdit:
		m.showPicker(modePickEdit, "Select a prompt to edit")
	case itemDelete:
		m.showPicker(modePickDelete, "Select a prompt to delete")
	case itemSwitch:
		m.openSwitchProject()
	case itemBack:
		m.showMenu()
	case itemSeparator:
	}
	return m, m.toastCmd()
}

// copyPrompt places the body of the named prompt on the clipboard. The
// prompt is looked up again so an external delete is noticed.
func (m *model) copyPrompt(selected prompt.Prompt) (tea.Model, tea.Cmd) {
	p, ok := m.store.FindByName(selected.Name)
	if !ok {
		m.logger.Warnf("Prompt %q not found", selected.Name)
		m.showToast(fmt.Sprintf("Prompt %q not found.", selected.Name), true)
		m.refreshItems()
		return m, m.toastCmd()
	}

	if err := m.clipboard(p.Body); err != nil {
		m.logger.Errorf("Failed to copy prompt %q: %v", p.Name, err)
		m.showToast(fmt.Sprintf("Failed to copy prompt %q: %v", p.Name, err), true)
		return m, m.toastCmd()
	}

	m.logger.Infof("Copied prompt %q", p.Name)
	message := prompt.CopiedMessage(p.Name)
	if m.settings.QuitAfterCopy {
		m.exitMessage = message
		m.quitting = true
		return m, tea.Quit
	}
	m.showToast(message, false)
	return m, m.toastCmd()
}

func (m *model) openForm(previous *prompt.Prompt) {
	m.form = newPromptForm(previous, m.width)
	m.mode = modeForm
}

func (m *model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.showMenu()
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	}
	return m, m.form.update(msg)
}

func (m *model) submitForm() (tea.Model, tea.Cmd) {
	name, body, scope := m.form.values()
	attempt := prompt.Prompt{Name: strings.TrimSpace(name), Body: body, Scope: scope}

	p, err := prompt.New(name, body, scope)
	if err == nil {
		err = m.store.InsertOrUpdate(p, m.form.isUpdate(), m.form.previous)
	}
	if err != nil {
		if errors.Is(err, prompt.ErrWriteFailure) {
			m.logger.Errorf("Failed to save prompt %q: %v", attempt.Name, err)
		}
		m.form.err = prompt.Describe(err, attempt)
		return m, nil
	}

	verb := "saved"
	if m.form.isUpdate() {
		verb = "updated"
	}
	m.logger.Infof("Prompt %q %s (%s)", p.Name, verb, p.Scope.Label())
	m.showMenu()
	m.showToast(fmt.Sprintf("Prompt %q %s.", p.Name, verb), false)
	return m, m.toastCmd()
}

func (m *model) requestDelete(p prompt.Prompt) (tea.Model, tea.Cmd) {
	if !m.settings.ConfirmDelete {
		return m.deletePrompt(p)
	}
	m.pending = p
	m.mode = modeConfirmDelete
	return m, nil
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		return m.deletePrompt(m.pending)
	case "n", "esc", "q":
		m.pending = prompt.Prompt{}
		m.showMenu()
	}
	return m, nil
}

func (m *model) deletePrompt(p prompt.Prompt) (tea.Model, tea.Cmd) {
	m.pending = prompt.Prompt{}

	deleted, err := m.store.Delete(p.Name)
	m.showMenu()
	switch {
	case err != nil:
		m.logger.Errorf("Failed to delete prompt %q: %v", p.Name, err)
		m.showToast(fmt.Sprintf("Failed to delete prompt %q: %v", p.Name, err), true)
	case !deleted:
		m.showToast(fmt.Sprintf("Prompt %q not found.", p.Name), true)
	default:
		m.logger.Infof("Prompt %q deleted", p.Name)
		m.showToast(fmt.Sprintf("Prompt %q deleted.", p.Name), false)
	}
	return m, m.toastCmd()
}

func (m *model) openSwitchProject() {
	m.projectInput.SetValue(m.store.Project().Root)
	m.projectInput.CursorEnd()
	m.projectInput.Focus()
	m.mode = modeSwitchProject
}

func (m *model) handleSwitchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.projectInput.Blur()
		m.showManage()
		return m, nil
	case tea.KeyEnter:
		return m.switchProject(strings.TrimSpace(m.projectInput.Value()))
	}

	var cmd tea.Cmd
	m.projectInput, cmd = m.projectInput.Update(msg)
	return m, cmd
}

// switchProject points the store at dir, or at no project when dir is empty.
func (m *model) switchProject(dir string) (tea.Model, tea.Cmd) {
	project := workspace.None
	if dir != "" {
		resolved, err := workspace.Resolve(dir)
		if err != nil {
			m.showToast(fmt.Sprintf("Cannot open project: %v", err), true)
			return m, m.toastCmd()
		}
		project = resolved
	}

	if err := m.store.RefreshProjectContext(project); err != nil {
		m.logger.Warnf("Refused project %s: %v", project.Root, err)
		m.showToast(fmt.Sprintf("Cannot open project %s: it uses the global prompt file.", project.Name()), true)
		return m, m.toastCmd()
	}
	if m.onProjectChange != nil {
		m.onProjectChange(project)
	}
	m.projectInput.Blur()
	m.showMenu()

	if project.IsOpen() {
		m.logger.Infof("Switched project to %s", project.Root)
		m.showToast(fmt.Sprintf("Switched to project %s.", project.Name()), false)
	} else {
		m.logger.Infof("Project closed")
		m.showToast("No project open. Only global prompts are available.", false)
	}
	return m, m.toastCmd()
}

func (m *model) toastCmd() tea.Cmd {
	if !m.toastActive() {
		return nil
	}
	return tea.Tick(m.settings.ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}
