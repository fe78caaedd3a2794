package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/promptpilot/pkg/config"
	"github.com/entrhq/promptpilot/pkg/prompt"
	"github.com/entrhq/promptpilot/pkg/workspace"
)

// mode is the screen currently shown.
type mode int

const (
	modeMenu mode = iota
	modeManage
	modePickEdit
	modePickDelete
	modeForm
	modeConfirmDelete
	modeSwitchProject
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Logger is the subset of logging.Logger the menu writes to.
type Logger interface {
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// model represents the state of the prompt menu.
type model struct {
	store     *prompt.Store
	settings  config.UISettings
	clipboard func(string) error
	logger    Logger

	// onProjectChange is called after the project context switched.
	onProjectChange func(workspace.Project)

	mode    mode
	list    list.Model
	prompts []prompt.Prompt

	form         *promptForm
	pending      prompt.Prompt
	projectInput textinput.Model

	toast *toastNotification

	width  int
	height int

	// exitMessage is printed once the program has left the alt screen.
	exitMessage string
	quitting    bool
}

// storeChangedMsg reports an external edit to a backing file.
type storeChangedMsg struct {
	path string
}

// toastExpiredMsg asks for a redraw once a toast has timed out.
type toastExpiredMsg struct{}

// toastNotification represents a temporary notification message
type toastNotification struct {
	message   string
	isError   bool
	showUntil time.Time
}

func newModel(store *prompt.Store, settings config.UISettings, clipboard func(string) error, logger Logger) *model {
	if logger == nil {
		logger = nopLogger{}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(salmonPink).
		BorderForeground(salmonPink)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(mutedGray).
		BorderForeground(salmonPink)

	l := list.New(nil, delegate, defaultWidth, defaultHeight-4)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(salmonPink).
		Bold(true).
		Padding(0, 1)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		}
	}

	input := textinput.New()
	input.Placeholder = "/path/to/project (empty for none)"
	input.Prompt = "› "

	m := &model{
		store:        store,
		settings:     settings,
		clipboard:    clipboard,
		logger:       logger,
		list:         l,
		projectInput: input,
		width:        defaultWidth,
		height:       defaultHeight,
	}
	m.showMenu()
	m.logger.Infof("Loaded %d prompt(s)", len(m.prompts))
	return m
}

// reload rereads the merged view from disk.
func (m *model) reload() {
	m.prompts = m.store.MergedView()
}

// setItems swaps the list contents, keeping the cursor in range.
func (m *model) setItems(title string, items []list.Item) {
	index := m.list.Index()
	m.list.ResetFilter()
	m.list.Title = title
	m.list.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index < 0 {
		index = 0
	}
	m.list.Select(index)
}

func (m *model) enter(next mode, title string, items []list.Item) {
	if m.mode != next {
		m.list.Select(0)
	}
	m.mode = next
	m.setItems(title, items)
}

func (m *model) showMenu() {
	m.reload()
	m.form = nil
	m.enter(modeMenu, m.menuTitle(), mainItems(m.prompts, m.settings.ShowScope))
}

func (m *model) showManage() {
	m.enter(modeManage, "Manage", manageItems())
}

func (m *model) showPicker(next mode, title string) bool {
	m.reload()
	if len(m.prompts) == 0 {
		m.showToast("No prompts saved yet.", true)
		return false
	}
	m.enter(next, title, promptItems(m.prompts, m.settings.ShowScope))
	return true
}

// refreshItems rebuilds whatever list is on screen after the files changed.
func (m *model) refreshItems() {
	m.reload()
	switch m.mode {
	case modeMenu:
		m.setItems(m.menuTitle(), mainItems(m.prompts, m.settings.ShowScope))
	case modePickEdit, modePickDelete:
		m.setItems(m.list.Title, promptItems(m.prompts, m.settings.ShowScope))
	}
}

func (m *model) menuTitle() string {
	if project := m.store.Project(); project.IsOpen() {
		return "PromptPilot · " + project.Name()
	}
	return "PromptPilot"
}

func (m *model) showToast(message string, isError bool) {
	m.toast = &toastNotification{
		message:   message,
		isError:   isError,
		showUntil: time.Now().Add(m.settings.ToastDuration),
	}
}

func (m *model) toastActive() bool {
	return m.toast != nil && time.Now().Before(m.toast.showUntil)
}
