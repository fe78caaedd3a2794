package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/promptpilot/pkg/config"
	"github.com/entrhq/promptpilot/pkg/prompt"
	"github.com/entrhq/promptpilot/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) write(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Infof(format string, v ...interface{})  { l.record("INFO", format, v...) }
func (l *recordingLogger) Warnf(format string, v ...interface{})  { l.record("WARN", format, v...) }
func (l *recordingLogger) Errorf(format string, v ...interface{}) { l.record("ERROR", format, v...) }

type harness struct {
	t         *testing.T
	m         *model
	store     *prompt.Store
	clipboard *fakeClipboard
	logger    *recordingLogger
}

type harnessOption func(*config.UISettings)

func newHarness(t *testing.T, withProject bool, global, project []prompt.Prompt, opts ...harnessOption) *harness {
	t.Helper()

	proj := workspace.None
	if withProject {
		var err error
		proj, err = workspace.Resolve(t.TempDir())
		require.NoError(t, err)
	}

	store, err := prompt.NewStore(t.TempDir(), proj)
	require.NoError(t, err)
	if len(global) > 0 {
		require.NoError(t, store.WriteCollection(prompt.ScopeGlobal, global))
	}
	if len(project) > 0 {
		require.NoError(t, store.WriteCollection(prompt.ScopeProject, project))
	}

	settings := config.DefaultUISettings()
	for _, opt := range opts {
		opt(&settings)
	}

	h := &harness{t: t, store: store, clipboard: &fakeClipboard{}, logger: &recordingLogger{}}
	h.m = newModel(store, settings, h.clipboard.write, h.logger)
	return h
}

func keepOpenAfterCopy(s *config.UISettings) { s.QuitAfterCopy = false }
func skipDeleteConfirm(s *config.UISettings) { s.ConfirmDelete = false }

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (h *harness) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = h.m.Update(keyMsg(k))
	}
	return cmd
}

// choose moves the cursor to the entry titled title and presses enter.
func (h *harness) choose(title string) tea.Cmd {
	h.t.Helper()
	for i, item := range h.m.list.Items() {
		if item.(menuItem).Title() == title {
			h.m.list.Select(i)
			return h.press("enter")
		}
	}
	h.t.Fatalf("no menu entry %q in %v", title, h.titles())
	return nil
}

func (h *harness) titles() []string {
	var titles []string
	for _, item := range h.m.list.Items() {
		titles = append(titles, item.(menuItem).Title())
	}
	return titles
}

func (h *harness) fillForm(name, body string) {
	h.m.form.name.SetValue(name)
	h.m.form.body.SetValue(body)
}

func (h *harness) toast() string {
	if h.m.toast == nil {
		return ""
	}
	return h.m.toast.message
}

func names(prompts []prompt.Prompt) []string {
	out := make([]string, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, p.Name)
	}
	return out
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func g(name, body string) prompt.Prompt {
	return prompt.Prompt{Name: name, Body: body, Scope: prompt.ScopeGlobal}
}

func p(name, body string) prompt.Prompt {
	return prompt.Prompt{Name: name, Body: body, Scope: prompt.ScopeProject}
}

func TestMainMenuLayout(t *testing.T) {
	h := newHarness(t, true,
		[]prompt.Prompt{g("zeta", "z"), g("Alpha", "a")},
		[]prompt.Prompt{p("beta", "b")},
	)

	assert.Equal(t, modeMenu, h.m.mode)
	assert.Equal(t, []string{labelAddNew, "Alpha", "beta", "zeta", separatorLine, labelManage}, h.titles())
	assert.Contains(t, h.logger.lines, "INFO Loaded 3 prompt(s)")

	item := h.m.list.Items()[2].(menuItem)
	assert.Equal(t, "project-specific · b", item.Description())
}

func TestMainMenuProjectOverridesGlobal(t *testing.T) {
	h := newHarness(t, true,
		[]prompt.Prompt{g("review", "global body")},
		[]prompt.Prompt{p("review", "project body")},
	)

	assert.Equal(t, []string{labelAddNew, "review", separatorLine, labelManage}, h.titles())
	assert.Equal(t, "project body", h.m.list.Items()[1].(menuItem).prompt.Body)
}

func TestCopyPrompt(t *testing.T) {
	t.Run("copies and quits", func(t *testing.T) {
		h := newHarness(t, false, []prompt.Prompt{g("explain", "Explain this code.")}, nil)

		cmd := h.choose("explain")

		assert.Equal(t, "Explain this code.", h.clipboard.text)
		assert.True(t, isQuit(cmd))
		assert.Equal(t, `Prompt "explain" copied to clipboard.`, h.m.exitMessage)
		assert.Empty(t, h.m.View())
	})

	t.Run("stays open when configured", func(t *testing.T) {
		h := newHarness(t, false, []prompt.Prompt{g("explain", "Explain this code.")}, nil, keepOpenAfterCopy)

		cmd := h.choose("explain")

		assert.False(t, isQuit(cmd))
		assert.Equal(t, `Prompt "explain" copied to clipboard.`, h.toast())
		assert.Contains(t, h.m.View(), "copied to clipboard")
	})

	t.Run("clipboard failure", func(t *testing.T) {
		h := newHarness(t, false, []prompt.Prompt{g("explain", "x")}, nil)
		h.clipboard.err = errors.New("no display")

		cmd := h.choose("explain")

		assert.False(t, isQuit(cmd))
		assert.True(t, h.m.toast.isError)
		assert.Contains(t, h.toast(), "no display")
	})

	t.Run("prompt removed on disk", func(t *testing.T) {
		h := newHarness(t, false, []prompt.Prompt{g("explain", "x")}, nil)
		global, _ := h.store.Paths()
		require.NoError(t, os.Remove(global))

		cmd := h.choose("explain")

		assert.False(t, isQuit(cmd))
		assert.Equal(t, `Prompt "explain" not found.`, h.toast())
		assert.Empty(t, h.clipboard.text)
		assert.Equal(t, []string{labelAddNew, separatorLine, labelManage}, h.titles())
	})
}

func TestAddPrompt(t *testing.T) {
	t.Run("global", func(t *testing.T) {
		h := newHarness(t, false, nil, nil)

		h.choose(labelAddNew)
		require.Equal(t, modeForm, h.m.mode)
		assert.False(t, h.m.form.isUpdate())

		h.fillForm("  review ", "Review the diff.\nBe brief.")
		h.press("ctrl+s")

		assert.Equal(t, modeMenu, h.m.mode)
		assert.Equal(t, `Prompt "review" saved.`, h.toast())
		assert.Equal(t, []prompt.Prompt{g("review", "Review the diff.\nBe brief.")}, h.store.LoadCollection(prompt.ScopeGlobal))
		assert.Contains(t, h.titles(), "review")
	})

	t.Run("project scope via keyboard", func(t *testing.T) {
		h := newHarness(t, true, nil, nil)

		h.choose(labelAddNew)
		h.fillForm("local", "Only here.")
		h.press("tab", "tab", "right")
		require.Equal(t, prompt.ScopeProject, h.m.form.scope)
		h.press("ctrl+s")

		assert.Equal(t, []prompt.Prompt{p("local", "Only here.")}, h.store.LoadCollection(prompt.ScopeProject))
		assert.Empty(t, h.store.LoadCollection(prompt.ScopeGlobal))
	})

	t.Run("project scope without project", func(t *testing.T) {
		h := newHarness(t, false, nil, nil)

		h.choose(labelAddNew)
		h.fillForm("local", "Only here.")
		h.m.form.scope = prompt.ScopeProject
		h.press("ctrl+s")

		assert.Equal(t, modeForm, h.m.mode)
		assert.Equal(t, "No workspace folder found. Cannot save project-specific prompt.", h.m.form.err)
		assert.Contains(t, h.m.View(), "No workspace folder found.")
	})

	t.Run("duplicate name", func(t *testing.T) {
		h := newHarness(t, false, []prompt.Prompt{g("review", "old")}, nil)

		h.choose(labelAddNew)
		h.fillForm("review", "new")
		h.press("ctrl+s")

		assert.Equal(t, modeForm, h.m.mode)
		assert.Equal(t, `A global prompt with the name "review" already exists. Please choose a different name.`, h.m.form.err)
		assert.Equal(t, []prompt.Prompt{g("review", "old")}, h.store.LoadCollection(prompt.ScopeGlobal))
	})

	t.Run("validation", func(t *testing.T) {
		h := newHarness(t, false, nil, nil)

		h.choose(labelAddNew)
		h.fillForm("   ", "body")
		h.press("ctrl+s")
		assert.Equal(t, "Short name is required.", h.m.form.err)

		h.fillForm("name", "  ")
		h.press("ctrl+s")
		assert.Equal(t, "Detailed instruction is required.", h.m.form.err)
		assert.Empty(t, h.store.LoadCollection(prompt.ScopeGlobal))
	})

	t.Run("cancel", func(t *testing.T) {
		h := newHarness(t, false, nil, nil)

		h.choose(labelAddNew)
		h.fillForm("draft", "never saved")
		h.press("esc")

		assert.Equal(t, modeMenu, h.m.mode)
		assert.Nil(t, h.m.form)
		assert.Empty(t, h.store.LoadCollection(prompt.ScopeGlobal))
	})
}

func TestEditPrompt(t *testing.T) {
	t.Run("moves between scopes", func(t *testing.T) {
		h := newHarness(t, true, []prompt.Prompt{g("review", "old"), g("keep", "k")}, nil)

		h.choose(labelManage)
		require.Equal(t, modeManage, h.m.mode)
		h.choose(labelEditPrompt)
		require.Equal(t, modePickEdit, h.m.mode)
		assert.Equal(t, []string{"keep", "review"}, h.titles())

		h.choose("review")
		require.Equal(t, modeForm, h.m.mode)
		require.True(t, h.m.form.isUpdate())
		assert.Equal(t, "review", h.m.form.name.Value())
		assert.Equal(t, "old", h.m.form.body.Value())

		h.m.form.body.SetValue("new")
		h.m.form.scope = prompt.ScopeProject
		h.press("ctrl+s")

		assert.Equal(t, `Prompt "review" updated.`, h.toast())
		assert.Equal(t, []string{"keep"}, names(h.store.LoadCollection(prompt.ScopeGlobal)))
		assert.Equal(t, []prompt.Prompt{p("review", "new")}, h.store.LoadCollection(prompt.ScopeProject))
	})

	t.Run("same name same scope", func(t *testing.T) {
		h := newHarness(t, false, []prompt.Prompt{g("review", "old")}, nil)

		h.choose(labelManage)
		h.choose(labelEditPrompt)
		h.choose("review")
		h.m.form.body.SetValue("new")
		h.press("ctrl+s")

		assert.False(t, h.m.toast.isError)
		assert.Equal(t, []prompt.Prompt{g("review", "new")}, h.store.LoadCollection(prompt.ScopeGlobal))
	})

	t.Run("nothing to edit", func(t *testing.T) {
		h := newHarness(t, false, nil, nil)

		h.choose(labelManage)
		h.choose(labelEditPrompt)

		assert.Equal(t, modeManage, h.m.mode)
		assert.Equal(t, "No prompts saved yet.", h.toast())
	})
}

func TestDeletePrompt(t *testing.T) {
	openDelete := func(h *harness, name string) {
		h.choose(labelManage)
		h.choose(labelDeletePrompt)
		require.Equal(h.t, modePickDelete, h.m.mode)
		h.choose(name)
	}

	t.Run("confirmed", func(t *testing.T) {
		h := newHarness(t, false, []prompt.Prompt{g("review", "x"), g("keep", "k")}, nil)

		openDelete(h, "review")
		require.Equal(t, modeConfirmDelete, h.m.mode)
		assert.Contains(t, h.m.View(), `Are you sure you want to delete the prompt "review"?`)

		h.press("y")

		assert.Equal(t, modeMenu, h.m.mode)
		assert.Equal(t, `Prompt "review" deleted.`, h.toast())
		assert.Equal(t, []string{"keep"}, names(h.store.LoadCollection(prompt.ScopeGlobal)))
	})

	t.Run("cancelled", func(t *testing.T) {
		h := newHarness(t, false, []prompt.Prompt{g("review", "x")}, nil)

		openDelete(h, "review")
		h.press("n")

		assert.Equal(t, modeMenu, h.m.mode)
		assert.Equal(t, []string{"review"}, names(h.store.LoadCollection(prompt.ScopeGlobal)))
	})

	t.Run("without confirmation", func(t *testing.T) {
		h := newHarness(t, true, nil, []prompt.Prompt{p("local", "x")}, skipDeleteConfirm)

		openDelete(h, "local")

		assert.Equal(t, modeMenu, h.m.mode)
		assert.Empty(t, h.store.LoadCollection(prompt.ScopeProject))
	})

	t.Run("already gone", func(t *testing.T) {
		h := newHarness(t, false, []prompt.Prompt{g("review", "x")}, nil)

		openDelete(h, "review")
		require.NoError(t, h.store.WriteCollection(prompt.ScopeGlobal, nil))
		h.press("enter")

		assert.Equal(t, `Prompt "review" not found.`, h.toast())
		assert.True(t, h.m.toast.isError)
	})
}

func TestSwitchProject(t *testing.T) {
	t.Run("opens another project", func(t *testing.T) {
		h := newHarness(t, false, []prompt.Prompt{g("shared", "s")}, nil)

		other := t.TempDir()
		file := filepath.Join(other, prompt.DefaultProjectDir, prompt.DefaultFileName)
		require.NoError(t, prompt.WriteFile(file, []prompt.Prompt{p("theirs", "t")}))

		var changed workspace.Project
		h.m.onProjectChange = func(project workspace.Project) { changed = project }

		h.choose(labelManage)
		h.choose(labelSwitchProject)
		require.Equal(t, modeSwitchProject, h.m.mode)
		assert.Empty(t, h.m.projectInput.Value())

		h.m.projectInput.SetValue(other)
		h.press("enter")

		want, err := workspace.Resolve(other)
		require.NoError(t, err)
		assert.Equal(t, want, h.store.Project())
		assert.Equal(t, want, changed)
		assert.Equal(t, modeMenu, h.m.mode)
		assert.Equal(t, []string{labelAddNew, "shared", "theirs", separatorLine, labelManage}, h.titles())
		assert.Equal(t, "PromptPilot · "+want.Name(), h.m.list.Title)
	})

	t.Run("empty path closes the project", func(t *testing.T) {
		h := newHarness(t, true, nil, []prompt.Prompt{p("local", "x")})

		h.choose(labelManage)
		h.choose(labelSwitchProject)
		assert.Equal(t, h.store.Project().Root, h.m.projectInput.Value())
		h.m.projectInput.SetValue("")
		h.press("enter")

		assert.False(t, h.store.HasProject())
		assert.Equal(t, []string{labelAddNew, separatorLine, labelManage}, h.titles())
	})

	t.Run("project using the global file is refused", func(t *testing.T) {
		home, err := workspace.Resolve(t.TempDir())
		require.NoError(t, err)
		store, err := prompt.NewStore(filepath.Join(home.Root, prompt.DefaultProjectDir), workspace.None)
		require.NoError(t, err)
		require.NoError(t, store.WriteCollection(prompt.ScopeGlobal, []prompt.Prompt{g("mine", "x")}))

		logger := &recordingLogger{}
		m := newModel(store, config.DefaultUISettings(), (&fakeClipboard{}).write, logger)
		called := false
		m.onProjectChange = func(workspace.Project) { called = true }

		m.projectInput.SetValue(home.Root)
		m.switchProject(home.Root)

		assert.False(t, store.HasProject())
		assert.False(t, called)
		assert.True(t, m.toast.isError)
		assert.Contains(t, m.toast.message, "global prompt file")
		assert.Len(t, store.LoadCollection(prompt.ScopeGlobal), 1)
	})

	t.Run("invalid path", func(t *testing.T) {
		h := newHarness(t, false, nil, nil)

		h.choose(labelManage)
		h.choose(labelSwitchProject)
		h.m.projectInput.SetValue(filepath.Join(t.TempDir(), "missing"))
		h.press("enter")

		assert.Equal(t, modeSwitchProject, h.m.mode)
		assert.True(t, h.m.toast.isError)
		assert.False(t, h.store.HasProject())
	})
}

func TestStoreChangedReloadsMenu(t *testing.T) {
	h := newHarness(t, false, []prompt.Prompt{g("one", "1")}, nil)

	global, _ := h.store.Paths()
	require.NoError(t, prompt.WriteFile(global, []prompt.Prompt{g("one", "1"), g("two", "2")}))
	h.m.Update(storeChangedMsg{path: global})

	assert.Equal(t, []string{labelAddNew, "one", "two", separatorLine, labelManage}, h.titles())
}

func TestNavigation(t *testing.T) {
	h := newHarness(t, false, []prompt.Prompt{g("one", "1")}, nil)

	h.choose(labelManage)
	assert.Equal(t, []string{labelEditPrompt, labelDeletePrompt, labelSwitchProject, labelBack}, h.titles())

	h.press("esc")
	assert.Equal(t, modeMenu, h.m.mode)

	h.choose(labelManage)
	h.choose(labelBack)
	assert.Equal(t, modeMenu, h.m.mode)

	h.choose(separatorLine)
	assert.Equal(t, modeMenu, h.m.mode)
	assert.Empty(t, h.clipboard.text)

	assert.True(t, isQuit(h.press("esc")))
	assert.Empty(t, h.m.exitMessage)
}

func TestCtrlCQuitsFromForm(t *testing.T) {
	h := newHarness(t, false, nil, nil)
	h.choose(labelAddNew)

	assert.True(t, isQuit(h.press("ctrl+c")))
	assert.True(t, h.m.quitting)
}

func TestStatusBarShowsPaths(t *testing.T) {
	h := newHarness(t, false, nil, nil)
	global, _ := h.store.Paths()

	view := h.m.View()
	assert.True(t, strings.Contains(view, "project: none"), view)
	assert.Contains(t, view, filepath.Base(global))
}
