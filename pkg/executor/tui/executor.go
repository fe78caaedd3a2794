// Package tui provides the interactive prompt menu.
//
// The menu is split into several files:
// - executor.go: program lifecycle and file watching
// - model.go: state and screen switching
// - update.go: key handling and store operations
// - view.go: rendering
// - form.go: the add/edit form
// - items.go: list entries
// - styles.go: colors and styles
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/promptpilot/pkg/config"
	"github.com/entrhq/promptpilot/pkg/prompt"
	"github.com/entrhq/promptpilot/pkg/workspace"
)

// Executor runs the interactive menu over a prompt store.
type Executor struct {
	store     *prompt.Store
	watcher   *workspace.Watcher
	settings  config.UISettings
	clipboard func(string) error
	logger    Logger
	output    io.Writer
	program   *tea.Program
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithWatcher reloads the menu when a backing file changes on disk.
func WithWatcher(w *workspace.Watcher) ExecutorOption {
	return func(e *Executor) {
		e.watcher = w
	}
}

// WithSettings sets the ui section values.
func WithSettings(s config.UISettings) ExecutorOption {
	return func(e *Executor) {
		e.settings = s
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) ExecutorOption {
	return func(e *Executor) {
		e.clipboard = write
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithOutput sets where the exit message is printed (default os.Stdout).
func WithOutput(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.output = w
	}
}

// NewExecutor creates a menu for store.
func NewExecutor(store *prompt.Store, opts ...ExecutorOption) *Executor {
	e := &Executor{
		store:     store,
		settings:  config.DefaultUISettings(),
		clipboard: clipboard.WriteAll,
		logger:    nopLogger{},
		output:    os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run shows the menu and blocks until the user leaves or ctx is done.
func (e *Executor) Run(ctx context.Context) error {
	m := newModel(e.store, e.settings, e.clipboard, e.logger)
	m.onProjectChange = func(workspace.Project) {
		e.watchStore()
	}

	e.program = tea.NewProgram(m, tea.WithAltScreen())

	if e.watcher != nil {
		e.watchStore()
		go e.forwardChanges(ctx)
	}

	stop := quitOnCancel(ctx, e.program.Quit)
	final, err := e.program.Run()
	stop()
	if err != nil {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}

	if fm, ok := final.(*model); ok && fm.exitMessage != "" {
		fmt.Fprintln(e.output, fm.exitMessage)
	}
	return nil
}

// quitOnCancel calls quit once ctx is done. The returned stop function ends
// the wait and returns after the goroutine has exited.
func quitOnCancel(ctx context.Context, quit func()) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-ctx.Done():
			quit()
		case <-done:
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}

// watchStore points the watcher at the current backing files.
func (e *Executor) watchStore() {
	if e.watcher == nil {
		return
	}
	global, project := e.store.Paths()
	if err := e.watcher.Watch(global, project); err != nil {
		e.logger.Warnf("Failed to watch prompt files: %v", err)
	}
}

// forwardChanges turns watcher events into store reloads.
func (e *Executor) forwardChanges(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-e.watcher.Events():
			if !ok {
				return
			}
			e.program.Send(storeChangedMsg{path: filepath.Clean(ev.Path)})
		case err, ok := <-e.watcher.Errors():
			if !ok {
				return
			}
			e.logger.Warnf("File watcher error: %v", err)
		}
	}
}
