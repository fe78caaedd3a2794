package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/entrhq/promptpilot/pkg/config"
	"github.com/entrhq/promptpilot/pkg/logging"
	"github.com/entrhq/promptpilot/pkg/prompt"
	"github.com/entrhq/promptpilot/pkg/workspace"
)

// app is everything a command needs, built from flags and the settings file.
type app struct {
	store      *prompt.Store
	ui         config.UISettings
	configPath string
	logger     *logging.Logger
	ownLogger  bool
}

// settings installs the settings file named by --config (or the default)
// as the global configuration and returns its path.
func (o *RootOptions) settings() (string, error) {
	configPath := o.ConfigPath
	if configPath == "" {
		var err error
		if configPath, err = config.DefaultPath(); err != nil {
			return "", WrapExitError(ExitFailure, "cannot locate settings", err)
		}
	}

	if err := config.Initialize(configPath); err != nil {
		return "", WrapExitError(ExitCommandError, "invalid settings file "+configPath, err)
	}
	return configPath, nil
}

// open loads settings, resolves the project and opens the store. Flags
// override the settings file.
func (o *RootOptions) open() (*app, error) {
	configPath, err := o.settings()
	if err != nil {
		return nil, err
	}
	globalDir, projectDir, fileName := config.GetStorage().Locations()
	if o.GlobalDir != "" {
		globalDir = o.GlobalDir
	}

	a := &app{
		ui:         config.GetUI().Snapshot(),
		configPath: configPath,
		logger:     o.logger,
	}
	switch {
	case a.logger != nil:
	case o.Verbose:
		a.logger = logging.NewWriterLogger("cli", o.errWriter())
	default:
		if globalDir != "" {
			logging.SetDirectory(filepath.Join(globalDir, "logs"))
		}
		// The logger falls back to stderr on error, so keep going.
		a.logger, _ = logging.NewLogger("cli")
		a.ownLogger = true
	}

	project, err := o.project(projectDir)
	if err != nil {
		a.close()
		return nil, err
	}

	store, err := prompt.NewStore(globalDir, project,
		prompt.WithLogger(a.logger.With("store")),
		prompt.WithProjectDir(projectDir),
		prompt.WithFileName(fileName),
	)
	if err != nil {
		a.close()
		return nil, WrapExitError(ExitFailure, "cannot open prompt store", err)
	}

	a.store = store
	return a, nil
}

func (o *RootOptions) errWriter() io.Writer {
	if o.errOut != nil {
		return o.errOut
	}
	return os.Stderr
}

// project picks the project context: --no-project, --workspace, or the
// nearest directory above the working directory holding .git or projectDir.
func (o *RootOptions) project(projectDir string) (workspace.Project, error) {
	switch {
	case o.NoProject:
		return workspace.None, nil
	case o.Workspace != "":
		project, err := workspace.Resolve(o.Workspace)
		if err != nil {
			return workspace.None, WrapExitError(ExitCommandError, "invalid workspace", err)
		}
		return project, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return workspace.None, nil
	}
	project, err := workspace.FindRoot(cwd, ".git", projectDir)
	if err != nil {
		return workspace.None, nil
	}
	return project, nil
}

func (a *app) close() {
	if a.ownLogger && a.logger != nil {
		a.logger.Close()
	}
}

// lookup finds name in the merged view.
func (a *app) lookup(name string) (prompt.Prompt, error) {
	p, ok := a.store.FindByName(name)
	if !ok {
		return prompt.Prompt{}, notFound(name)
	}
	return p, nil
}
