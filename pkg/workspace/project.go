// Package workspace resolves the project a PromptPilot session works in and
// watches the prompt files for changes made outside the process.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Project identifies the open project. The zero value means no project is open.
type Project struct {
	// Root is the absolute, symlink-free project directory.
	Root string
}

// None is the project context used when no project is open.
var None = Project{}

// IsOpen reports whether a project is open.
func (p Project) IsOpen() bool {
	return p.Root != ""
}

// Name returns the base name of the project root, or "" when none is open.
func (p Project) Name() string {
	if !p.IsOpen() {
		return ""
	}
	return filepath.Base(p.Root)
}

// DefaultMarkers are the entries whose presence marks a project root.
var DefaultMarkers = []string{".git"}

// Resolve turns dir into a Project. The path is made absolute, cleaned, and
// symlinks are evaluated; it must name an existing directory.
func Resolve(dir string) (Project, error) {
	if dir == "" {
		return None, fmt.Errorf("workspace directory cannot be empty")
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return None, fmt.Errorf("failed to resolve workspace directory: %w", err)
	}

	evalPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return None, fmt.Errorf("failed to evaluate workspace directory symlinks: %w", err)
	}

	info, err := os.Stat(evalPath)
	if err != nil {
		return None, fmt.Errorf("workspace directory error: %w", err)
	}
	if !info.IsDir() {
		return None, fmt.Errorf("workspace path '%s' is not a directory", dir)
	}

	return Project{Root: evalPath}, nil
}

// FindRoot walks up from start and returns the nearest directory containing
// one of markers (DefaultMarkers when none are given). If no ancestor has a
// marker, start itself is returned.
func FindRoot(start string, markers ...string) (Project, error) {
	project, err := Resolve(start)
	if err != nil {
		return None, err
	}
	if len(markers) == 0 {
		markers = DefaultMarkers
	}

	dir := project.Root
	for {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return Project{Root: dir}, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return project, nil
		}
		dir = parent
	}
}
