package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/entrhq/promptpilot/pkg/workspace"
)

// DefaultProjectDir is the directory inside a project root that holds the
// project collection.
const DefaultProjectDir = ".promptpilot"

// Logger is the subset of logging.Logger the store writes to.
type Logger interface {
	Debugf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// Store owns the global and project collections. It keeps no cached
// records: every call reads the backing files again.
type Store struct {
	globalDir  string
	projectDir string
	fileName   string
	project    workspace.Project
	logger     Logger

	// mu serializes operations; each read-modify-write runs to completion
	// before the next one starts.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for read and write failures.
func WithLogger(l Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFileName overrides the backing file name used in both scopes.
func WithFileName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.fileName = name
		}
	}
}

// WithProjectDir overrides the directory, relative to the project root,
// that holds the project collection.
func WithProjectDir(dir string) Option {
	return func(s *Store) {
		if dir != "" {
			s.projectDir = dir
		}
	}
}

// NewStore creates a store rooted at globalDir for the given project.
// If globalDir is empty, defaults to ~/.promptpilot. The global directory is
// created if it does not exist; project directories are created on first
// write.
func NewStore(globalDir string, project workspace.Project, opts ...Option) (*Store, error) {
	if globalDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		globalDir = filepath.Join(homeDir, ".promptpilot")
	}

	s := &Store{
		globalDir:  globalDir,
		projectDir: DefaultProjectDir,
		fileName:   DefaultFileName,
		project:    project,
		logger:     NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(globalDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create global prompt directory: %w", err)
	}
	if err := s.checkShared(); err != nil {
		s.logger.Warnf("%v; ignoring project", err)
		s.project = workspace.None
	}
	return s, nil
}

// RefreshProjectContext switches the project collection to the one owned by
// project. Pass workspace.None when no project is open.
//
// A project whose collection file is the global file is refused with
// ErrSharedCollection and the store is left with no project open.
func (s *Store) RefreshProjectContext(project workspace.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.project = project
	if err := s.checkShared(); err != nil {
		s.logger.Warnf("%v; ignoring project", err)
		s.project = workspace.None
		return err
	}
	s.logger.Debugf("project context refreshed: %q", s.projectPath())
	return nil
}

// checkShared reports a project collection that resolves to the global file.
func (s *Store) checkShared() error {
	project := s.projectPath()
	if project != "" && filepath.Clean(project) == filepath.Clean(s.globalPath()) {
		return fmt.Errorf("%w: %s", ErrSharedCollection, project)
	}
	return nil
}

// Project returns the current project context.
func (s *Store) Project() workspace.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project
}

// HasProject reports whether a project is open.
func (s *Store) HasProject() bool {
	return s.Project().IsOpen()
}

// Paths returns the backing file paths. project is empty when no project is open.
func (s *Store) Paths() (global, project string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.globalPath(), s.projectPath()
}

func (s *Store) globalPath() string {
	return filepath.Join(s.globalDir, s.fileName)
}

func (s *Store) projectPath() string {
	if !s.project.IsOpen() {
		return ""
	}
	return filepath.Join(s.project.Root, s.projectDir, s.fileName)
}

func (s *Store) pathFor(scope Scope) string {
	if scope == ScopeProject {
		return s.projectPath()
	}
	return s.globalPath()
}

// LoadCollection returns the prompts stored for scope, in stored order.
// Missing, unreadable or malformed files yield an empty slice; failures are
// logged, never returned.
func (s *Store) LoadCollection(scope Scope) []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(scope)
}

func (s *Store) load(scope Scope) []Prompt {
	path := s.pathFor(scope)
	if path == "" {
		return []Prompt{}
	}

	prompts, err := ReadFile(path)
	if err != nil {
		s.logger.Warnf("Error reading prompts from %s: %v", path, err)
		return []Prompt{}
	}
	if prompts == nil {
		return []Prompt{}
	}
	return prompts
}

func (s *Store) save(scope Scope, prompts []Prompt) error {
	path := s.pathFor(scope)
	if path == "" {
		return ErrNoProjectContext
	}
	if err := WriteFile(path, prompts); err != nil {
		s.logger.Errorf("Error writing prompts to %s: %v", path, err)
		return err
	}
	return nil
}

// WriteCollection replaces the whole collection for scope.
func (s *Store) WriteCollection(scope Scope, prompts []Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(scope, prompts)
}

// MergedView returns the union of both collections without duplicate
// names. A project prompt replaces a global prompt of the same name.
// Callers that need a display order should use SortByName.
func (s *Store) MergedView() []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merged()
}

func (s *Store) merged() []Prompt {
	return Merge(s.load(ScopeGlobal), s.load(ScopeProject))
}

// FindByName looks name up in the merged view.
func (s *Store) FindByName(name string) (Prompt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.merged() {
		if p.Name == name {
			return p, true
		}
	}
	return Prompt{}, false
}

// InsertOrUpdate stores p in the collection for p.Scope.
//
// For an update, previous is the prompt being replaced; it is removed from
// its own scope's collection before p is appended, which may touch both
// files when the scope changed. The duplicate check runs before anything is
// written, so a failed call leaves both files unchanged.
func (s *Store) InsertOrUpdate(p Prompt, isUpdate bool, previous *Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !p.Scope.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidScope, p.Scope)
	}
	if p.Scope == ScopeProject && !s.project.IsOpen() {
		return ErrNoProjectContext
	}

	for _, existing := range s.load(p.Scope) {
		if isUpdate && previous != nil && previous.Scope == p.Scope && existing.Name == previous.Name {
			continue
		}
		if existing.Name == p.Name {
			return fmt.Errorf("%w: a %s prompt named %q already exists", ErrDuplicateName, p.Scope.Label(), p.Name)
		}
	}

	if isUpdate && previous != nil {
		if previous.Scope == ScopeProject && !s.project.IsOpen() {
			s.logger.Warnf("previous prompt %q is project-specific but no project is open; leaving it in place", previous.Name)
		} else {
			remaining := removeByName(s.load(previous.Scope), previous.Name)
			if err := s.save(previous.Scope, remaining); err != nil {
				return err
			}
		}
	}

	updated := append(s.load(p.Scope), p)
	return s.save(p.Scope, updated)
}

// Delete removes the prompt called name from the collection that owns it in
// the merged view. It returns false when the name is unknown or refers to a
// project prompt while no project is open.
func (s *Store) Delete(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		found  bool
		target mergedEntry
	)
	for _, e := range mergeEntries(s.load(ScopeGlobal), s.load(ScopeProject)) {
		if e.prompt.Name == name {
			target, found = e, true
			break
		}
	}
	if !found {
		return false, nil
	}
	if target.prompt.Scope == ScopeProject && !s.project.IsOpen() {
		return false, nil
	}

	remaining := removeByName(s.load(target.origin), name)
	if err := s.save(target.origin, remaining); err != nil {
		return false, err
	}
	return true, nil
}

func removeByName(prompts []Prompt, name string) []Prompt {
	out := make([]Prompt, 0, len(prompts))
	for _, p := range prompts {
		if p.Name != name {
			out = append(out, p)
		}
	}
	return out
}
