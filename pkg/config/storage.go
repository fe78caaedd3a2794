package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// SectionIDStorage is the identifier for the storage section
	SectionIDStorage = "storage"

	defaultProjectDir = ".promptpilot"
	defaultFileName   = "PromptPilot.json"
)

// StorageSection says where prompt collections live. An empty GlobalDir
// means ~/.promptpilot.
type StorageSection struct {
	GlobalDir  string `json:"global_dir"`
	ProjectDir string `json:"project_dir"`
	FileName   string `json:"file_name"`
	mu         sync.RWMutex
}

// NewStorageSection creates a storage section with default locations.
func NewStorageSection() *StorageSection {
	return &StorageSection{
		ProjectDir: defaultProjectDir,
		FileName:   defaultFileName,
	}
}

func (s *StorageSection) ID() string {
	return SectionIDStorage
}

func (s *StorageSection) Title() string {
	return "Storage"
}

func (s *StorageSection) Description() string {
	return "Locations of the global and project prompt collections."
}

func (s *StorageSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"global_dir":  s.GlobalDir,
		"project_dir": s.ProjectDir,
		"file_name":   s.FileName,
	}
}

func (s *StorageSection) SetData(data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		var target *string
		switch key {
		case "global_dir":
			target = &s.GlobalDir
		case "project_dir":
			target = &s.ProjectDir
		case "file_name":
			target = &s.FileName
		default:
			continue
		}

		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("invalid value type for %s: expected string, got %T", key, value)
		}
		*target = str
	}
	return nil
}

// Validate requires a bare file name and a project directory inside the
// project root.
func (s *StorageSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FileName == "" {
		return fmt.Errorf("file_name is required")
	}
	if s.FileName != filepath.Base(s.FileName) || strings.ContainsAny(s.FileName, `/\`) {
		return fmt.Errorf("file_name must not contain a directory: %q", s.FileName)
	}
	if s.ProjectDir == "" {
		return fmt.Errorf("project_dir is required")
	}
	if !filepath.IsLocal(s.ProjectDir) {
		return fmt.Errorf("project_dir must stay inside the project root: %q", s.ProjectDir)
	}
	return nil
}

func (s *StorageSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.GlobalDir = ""
	s.ProjectDir = defaultProjectDir
	s.FileName = defaultFileName
}

// Locations returns the global directory, project directory and file name.
func (s *StorageSection) Locations() (globalDir, projectDir, fileName string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.GlobalDir, s.ProjectDir, s.FileName
}

// SetGlobalDir overrides the global directory.
func (s *StorageSection) SetGlobalDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GlobalDir = dir
}
