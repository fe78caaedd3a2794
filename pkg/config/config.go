package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// Load builds a manager with the storage and ui sections registered,
// loaded from configPath (DefaultPath when empty) and validated.
func Load(configPath string) (*Manager, error) {
	store, err := NewFileStore(configPath)
	if err != nil {
		return nil, err
	}

	manager := NewManager(store)
	if err := manager.RegisterSection(NewStorageSection()); err != nil {
		return nil, err
	}
	if err := manager.RegisterSection(NewUISection()); err != nil {
		return nil, err
	}

	if err := manager.LoadAll(); err != nil {
		return nil, err
	}
	if err := manager.ValidateAll(); err != nil {
		return nil, err
	}
	return manager, nil
}

// Initialize loads the configuration and installs it as the global manager.
// This should be called once at application startup.
func Initialize(configPath string) error {
	manager, err := Load(configPath)
	if err != nil {
		return err
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}

	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// StorageOf returns the storage section registered on m, or nil.
func StorageOf(m *Manager) *StorageSection {
	section, ok := m.GetSection(SectionIDStorage)
	if !ok {
		return nil
	}
	storage, _ := section.(*StorageSection)
	return storage
}

// UIOf returns the ui section registered on m, or nil.
func UIOf(m *Manager) *UISection {
	section, ok := m.GetSection(SectionIDUI)
	if !ok {
		return nil
	}
	ui, _ := section.(*UISection)
	return ui
}

// GetStorage returns the storage section from global config.
// Returns nil if config is not initialized.
func GetStorage() *StorageSection {
	if !IsInitialized() {
		return nil
	}
	return StorageOf(Global())
}

// GetUI returns the UI section from global config.
// Returns nil if config is not initialized.
func GetUI() *UISection {
	if !IsInitialized() {
		return nil
	}
	return UIOf(Global())
}
