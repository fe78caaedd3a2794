package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// ErrUnknownKey is returned by Set for a key no registered section has.
var ErrUnknownKey = errors.New("unknown setting")

// Manager owns the registered sections and moves their data in and out
// of a Store.
type Manager struct {
	store    Store
	sections map[string]Section
	order    []string
	mu       sync.RWMutex
}

// NewManager creates a manager backed by store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sections: make(map[string]Section),
	}
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// RegisterSection adds a section. Registering the same ID twice is an error.
func (m *Manager) RegisterSection(section Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := section.ID()
	if _, exists := m.sections[id]; exists {
		return fmt.Errorf("section %q already registered", id)
	}

	m.sections[id] = section
	m.order = append(m.order, id)
	return nil
}

// GetSection looks up a section by ID.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	section, ok := m.sections[id]
	return section, ok
}

// GetSections returns every section in registration order.
func (m *Manager) GetSections() []Section {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sections := make([]Section, 0, len(m.order))
	for _, id := range m.order {
		sections = append(sections, m.sections[id])
	}
	return sections
}

// LoadAll reloads the store and pushes its data into each section.
func (m *Manager) LoadAll() error {
	if err := m.store.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	for _, section := range m.GetSections() {
		data, err := m.store.GetSection(section.ID())
		if err != nil {
			return fmt.Errorf("failed to read section %s: %w", section.ID(), err)
		}
		if err := section.SetData(data); err != nil {
			return fmt.Errorf("failed to apply section %s: %w", section.ID(), err)
		}
	}
	return nil
}

// ValidateAll reports the first section whose values are unusable.
func (m *Manager) ValidateAll() error {
	for _, section := range m.GetSections() {
		if err := section.Validate(); err != nil {
			return fmt.Errorf("invalid section %s: %w", section.ID(), err)
		}
	}
	return nil
}

// SaveAll validates every section, copies it into the store and saves.
// Nothing is written when any section is invalid.
func (m *Manager) SaveAll() error {
	if err := m.ValidateAll(); err != nil {
		return err
	}

	sections := m.GetSections()

	for _, section := range sections {
		if err := m.store.SetSection(section.ID(), section.Data()); err != nil {
			return fmt.Errorf("failed to store section %s: %w", section.ID(), err)
		}
	}

	if err := m.store.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// ResetAll restores the defaults of every section without saving.
func (m *Manager) ResetAll() {
	for _, section := range m.GetSections() {
		section.Reset()
	}
}

// Set assigns one value addressed as "<section>.<key>". raw is parsed as
// the type the key currently holds. The section keeps its previous values
// when raw is rejected; nothing is saved.
func (m *Manager) Set(key, raw string) error {
	id, field, ok := strings.Cut(key, ".")
	if !ok || id == "" || field == "" {
		return fmt.Errorf("%w: %q (expected <section>.<key>)", ErrUnknownKey, key)
	}
	section, ok := m.GetSection(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	previous := section.Data()
	current, ok := previous[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	value, err := parseValue(current, raw)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	next := copySection(previous)
	next[field] = value
	if err := section.SetData(next); err != nil {
		_ = section.SetData(previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := section.Validate(); err != nil {
		_ = section.SetData(previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

func parseValue(current interface{}, raw string) (interface{}, error) {
	switch current.(type) {
	case bool:
		return strconv.ParseBool(raw)
	case float64:
		return strconv.ParseFloat(raw, 64)
	case string:
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported setting type %T", current)
	}
}
