package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// SectionIDUI is the identifier for the UI settings section
	SectionIDUI = "ui"

	// Default values for UI settings
	defaultQuitAfterCopy = true
	defaultConfirmDelete = true
	defaultShowScope     = true
	defaultToastDuration = 3 * time.Second

	minToastDuration = 500 * time.Millisecond
	maxToastDuration = 30 * time.Second
)

// UISection manages interactive menu behavior.
type UISection struct {
	QuitAfterCopy bool          `json:"quit_after_copy"`
	ConfirmDelete bool          `json:"confirm_delete"`
	ShowScope     bool          `json:"show_scope"`
	ToastDuration time.Duration `json:"toast_duration"`
	mu            sync.RWMutex
}

// NewUISection creates a new UI section with default settings.
func NewUISection() *UISection {
	return &UISection{
		QuitAfterCopy: defaultQuitAfterCopy,
		ConfirmDelete: defaultConfirmDelete,
		ShowScope:     defaultShowScope,
		ToastDuration: defaultToastDuration,
	}
}

// ID returns the section identifier.
func (s *UISection) ID() string {
	return SectionIDUI
}

// Title returns the section title.
func (s *UISection) Title() string {
	return "UI Settings"
}

// Description returns the section description.
func (s *UISection) Description() string {
	return "Configure the interactive menu: copy behavior, delete confirmation and status messages."
}

// Data returns the current configuration data.
func (s *UISection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"quit_after_copy": s.QuitAfterCopy,
		"confirm_delete":  s.ConfirmDelete,
		"show_scope":      s.ShowScope,
		"toast_duration":  s.ToastDuration.String(),
	}
}

// SetData updates the configuration from the provided data.
func (s *UISection) SetData(data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "quit_after_copy", "confirm_delete", "show_scope":
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for %s: expected bool, got %T", key, value)
			}
			switch key {
			case "quit_after_copy":
				s.QuitAfterCopy = enabled
			case "confirm_delete":
				s.ConfirmDelete = enabled
			default:
				s.ShowScope = enabled
			}

		case "toast_duration":
			// Handle both string and numeric duration values
			switch v := value.(type) {
			case string:
				duration, err := time.ParseDuration(v)
				if err != nil {
					return fmt.Errorf("invalid duration string for toast_duration: %w", err)
				}
				s.ToastDuration = duration
			case float64:
				// JSON numbers come as float64
				s.ToastDuration = time.Duration(v)
			case int64:
				s.ToastDuration = time.Duration(v)
			default:
				return fmt.Errorf("invalid value type for toast_duration: expected string or number, got %T", value)
			}

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *UISection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ToastDuration < minToastDuration || s.ToastDuration > maxToastDuration {
		return fmt.Errorf("toast_duration must be between %v and %v, got %v", minToastDuration, maxToastDuration, s.ToastDuration)
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *UISection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.QuitAfterCopy = defaultQuitAfterCopy
	s.ConfirmDelete = defaultConfirmDelete
	s.ShowScope = defaultShowScope
	s.ToastDuration = defaultToastDuration
}

// Snapshot returns a copy of the current settings without the lock.
func (s *UISection) Snapshot() UISettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return UISettings{
		QuitAfterCopy: s.QuitAfterCopy,
		ConfirmDelete: s.ConfirmDelete,
		ShowScope:     s.ShowScope,
		ToastDuration: s.ToastDuration,
	}
}

// UISettings is a plain copy of UISection values handed to the menu.
type UISettings struct {
	QuitAfterCopy bool
	ConfirmDelete bool
	ShowScope     bool
	ToastDuration time.Duration
}

// DefaultUISettings returns the built-in UI defaults.
func DefaultUISettings() UISettings {
	return NewUISection().Snapshot()
}
