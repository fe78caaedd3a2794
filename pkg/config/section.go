package config

// Section is one named group of settings persisted under
// "sections.<id>" in the settings file.
type Section interface {
	// ID is the key the section is stored under.
	ID() string

	// Title is a short human readable name.
	Title() string

	// Description explains what the section controls.
	Description() string

	// Data returns the section as plain JSON-compatible values.
	Data() map[string]interface{}

	// SetData applies values read from the store. Unknown keys are ignored.
	SetData(data map[string]interface{}) error

	// Validate reports whether the current values are usable.
	Validate() error

	// Reset restores the built-in defaults.
	Reset()
}
