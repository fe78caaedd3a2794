package prompt

import (
	"fmt"
	"strings"
)

// Scope determines which backing collection owns a prompt.
type Scope string

const (
	ScopeGlobal  Scope = "Global"
	ScopeProject Scope = "Project-specific"
)

// Scopes lists the valid scopes in display order.
var Scopes = []Scope{ScopeGlobal, ScopeProject}

// Label returns the lower-case wording used in user-facing messages.
func (s Scope) Label() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeProject:
		return "project-specific"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the known scopes.
func (s Scope) Valid() bool {
	return s == ScopeGlobal || s == ScopeProject
}

// ParseScope accepts the persisted values as well as the short forms
// "global" and "project", case-insensitively.
func ParseScope(value string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "global", "g":
		return ScopeGlobal, nil
	case "project-specific", "project", "p":
		return ScopeProject, nil
	default:
		return "", fmt.Errorf("%w: %q (expected global or project)", ErrInvalidScope, value)
	}
}

// Prompt is a named text snippet. Names are unique within a collection.
type Prompt struct {
	Name  string `json:"shortName" yaml:"name"`
	Body  string `json:"detailedInstruction" yaml:"body"`
	Scope Scope  `json:"scope" yaml:"scope"`
}

func (p Prompt) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Scope)
}
