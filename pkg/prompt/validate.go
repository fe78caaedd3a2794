package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// NameMaxLength is the longest short name the controllers accept.
const NameMaxLength = 25

// ValidateName checks a short name as typed by the user.
// The store itself does not enforce these rules.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return ErrNameTooLong
	}
	return nil
}

// ValidateBody checks a detailed instruction as typed by the user.
func ValidateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return ErrBodyRequired
	}
	return nil
}

// New validates user input and returns a trimmed Prompt.
func New(name, body string, scope Scope) (Prompt, error) {
	if err := ValidateName(name); err != nil {
		return Prompt{}, err
	}
	if err := ValidateBody(body); err != nil {
		return Prompt{}, err
	}
	if !scope.Valid() {
		return Prompt{}, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	return Prompt{
		Name:  strings.TrimSpace(name),
		Body:  strings.TrimSpace(body),
		Scope: scope,
	}, nil
}
