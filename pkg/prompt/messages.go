package prompt

import (
	"errors"
	"fmt"
)

// NoProjectMessage is shown when a project-specific prompt cannot be saved.
const NoProjectMessage = "No workspace folder found. Cannot save project-specific prompt."

// CopiedMessage reports a prompt body placed on the clipboard.
func CopiedMessage(name string) string {
	return fmt.Sprintf("Prompt %q copied to clipboard.", name)
}

// DeleteConfirmMessage is the question asked before deleting name.
func DeleteConfirmMessage(name string) string {
	return fmt.Sprintf("Are you sure you want to delete the prompt %q?", name)
}

// DuplicateMessage reports a name clash inside one scope's collection.
func DuplicateMessage(scope Scope, name string) string {
	return fmt.Sprintf("A %s prompt with the name %q already exists. Please choose a different name.", scope.Label(), name)
}

// Describe turns an error from New or Store.InsertOrUpdate into a sentence
// for the user. p is the prompt that was being saved.
func Describe(err error, p Prompt) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicateName):
		return DuplicateMessage(p.Scope, p.Name)
	case errors.Is(err, ErrNoProjectContext):
		return NoProjectMessage
	case errors.Is(err, ErrNameRequired):
		return "Short name is required."
	case errors.Is(err, ErrNameTooLong):
		return fmt.Sprintf("Short name must be %d characters or less.", NameMaxLength)
	case errors.Is(err, ErrBodyRequired):
		return "Detailed instruction is required."
	default:
		return fmt.Sprintf("Failed to save prompt %q: %v", p.Name, err)
	}
}
