package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/entrhq/promptpilot/pkg/prompt"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The operation failed (duplicate name, not found, write error)
	ExitCommandError = 2 // Bad usage (unknown flag, missing argument, invalid path)
)

// ExitError carries the exit code a command failed with.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not
// an ExitError come from cobra's argument and flag parsing.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// saveError maps a store error to a user facing ExitError.
func saveError(err error, p prompt.Prompt) error {
	code := ExitFailure
	if errors.Is(err, prompt.ErrInvalidScope) {
		code = ExitCommandError
	}
	return NewExitError(code, prompt.Describe(err, p))
}

func notFound(name string) error {
	return NewExitError(ExitFailure, fmt.Sprintf("Prompt %q not found.", name))
}

const listBodyWidth = 50

var headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var bodyCell = lipgloss.NewStyle().Padding(0, 1)

// writeTable prints prompts as NAME / SCOPE / INSTRUCTION rows.
func writeTable(w io.Writer, prompts []prompt.Prompt) error {
	if len(prompts) == 0 {
		_, err := fmt.Fprintln(w, "No prompts found.")
		return err
	}

	rows := make([][]string, 0, len(prompts))
	for _, p := range prompts {
		rows = append(rows, []string{p.Name, p.Scope.Label(), summary(p.Body, listBodyWidth)})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		}).
		Headers("NAME", "SCOPE", "INSTRUCTION").
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.String())
	return err
}

// summary flattens body to one line of at most width runes.
func summary(body string, width int) string {
	line := strings.Join(strings.Fields(body), " ")
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width-3]) + "..."
}
