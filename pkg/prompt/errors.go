package prompt

import "errors"

var (
	// ErrDuplicateName is returned when the target collection already holds
	// a prompt with the same name. Nothing was written.
	ErrDuplicateName = errors.New("prompt: duplicate name")

	// ErrNoProjectContext is returned for project-scoped mutations while no
	// project is open. Nothing was written.
	ErrNoProjectContext = errors.New("prompt: no project open")

	// ErrWriteFailure wraps I/O errors raised while persisting a collection.
	ErrWriteFailure = errors.New("prompt: write failed")

	// ErrReadFailure wraps I/O and parse errors raised while loading a
	// collection. LoadCollection never returns it; it only appears in logs
	// and from ReadFile.
	ErrReadFailure = errors.New("prompt: read failed")

	ErrInvalidScope = errors.New("prompt: invalid scope")

	// ErrSharedCollection is returned when a project's collection file is
	// the global collection file.
	ErrSharedCollection = errors.New("prompt: project collection is the global collection")

	ErrNameRequired = errors.New("short name is required")
	ErrNameTooLong  = errors.New("short name must be 25 characters or less")
	ErrBodyRequired = errors.New("detailed instruction is required")
)
