package prompt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the backing file name used in both scopes.
const DefaultFileName = "PromptPilot.json"

// Encode renders a collection the way it is stored on disk: a JSON array
// indented with two spaces, HTML characters left unescaped.
func Encode(prompts []Prompt) ([]byte, error) {
	if prompts == nil {
		prompts = []Prompt{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(prompts); err != nil {
		return nil, fmt.Errorf("failed to encode prompts: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a stored collection. Fields are not validated.
func Decode(data []byte) ([]Prompt, error) {
	var prompts []Prompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to decode prompts: %w", err)
	}
	return prompts, nil
}

// ReadFile loads the collection stored at path. A missing file is an empty
// collection, not an error.
func ReadFile(path string) ([]Prompt, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFailure, path, err)
	}

	prompts, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFailure, path, err)
	}
	return prompts, nil
}

// WriteFile persists a collection at path, creating the parent directory if
// needed. The file is replaced atomically via a temporary file.
func WriteFile(path string, prompts []Prompt) error {
	data, err := Encode(prompts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("%w: create directory for %s: %v", ErrWriteFailure, path, err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailure, tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("%w: rename %s: %v", ErrWriteFailure, path, err)
	}
	return nil
}
