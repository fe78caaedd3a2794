package prompt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding used by Export and Import.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml".
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q: must be json or yaml", value)
	}
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Export writes prompts to w. JSON output is byte-compatible with the
// backing files.
func Export(w io.Writer, prompts []Prompt, format Format) error {
	if prompts == nil {
		prompts = []Prompt{}
	}

	switch format {
	case FormatJSON:
		data, err := Encode(prompts)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(prompts); err != nil {
			return fmt.Errorf("failed to encode prompts: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// Import reads prompts previously written by Export or copied from a
// backing file. Records are returned as read; callers validate them.
func Import(r io.Reader, format Format) ([]Prompt, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts: %w", err)
	}

	switch format {
	case FormatJSON:
		return Decode(data)
	case FormatYAML:
		var prompts []Prompt
		if err := yaml.Unmarshal(data, &prompts); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return prompts, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
