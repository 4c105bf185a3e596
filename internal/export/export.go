// Package export renders the inventory as JSON or YAML documents.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"evalgo.org/eqinv/internal/inventory"
	"evalgo.org/eqinv/models"
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml in any letter case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format %q: use json or yaml", s)
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Snapshot is the full exported document.
type Snapshot struct {
	GeneratedAt time.Time          `json:"generatedAt" yaml:"generated_at"`
	Equipment   []models.Equipment `json:"equipment" yaml:"equipment"`
	Summary     inventory.Summary  `json:"summary" yaml:"summary"`
}

// NewSnapshot captures every record of reg and its aggregates.
func NewSnapshot(reg *inventory.Registry, at time.Time) Snapshot {
	return Snapshot{
		GeneratedAt: at.UTC(),
		Equipment:   reg.All(),
		Summary:     reg.Summary(),
	}
}

// Encode writes v to w in the given format.
func Encode(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// WriteFile encodes v into path, creating parent directories.
func WriteFile(path string, format Format, v interface{}) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close export file: %w", cerr)
		}
	}()

	if err := Encode(f, format, v); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}
