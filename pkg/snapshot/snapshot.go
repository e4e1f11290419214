// Package snapshot persists person records to disk. Files ending in .yaml or
// .yml are written as YAML, anything else as indented JSON.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sherine-k/infection/pkg/agent"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a snapshot
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from the file extension
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode serializes records in the given format
func Encode(records []agent.Memento, format Format) ([]byte, error) {
	if records == nil {
		records = []agent.Memento{}
	}

	switch format {
	case FormatYAML:
		return yaml.Marshal(records)
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
}

// Decode parses records in the given format and validates each one
func Decode(data []byte, format Format) ([]agent.Memento, error) {
	var records []agent.Memento

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}

	for _, m := range records {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}

	if records == nil {
		records = []agent.Memento{}
	}

	return records, nil
}

// Save writes records to path, replacing any previous file
func Save(path string, records []agent.Memento) error {
	data, err := Encode(records, FormatFor(path))
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	return nil
}

// Load reads the records stored at path
func Load(path string) ([]agent.Memento, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	records, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}

	return records, nil
}
