// Package config loads recognizer options from files and keeps a running
// recognizer in sync with them.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/gesture"
)

// ErrUnsupportedFormat is returned for files whose extension is not .toml,
// .yaml, .yml or .json.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format identifies an option file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// Load reads the option file at path and merges it over the defaults.
func Load(path string) (gesture.Options, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	overrides, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return gesture.MergeOptions(overrides), nil
}

// Parse decodes a flat table of option overrides. A "gesture" table, if
// present, is used in place of the top level so options can share a file
// with other settings.
func Parse(data []byte, format Format) (gesture.Options, error) {
	var raw map[string]any
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}
	if section, ok := raw["gesture"].(map[string]any); ok {
		raw = section
	}
	return gesture.Options(raw), nil
}
