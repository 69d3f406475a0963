package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/demes/pkg/errors"
)

// Format names a text encoding of a graph.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatYAML, FormatJSON, FormatTOML}

// ParseFormat returns the format named by s (case-insensitive). "yml" is
// accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unknown format %q (want yaml, json or toml)", s)
}

// FormatFromPath returns the format implied by the extension of path,
// defaulting to YAML for unknown extensions.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

func resolveFormat(f Format, path string) (Format, error) {
	if f == "" {
		return FormatFromPath(path), nil
	}
	return ParseFormat(string(f))
}
