package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/demes/pkg/demes"
	"github.com/matzehuels/demes/pkg/errors"
)

// LoadsAsDict decodes data into the nested-map form of a graph without
// validating it.
func LoadsAsDict(data []byte, f Format) (map[string]any, error) {
	f, err := ParseFormat(string(f))
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &out)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		err = dec.Decode(&out)
	case FormatTOML:
		err = toml.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// LoadAsDict reads the file at path and decodes it with [LoadsAsDict]. An
// empty f infers the format from the file extension.
func LoadAsDict(path string, f Format) (map[string]any, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if f, err = resolveFormat(f, path); err != nil {
		return nil, err
	}
	return LoadsAsDict(data, f)
}

// Loads decodes data and builds a validated graph with [demes.FromDict].
// opts are passed to the graph, typically a warning handler.
func Loads(data []byte, f Format, opts ...demes.Option) (*demes.Graph, error) {
	m, err := LoadsAsDict(data, f)
	if err != nil {
		return nil, err
	}
	return demes.FromDict(m, opts...)
}

// Read is [Loads] over an io.Reader. It does not close r.
func Read(r io.Reader, f Format, opts ...demes.Option) (*demes.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read")
	}
	return Loads(data, f, opts...)
}

// Load reads a graph from the file at path. An empty f infers the format
// from the file extension.
func Load(path string, f Format, opts ...demes.Option) (*demes.Graph, error) {
	m, err := LoadAsDict(path, f)
	if err != nil {
		return nil, err
	}
	return demes.FromDict(m, opts...)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return data, nil
}
