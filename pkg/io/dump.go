package io

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/demes/pkg/demes"
	"github.com/matzehuels/demes/pkg/errors"
)

// jsonInfinity replaces +Inf in JSON output.
const jsonInfinity = "Infinity"

// Write encodes g in format f and writes it to w.
func Write(g *demes.Graph, w io.Writer, f Format) error {
	f, err := ParseFormat(string(f))
	if err != nil {
		return err
	}
	data := g.AsDict()
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(data); err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(jsonSafe(data))
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(data)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "encode %s", f)
	}
	return nil
}

// Dumps encodes g in format f.
func Dumps(g *demes.Graph, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Dump writes g to the file at path. An empty f infers the format from the
// file extension.
func Dump(g *demes.Graph, path string, f Format) error {
	f, err := resolveFormat(f, path)
	if err != nil {
		return err
	}
	data, err := Dumps(g, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// jsonSafe returns a copy of v with infinite floats replaced by strings.
func jsonSafe(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = jsonSafe(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = jsonSafe(e)
		}
		return out
	case float64:
		switch {
		case math.IsInf(x, 1):
			return jsonInfinity
		case math.IsInf(x, -1):
			return "-" + jsonInfinity
		}
	}
	return v
}
