// Package io loads and dumps demographic model graphs as YAML, JSON or TOML.
//
// # Overview
//
// The core [demes] package only knows the canonical nested-map form of a
// graph ([demes.Graph.AsDict] and [demes.FromDict]). This package converts
// that form to and from text. Loading always replays the document through
// the graph builders, so a loaded graph is validated and any same-time
// pulse warnings are raised exactly as for a hand-built graph.
//
// # Formats
//
//   - yaml: the interchange format, decoded with gopkg.in/yaml.v3
//   - json: encoded indented; infinite times are written as the string
//     "Infinity" because JSON has no infinity literal
//   - toml: decoded and encoded with github.com/BurntSushi/toml
//
// [FormatFromPath] picks a format from a file extension.
//
// # Loading
//
//	g, err := io.Load("model.yaml", io.FormatYAML)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// [LoadsAsDict] stops after decoding and returns the nested map without
// building a graph.
//
// # Dumping
//
//	data, err := io.Dumps(g, io.FormatJSON)
//
// Dumped documents are fully resolved: every default is written out, so a
// load-dump-load round trip yields an equal graph ([demes.Graph.IsClose]),
// though not necessarily byte-identical text.
//
// # Errors
//
// Decoding failures carry errors.ErrCodeInvalidFormat, missing files
// errors.ErrCodeFileNotFound and unknown formats errors.ErrCodeUnsupported.
// Model violations surface unchanged from [demes.FromDict].
package io
