// Package pkg holds the public libraries for working with demographic
// models in the demes format.
//
// # Packages
//
//   - [demes]: the model itself (epochs, demes, migrations, pulses and the
//     split/branch/merge/admix descriptors), graph builders that validate on
//     insert, the global Graph.Validate audit, time rescaling,
//     tolerance-based equivalence and the nested-map form
//   - [io]: YAML, JSON and TOML encoding of graphs
//   - [render/dot]: Graphviz diagrams of a graph
//   - [render]: SVG to PDF/PNG conversion
//   - [errors]: coded errors separating type errors from value errors
//   - [buildinfo]: version information injected at build time
//
// # Data Flow
//
//	YAML / JSON / TOML
//	       ↓
//	  [io] package (decode to nested maps)
//	       ↓
//	  [demes] package (FromDict → builders → validated Graph)
//	       ↓
//	  InGenerations / IsClose / DiscreteEvents / AsDict
//	       ↓
//	  [io] or [render/dot] (encode, draw)
//
// [demes]: github.com/matzehuels/demes/pkg/demes
// [io]: github.com/matzehuels/demes/pkg/io
// [render/dot]: github.com/matzehuels/demes/pkg/render/dot
// [render]: github.com/matzehuels/demes/pkg/render
// [errors]: github.com/matzehuels/demes/pkg/errors
// [buildinfo]: github.com/matzehuels/demes/pkg/buildinfo
package pkg
