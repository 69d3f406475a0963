// Package dot renders demographic model graphs as Graphviz diagrams.
//
// # Usage
//
//	src := dot.ToDOT(g, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(src)
//
// [ToDOT] produces plain DOT source that can also be saved and processed
// with external Graphviz tools. [RenderSVG] lays it out in-process with
// [github.com/goccy/go-graphviz], so no Graphviz installation is needed.
// [RenderPDF] and [RenderPNG] convert the SVG with rsvg-convert.
//
// # Edges
//
//   - solid: ancestry, labelled with the proportion for multi-ancestor demes
//   - dashed: pulses, labelled "proportion @ time"
//   - dotted: migrations, labelled with the rate (see [Options.HideMigrations])
package dot
