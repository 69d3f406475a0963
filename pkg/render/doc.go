// Package render converts rendered diagrams between output formats.
//
// The [dot] subpackage lays out demographic models with Graphviz and
// produces SVG. [ToPDF] and [ToPNG] convert that SVG using the external
// rsvg-convert tool (from librsvg):
//
//	svg, err := dot.RenderSVG(dot.ToDOT(g, dot.Options{}))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// When rsvg-convert is not on PATH both functions fail with an
// UNSUPPORTED error carrying installation instructions.
//
// [dot]: github.com/matzehuels/demes/pkg/render/dot
package render
