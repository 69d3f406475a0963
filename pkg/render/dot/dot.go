package dot

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/demes/pkg/demes"
	"github.com/matzehuels/demes/pkg/render"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds one line per epoch (interval, sizes, size function)
	// to each deme label. When false, labels show the id and lifetime.
	Detailed bool
	// HideMigrations omits continuous migration edges, which dominate
	// the picture for models with many demes.
	HideMigrations bool
}

// ToDOT converts a graph to Graphviz DOT source.
//
// Demes are boxes ordered top to bottom by ancestry. Ancestry edges are
// solid and labelled with the proportion when a deme has several
// ancestors. Pulses are dashed red edges labelled with proportion and
// time; migrations are dotted grey edges labelled with the rate. Pulse and
// migration edges do not constrain the layout.
func ToDOT(g *demes.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph demes {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, d := range g.Demes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", d.ID, fmtLabel(d, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, d := range g.Demes {
		for i, a := range d.Ancestors {
			if len(d.Ancestors) > 1 {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", a, d.ID, fmtNum(d.Proportions[i]))
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", a, d.ID)
		}
	}

	for _, p := range g.Pulses {
		label := fmt.Sprintf("%s @ %s", fmtNum(p.Proportion), fmtNum(p.Time))
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=firebrick, fontcolor=firebrick, constraint=false, label=%q];\n",
			p.Source, p.Dest, label)
	}

	if !opts.HideMigrations {
		for _, m := range g.Migrations {
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted, color=grey40, fontcolor=grey40, constraint=false, label=%q];\n",
				m.Source, m.Dest, fmtNum(m.Rate))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(d *demes.Deme, detailed bool) string {
	head := fmt.Sprintf("%s\n[%s, %s)", d.ID, fmtNum(d.EndTime()), fmtNum(d.StartTime()))
	if !detailed {
		return head
	}
	lines := []string{head}
	for _, e := range d.Epochs {
		size := fmtNum(e.InitialSize)
		if e.InitialSize != e.FinalSize {
			size += "→" + fmtNum(e.FinalSize)
		}
		lines = append(lines, fmt.Sprintf("[%s, %s) N=%s %s",
			fmtNum(e.EndTime), fmtNum(e.StartTime), size, e.SizeFunction))
	}
	return strings.Join(lines, "\n")
}

func fmtNum(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// RenderSVG renders DOT source to SVG using the in-process Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from its
// viewBox instead of Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion at the given scale.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
