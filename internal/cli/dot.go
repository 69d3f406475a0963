package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/demes/pkg/errors"
	"github.com/matzehuels/demes/pkg/render/dot"
)

const (
	diagramDOT = "dot"
	diagramSVG = "svg"
	diagramPDF = "pdf"
	diagramPNG = "png"
)

// dotOpts holds the command-line flags for the dot command.
type dotOpts struct {
	inputFormat    string
	output         string  // output file (default: stdout)
	format         string  // dot, svg, pdf or png
	detailed       bool    // one label line per epoch
	hideMigrations bool    // omit migration edges
	scale          float64 // png resolution multiplier
}

// dotCommand creates the dot command for drawing a model as a diagram.
func (c *CLI) dotCommand() *cobra.Command {
	opts := dotOpts{scale: defaultPNGScale}

	cmd := &cobra.Command{
		Use:   "dot [file]",
		Short: "Draw a model as a Graphviz diagram",
		Long: `Draw a model as a Graphviz diagram.

Demes are drawn as boxes labelled with their time interval. Solid edges
show ancestry, dashed edges pulses and dotted edges continuous migration.

The default output is DOT source. SVG is rendered in-process; PDF and PNG
additionally require rsvg-convert (librsvg). Without --format the output
format is taken from the extension of --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := diagramFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			opts.format = format
			return c.runDOT(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot (default), svg, pdf, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list epochs in deme labels")
	cmd.Flags().BoolVar(&opts.hideMigrations, "no-migrations", false, "omit migration edges")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format: yaml, json, toml (default: from extension)")

	return cmd
}

// diagramFormat resolves the diagram format from the flag or the output
// file extension.
func diagramFormat(flag, output string) (string, error) {
	if flag == "" {
		flag = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if flag == "" || flag == "gv" {
			return diagramDOT, nil
		}
	}
	switch f := strings.ToLower(flag); f {
	case diagramDOT, diagramSVG, diagramPDF, diagramPNG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "invalid diagram format: %s (must be 'dot', 'svg', 'pdf' or 'png')", flag)
}

func (c *CLI) runDOT(ctx context.Context, input string, opts dotOpts) error {
	g, err := c.loadGraph(ctx, input, opts.inputFormat)
	if err != nil {
		return err
	}

	src := dot.ToDOT(g, dot.Options{Detailed: opts.detailed, HideMigrations: opts.hideMigrations})

	prog := newProgress(loggerFromContext(ctx))
	var data []byte
	switch opts.format {
	case diagramDOT:
		data = []byte(src)
	case diagramSVG:
		data, err = dot.RenderSVG(src)
	case diagramPDF:
		data, err = dot.RenderPDF(src)
	case diagramPNG:
		data, err = dot.RenderPNG(src, opts.scale)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", opts.format, err)
	}
	prog.done(fmt.Sprintf("Rendered %s", opts.format))

	if opts.output == "" {
		_, err := c.Out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
	}
	printSuccess(c.Out, "Rendered %s", opts.format)
	printFile(c.Out, opts.output)
	return nil
}
