package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/demes/pkg/errors"
)

// validateCommand creates the validate command for checking model files.
func (c *CLI) validateCommand() *cobra.Command {
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check that model files are valid",
		Long: `Check that model files are valid.

Each file is decoded, built through the graph builders and audited. Pulse
ordering warnings are reported but do not make a model invalid. The
command fails if any file is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args, inputFormat)
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: yaml, json, toml (default: from extension)")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, paths []string, inputFormat string) error {
	var failed int
	for _, path := range paths {
		g, err := c.loadGraph(ctx, path, inputFormat)
		if err == nil {
			err = g.Validate()
		}
		if err != nil {
			printError(c.Out, "%s: %v", path, err)
			failed++
			continue
		}

		printSuccess(c.Out, "%s is valid", path)
		printStats(c.Out, graphStats(g)...)
		for _, w := range g.Warnings() {
			printWarning(c.Out, "%s", w.Message)
		}
	}

	if failed > 0 {
		return errors.Valuef("%d of %d models invalid", failed, len(paths))
	}
	return nil
}
