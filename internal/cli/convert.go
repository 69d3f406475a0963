package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// convertCommand creates the convert command for changing file formats.
func (c *CLI) convertCommand() *cobra.Command {
	var inputFormat, format, output string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a model between YAML, JSON and TOML",
		Long: `Convert a model between YAML, JSON and TOML.

The output is the fully resolved form of the model: every deme lists its
ancestors, proportions and complete epochs, and symmetric migrations are
expanded into asymmetric pairs.

The output format is taken from --format, then from the extension of
--output, then from the config file, and defaults to YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], inputFormat, output, format, false)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: yaml, json, toml")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: yaml, json, toml (default: from extension)")

	return cmd
}

// generationsCommand creates the generations command for rescaling time units.
func (c *CLI) generationsCommand() *cobra.Command {
	var inputFormat, format, output string

	cmd := &cobra.Command{
		Use:   "generations [file]",
		Short: "Rewrite a model with times measured in generations",
		Long: `Rewrite a model with times measured in generations.

Every time (deme and epoch bounds, migration intervals, pulse times) is
divided by the model's generation_time. Models already in generations are
written unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], inputFormat, output, format, true)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: yaml, json, toml")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: yaml, json, toml (default: from extension)")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, input, inputFormat, output, format string, generations bool) error {
	g, err := c.loadGraph(ctx, input, inputFormat)
	if err != nil {
		return err
	}
	if generations {
		logger := loggerFromContext(ctx)
		if g.GenerationTime != nil {
			logger.Debug("Rescaling", "time_units", g.TimeUnits, "generation_time", *g.GenerationTime)
		}
		g = g.InGenerations()
	}
	return c.writeGraph(g, output, format)
}
