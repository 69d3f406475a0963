package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/demes/pkg/demes"
	"github.com/matzehuels/demes/pkg/io"
)

// loadGraph reads and validates the model at path. Warnings raised while
// building the graph are logged as they occur.
func (c *CLI) loadGraph(ctx context.Context, path, format string) (*demes.Graph, error) {
	logger := loggerFromContext(ctx)

	var f io.Format
	if format != "" {
		var err error
		if f, err = io.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	prog := newProgress(logger)
	g, err := io.Load(path, f, demes.WithWarningHandler(warningLogger(logger, path)))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	prog.done(fmt.Sprintf("Loaded %s: %d demes, %d migrations, %d pulses",
		path, len(g.Demes), len(g.Migrations), len(g.Pulses)))
	return g, nil
}

// writeGraph writes g to output, or to c.Out when output is empty.
func (c *CLI) writeGraph(g *demes.Graph, output, format string) error {
	f, err := c.cfg.outputFormat(format, output)
	if err != nil {
		return err
	}
	if output == "" {
		return io.Write(g, c.Out, f)
	}
	if err := io.Dump(g, output, f); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess(c.Out, "Wrote %s model", f)
	printFile(c.Out, output)
	return nil
}

func graphStats(g *demes.Graph) []stat {
	return []stat{
		{len(g.Demes), "demes"},
		{len(g.Migrations), "migrations"},
		{len(g.Pulses), "pulses"},
	}
}
