package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// eventsCommand creates the events command for listing discrete events.
func (c *CLI) eventsCommand() *cobra.Command {
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "events [file]",
		Short: "List the splits, branches, merges and admixtures of a model",
		Long: `List the splits, branches, merges and admixtures of a model.

Events are derived from deme ancestry: a deme with one ancestor that ends
at the deme's start time is part of a split, otherwise a branch. A deme
with several ancestors that all end at its start time is a merge,
otherwise an admixture. Pulses are listed last.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEvents(cmd.Context(), args[0], inputFormat)
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: yaml, json, toml (default: from extension)")

	return cmd
}

func (c *CLI) runEvents(ctx context.Context, path, inputFormat string) error {
	g, err := c.loadGraph(ctx, path, inputFormat)
	if err != nil {
		return err
	}
	ev := g.DiscreteEvents()

	fmt.Fprintln(c.Out, StyleTitle.Render(path)+" "+StyleDim.Render("("+g.TimeUnits+")"))
	for _, s := range ev.Splits {
		printKeyValue(c.Out, "split", fmt.Sprintf("%s %s %s @ %s", s.Parent, iconArrow, strings.Join(s.Children, ", "), fmtTime(s.Time)))
	}
	for _, b := range ev.Branches {
		printKeyValue(c.Out, "branch", fmt.Sprintf("%s %s %s @ %s", b.Parent, iconArrow, b.Child, fmtTime(b.Time)))
	}
	for _, m := range ev.Merges {
		printKeyValue(c.Out, "merge", fmt.Sprintf("%s %s %s @ %s", weighted(m.Parents, m.Proportions), iconArrow, m.Child, fmtTime(m.Time)))
	}
	for _, a := range ev.Admixtures {
		printKeyValue(c.Out, "admix", fmt.Sprintf("%s %s %s @ %s", weighted(a.Parents, a.Proportions), iconArrow, a.Child, fmtTime(a.Time)))
	}
	for _, p := range g.Pulses {
		printKeyValue(c.Out, "pulse", fmt.Sprintf("%s %s %s (%s) @ %s", p.Source, iconArrow, p.Dest, fmtTime(p.Proportion), fmtTime(p.Time)))
	}

	if n := len(ev.Splits) + len(ev.Branches) + len(ev.Merges) + len(ev.Admixtures) + len(g.Pulses); n == 0 {
		printInfo(c.Out, "no discrete events")
	}
	return nil
}

// weighted renders parents with their proportions, e.g. "a (0.3), b (0.7)".
func weighted(ids []string, proportions []float64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s (%s)", id, fmtTime(proportions[i]))
	}
	return strings.Join(parts, ", ")
}

func fmtTime(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

