package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"albumcheck/internal/inventory"
	"albumcheck/internal/matching"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var threshold int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "match <artist/album>",
		Short: "Resolve a single listing line against the catalog without writing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			pair, ok := inventory.ParseLine(args[0])
			if !ok {
				return fmt.Errorf("expected artist/album, got %q", strings.TrimSpace(args[0]))
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Matching.FuzzyThreshold
			}
			if threshold < 0 || threshold > 100 {
				return fmt.Errorf("--threshold must be between 0 and 100, got %d", threshold)
			}

			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			outcome := matching.NewResolver(float64(threshold)).Resolve(pair, records)

			collected := &jsonReporter{}
			collected.Line(pair.Display(), outcome, nil)
			return emit(cmd, asJSON, collected.report.Lines[0], func(out io.Writer) error {
				console := &consoleReporter{out: out, colorize: shouldColorize(out), showExact: true}
				console.Line(pair.Display(), outcome, nil)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", matching.DefaultThreshold, "Fuzzy candidate threshold (0-100)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
