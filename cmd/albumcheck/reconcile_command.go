package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"albumcheck/internal/reconcile"
)

type reconcileFlags struct {
	threshold   int
	timeout     int
	showExact   bool
	dryRun      bool
	json        bool
	skipTrigger bool
}

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	flags := reconcileFlags{}

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match the album listing against the catalog and mark acquired albums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				flags.threshold = -1
			} else if flags.threshold < 0 {
				return fmt.Errorf("--threshold must be between 0 and 100, got %d", flags.threshold)
			}
			if !cmd.Flags().Changed("timeout") {
				flags.timeout = -1
			} else if flags.timeout <= 0 {
				return fmt.Errorf("--timeout must be positive, got %d", flags.timeout)
			}
			return runReconcile(cmd, ctx, flags)
		},
	}

	cmd.Flags().IntVar(&flags.threshold, "threshold", 0, "Fuzzy candidate threshold (0-100); overrides matching.fuzzy_threshold")
	cmd.Flags().IntVar(&flags.timeout, "timeout", 0, "Seconds to wait for the listing to stabilize; overrides inventory.stabilization_timeout")
	cmd.Flags().BoolVar(&flags.showExact, "show-exact", false, "Print exact matches as well")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Resolve and report without updating the catalog")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&flags.skipTrigger, "skip-trigger", false, "Read the existing listing without regenerating it")
	return cmd
}

// runReconcile executes one pass. Negative threshold or timeout keeps the
// configured value.
func runReconcile(cmd *cobra.Command, ctx *commandContext, flags reconcileFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if flags.threshold > 100 {
		return fmt.Errorf("--threshold must be between 0 and 100, got %d", flags.threshold)
	}

	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	store, err := ctx.openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	var reporter reconcile.Reporter
	jsonOut := &jsonReporter{report: jsonReport{DryRun: flags.dryRun, Lines: []jsonLine{}}}
	if flags.json {
		reporter = jsonOut
	} else {
		reporter = &consoleReporter{out: out, colorize: shouldColorize(out), showExact: flags.showExact}
	}

	runner, err := reconcile.New(cfg, store, reporter, logger)
	if err != nil {
		return err
	}
	if flags.threshold >= 0 {
		runner.Resolver.Threshold = float64(flags.threshold)
	}
	if flags.timeout > 0 {
		runner.Options.Timeout = time.Duration(flags.timeout) * time.Second
	}
	runner.Options.DryRun = flags.dryRun
	runner.Options.SkipTrigger = flags.skipTrigger

	if !flags.json && !flags.skipTrigger {
		fmt.Fprintf(out, "Creating %s...\n", cfg.Paths.InventoryFile)
	}

	result, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	jsonOut.report.RunID = result.RunID
	return emit(cmd, flags.json, jsonOut.report, func(io.Writer) error { return nil })
}
