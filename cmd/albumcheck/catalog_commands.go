package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"albumcheck/internal/catalog"
	"albumcheck/internal/config"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the playlist catalog",
	}

	catalogCmd.AddCommand(newCatalogInitCommand(ctx))
	catalogCmd.AddCommand(newCatalogStatsCommand(ctx))
	catalogCmd.AddCommand(newCatalogPendingCommand(ctx))
	return catalogCmd
}

func newCatalogInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty catalog database with the tracks schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				target = cfg.Paths.CatalogDB
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve catalog path: %w", err)
				}
				target = expanded
			}

			store, err := catalog.Create(cmd.Context(), target)
			if err != nil {
				return err
			}
			defer store.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog ready at %s\n", store.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Catalog database to create (defaults to paths.catalog_db)")
	return cmd
}

func newCatalogStatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show track and album counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			pendingGroups := stats.Groups - stats.AcquiredGroups
			payload := map[string]any{
				"catalog":         store.Path(),
				"tracks":          stats.Tracks,
				"groups":          stats.Groups,
				"acquired_groups": stats.AcquiredGroups,
				"pending_groups":  pendingGroups,
			}
			return emit(cmd, asJSON, payload, func(out io.Writer) error {
				fmt.Fprintf(out, "Catalog: %s\n", store.Path())
				metrics := newTable(leftColumn("Metric"), rightColumn("Count"))
				metrics.row("Tracks", strconv.Itoa(stats.Tracks))
				metrics.row("Albums", strconv.Itoa(stats.Groups))
				metrics.row("Acquired", strconv.Itoa(stats.AcquiredGroups))
				metrics.row("Pending", strconv.Itoa(pendingGroups))
				fmt.Fprintln(out, metrics.render())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newCatalogPendingCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List albums with tracks not yet marked downloaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			pending, err := store.Pending(cmd.Context())
			if err != nil {
				return err
			}
			if pending == nil {
				pending = []catalog.PendingGroup{}
			}
			return emit(cmd, asJSON, pending, func(out io.Writer) error {
				if len(pending) == 0 {
					fmt.Fprintln(out, "No pending albums")
					return nil
				}
				groups := newTable(leftColumn("Artist"), leftColumn("Album"), rightColumn("Missing"), leftColumn("Playlist"))
				for _, g := range pending {
					groups.row(g.Artist, g.Album, fmt.Sprintf("%d/%d", g.Missing, g.Tracks), g.GroupID)
				}
				fmt.Fprintln(out, groups.render())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
