package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"albumcheck/internal/inventory"
)

func newInventoryCommand(ctx *commandContext) *cobra.Command {
	inventoryCmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inspect the local album listing",
	}
	inventoryCmd.AddCommand(newInventoryShowCommand(ctx))
	return inventoryCmd
}

func newInventoryShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the parsed listing in resolution order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			pairs, err := inventory.Load(cfg.Paths.InventoryFile)
			if err != nil {
				return err
			}
			type entry struct {
				Artist string `json:"artist"`
				Album  string `json:"album"`
			}
			entries := make([]entry, 0, len(pairs))
			for _, p := range pairs {
				entries = append(entries, entry{Artist: p.Artist, Album: p.Album})
			}
			return emit(cmd, asJSON, entries, func(out io.Writer) error {
				for _, p := range pairs {
					fmt.Fprintln(out, p.Display())
				}
				fmt.Fprintf(out, "\n%d entries in %s\n", len(pairs), cfg.Paths.InventoryFile)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
