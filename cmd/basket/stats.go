package main

import (
	"fmt"

	"github.com/Veraticus/basket/internal/cli"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the stored baskets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			top, _ := cmd.Flags().GetInt("top")

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			var stats cli.Stats
			if stats.Baskets, err = store.CountBaskets(ctx); err != nil {
				return err
			}
			if stats.DistinctItems, err = store.CountDistinctItems(ctx); err != nil {
				return err
			}
			if stats.TopItems, err = store.GetItemFrequencies(ctx, top); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("Basket Statistics"))
			return cli.RenderStats(out, stats)
		},
	}

	cmd.Flags().Int("top", 10, "Number of most frequent items to show")

	return cmd
}
