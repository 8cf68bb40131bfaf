package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/basket/internal/cli"
	"github.com/Veraticus/basket/internal/engine"
	"github.com/Veraticus/basket/internal/tui"
	"github.com/Veraticus/basket/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Review saved mining runs",
	}

	cmd.AddCommand(runsListCmd())
	cmd.AddCommand(runsShowCmd())
	cmd.AddCommand(runsDeleteCmd())

	return cmd
}

func runsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved mining runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}
			return cli.RenderRunList(cmd.OutOrStdout(), runs)
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to show (0 shows all)")

	return cmd
}

func runsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the thresholds and rules of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  runRunsShow,
	}

	cmd.Flags().BoolP("interactive", "i", false, "Browse the rules in an interactive table")
	cmd.Flags().Int("top", 0, "Show only the strongest N rules (0 shows all)")
	cmd.Flags().String("sort", string(cli.SortByLift), "Order rules by lift, confidence or support")
	cmd.Flags().BoolP("verbose", "v", false, "List every frequent itemset")

	return cmd
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	interactive, _ := cmd.Flags().GetBool("interactive")
	top, _ := cmd.Flags().GetInt("top")
	verbose, _ := cmd.Flags().GetBool("verbose")
	sortFlag, _ := cmd.Flags().GetString("sort")

	sortBy, err := cli.ParseSortKey(sortFlag)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	report, err := engine.New(store, slog.Default()).Report(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", args[0], err)
	}

	if interactive {
		return tui.Run(ctx, report.Rules,
			tui.WithTitle(fmt.Sprintf("Run %s", report.Run.ID)),
			tui.WithSort(sortBy),
			tui.WithTheme(themes.ByName(viper.GetString("tui.theme"))),
		)
	}

	fmt.Fprintln(out, cli.FormatTitle("Mining Run"))
	if err := cli.RenderRunSummary(out, report.Run); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if err := cli.RenderItemsets(out, report.Itemsets, verbose); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return cli.RenderRules(out, report.Rules, cli.RuleTableOptions{SortBy: sortBy, Top: top})
}

func runsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a saved run and its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			yes, _ := cmd.Flags().GetBool("yes")

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load run %s: %w", args[0], err)
			}

			if !yes {
				reader := cli.NewNonBlockingReader(cmd.InOrStdin())
				question := fmt.Sprintf("Delete run %s with %d rules?", run.ID, run.RuleCount)
				ok, err := cli.Confirm(ctx, reader, out, question)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Nothing deleted"))
					return nil
				}
			}

			if err := store.DeleteRun(ctx, run.ID); err != nil {
				return fmt.Errorf("failed to delete run: %w", err)
			}
			fmt.Fprintln(out, cli.FormatSuccess("Deleted run "+run.ID))
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
