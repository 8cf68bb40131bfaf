package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/basket/internal/cli"
	"github.com/Veraticus/basket/internal/config"
	"github.com/Veraticus/basket/internal/engine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func mineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine association rules from stored baskets",
		Long: `Find frequent itemsets with Apriori and derive association rules from them.

Thresholds come from flags, then the mining section of the config file, then the
defaults. The run is saved so it can be reviewed or exported later.

Examples:
  # Mine with the configured thresholds
  basket mine

  # Pairs only, strongest ten rules by confidence
  basket mine --min-length 2 --max-length 2 --top 10 --sort confidence

  # Only December, without saving the run
  basket mine --since 2015-12-01 --until 2015-12-31 --no-save`,
		Args: cobra.NoArgs,
		RunE: runMine,
	}

	cmd.Flags().Float64("min-support", config.DefaultMinSupport, "Minimum support of a frequent itemset")
	cmd.Flags().Float64("min-confidence", config.DefaultMinConfidence, "Minimum rule confidence")
	cmd.Flags().Float64("min-lift", config.DefaultMinLift, "Minimum rule lift")
	cmd.Flags().Int("min-length", config.DefaultMinLength, "Smallest itemset size rules are derived from")
	cmd.Flags().Int("max-length", config.DefaultMaxLength, "Largest itemset size rules are derived from")
	cmd.Flags().String("mode", string(config.DefaultRuleMode), "Rule pruning mode (uniform, classic)")
	cmd.Flags().String("counting", string(config.DefaultCounting), "Support counting strategy (bitmap, scan)")

	// Bind flags to viper
	_ = viper.BindPFlag("mining.min_support", cmd.Flags().Lookup("min-support"))
	_ = viper.BindPFlag("mining.min_confidence", cmd.Flags().Lookup("min-confidence"))
	_ = viper.BindPFlag("mining.min_lift", cmd.Flags().Lookup("min-lift"))
	_ = viper.BindPFlag("mining.min_length", cmd.Flags().Lookup("min-length"))
	_ = viper.BindPFlag("mining.max_length", cmd.Flags().Lookup("max-length"))
	_ = viper.BindPFlag("mining.mode", cmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("mining.counting", cmd.Flags().Lookup("counting"))

	cmd.Flags().Int("top", 0, "Show only the strongest N rules (0 shows all)")
	cmd.Flags().String("sort", string(cli.SortByLift), "Order rules by lift, confidence or support")
	cmd.Flags().Bool("no-save", false, "Do not persist the run")
	cmd.Flags().BoolP("verbose", "v", false, "List every frequent itemset")
	addFilterFlags(cmd)

	return cmd
}

func runMine(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	top, _ := cmd.Flags().GetInt("top")
	noSave, _ := cmd.Flags().GetBool("no-save")
	verbose, _ := cmd.Flags().GetBool("verbose")
	sortFlag, _ := cmd.Flags().GetString("sort")

	sortBy, err := cli.ParseSortKey(sortFlag)
	if err != nil {
		return err
	}
	filter, err := basketFilter(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.LoadMiningConfig(viper.GetViper())
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interrupts.HandleInterrupts(cmd.Context(), "Mining", "No run was saved.")
	defer interrupts.Stop()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	outcome, err := engine.New(store, slog.Default()).Mine(ctx, cfg, engine.Options{
		Filter: filter,
		DryRun: noSave,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatTitle("Association Rules"))
	fmt.Fprintf(out, "Total transactions: %d\n\n", outcome.Result.Transactions)

	fmt.Fprintln(out, cli.StyleTitle("Frequent itemsets"))
	if err := cli.RenderItemsets(out, outcome.Itemsets, verbose); err != nil {
		return err
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, cli.StyleTitle(fmt.Sprintf("Rules (sorted by %s)", sortBy)))
	if err := cli.RenderRules(out, outcome.Rules, cli.RuleTableOptions{SortBy: sortBy, Top: top}); err != nil {
		return err
	}

	if outcome.Saved {
		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.FormatSuccess("Saved run "+outcome.Run.ID))
	}
	return nil
}
