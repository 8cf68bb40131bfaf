package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/basket/internal/cli"
	"github.com/Veraticus/basket/internal/ingest"
	"github.com/Veraticus/basket/internal/model"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import baskets from purchase histories",
		Long: `Import purchase histories and group them into baskets.

A basket is the set of distinct items one customer bought on one day.
Baskets already in the database are skipped, so re-importing a file is safe.`,
	}

	cmd.PersistentFlags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.PersistentFlags().Bool("no-progress", false, "Hide the progress bar")

	cmd.AddCommand(importCSVCmd())
	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Import a row-per-item purchase CSV",
		Long: `Import a CSV with one row per purchased item, such as the Groceries dataset.

Rows are grouped into baskets by customer and date.

Examples:
  # Groceries dataset (Member_number, Date, itemDescription)
  basket import csv Groceries_dataset.csv

  # Custom column names and ISO dates
  basket import csv orders.csv --customer-column customer_id --item-column product --date-format 2006-01-02`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := ingest.NewCSVReader()
			reader.CustomerColumn, _ = cmd.Flags().GetString("customer-column")
			reader.DateColumn, _ = cmd.Flags().GetString("date-column")
			reader.ItemColumn, _ = cmd.Flags().GetString("item-column")
			reader.DateFormat, _ = cmd.Flags().GetString("date-format")
			return runImport(cmd, args[0], reader)
		},
	}

	cmd.Flags().String("customer-column", ingest.DefaultCustomerColumn, "Column holding the customer or member number")
	cmd.Flags().String("date-column", ingest.DefaultDateColumn, "Column holding the purchase date")
	cmd.Flags().String("item-column", ingest.DefaultItemColumn, "Column holding the item description")
	cmd.Flags().String("date-format", ingest.DefaultDateFormat, "Go layout of the date column")

	return cmd
}

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ofx <file>",
		Short: "Import an OFX/QFX bank or card statement",
		Long: `Import an OFX or QFX statement exported from your bank.

Each account's debits on one posting day form a basket of merchant names.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := ingest.NewOFXReader()
			reader.IncludeCredits, _ = cmd.Flags().GetBool("include-credits")
			return runImport(cmd, args[0], reader)
		},
	}

	cmd.Flags().Bool("include-credits", false, "Also treat deposits and refunds as purchases")

	return cmd
}

func runImport(cmd *cobra.Command, path string, reader ingest.Reader) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	out := cmd.OutOrStdout()

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interrupts.HandleInterrupts(cmd.Context(), "Import", "Nothing was saved; run the import again to resume.")
	defer interrupts.Stop()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var size int64
	if info, statErr := f.Stat(); statErr == nil {
		size = info.Size()
	}

	slog.Info("Importing baskets", "file", path, "dry_run", dryRun)

	var baskets []model.Basket
	if noProgress {
		baskets, err = reader.Read(ctx, f)
	} else {
		progress := cli.NewProgressReader(f, cmd.ErrOrStderr(), size, "Reading "+filepath.Base(path))
		baskets, err = reader.Read(ctx, progress)
		progress.Finish()
	}
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	items := 0
	for _, b := range baskets {
		items += len(b.Items)
	}
	fmt.Fprintf(out, "Found %d baskets with %d items\n", len(baskets), items)

	if dryRun {
		fmt.Fprintln(out, cli.FormatInfo("Dry run: no baskets saved"))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	inserted, err := store.SaveBaskets(ctx, baskets)
	if err != nil {
		return fmt.Errorf("failed to save baskets: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d new baskets (%d already present)", inserted, len(baskets)-inserted)))
	return nil
}
