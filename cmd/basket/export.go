package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/basket/internal/cli"
	"github.com/Veraticus/basket/internal/common"
	"github.com/Veraticus/basket/internal/config"
	"github.com/Veraticus/basket/internal/engine"
	"github.com/Veraticus/basket/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved runs to external services",
	}

	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets <run-id>",
		Short: "Write a saved run to Google Sheets",
		Long: `Write a run's thresholds, rules and frequent itemsets to a Google Sheets spreadsheet.

Authenticate first with 'basket auth sheets' or configure sheets.service_account_path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if name, _ := cmd.Flags().GetString("spreadsheet-name"); name != "" {
				viper.Set("sheets.spreadsheet_name", name)
			}
			if id, _ := cmd.Flags().GetString("spreadsheet-id"); id != "" {
				viper.Set("sheets.spreadsheet_id", id)
			}

			sheetsConfig, err := config.LoadSheetsConfig(viper.GetViper())
			if err != nil {
				return common.NewUserError("Google Sheets is not configured; run 'basket auth sheets' first", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
			if err != nil {
				return fmt.Errorf("failed to create sheets writer: %w", err)
			}

			if err := engine.New(store, slog.Default()).Export(ctx, args[0], writer); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported run %s to %q", args[0], sheetsConfig.SpreadsheetName)))
			return nil
		},
	}

	cmd.Flags().String("spreadsheet-name", "", "Spreadsheet to create or reuse (overrides config)")
	cmd.Flags().String("spreadsheet-id", "", "Existing spreadsheet ID (overrides config)")

	return cmd
}
