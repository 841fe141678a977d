package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tn-afk/cme-event-contracts-scraper/internal/notify"
)

var runCmd = &cobra.Command{
	Use:   "run [spreadsheet-id]",
	Short: "Run a single scrape pass",
	Long:  "Fetches both CME reports, extracts the daily volumes, and writes the dated row to the tracking spreadsheet. The spreadsheet ID argument takes precedence over CME_SPREADSHEET_ID.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		spreadsheetID, err := resolveSpreadsheetID(args)
		if err != nil {
			return err
		}

		n := notify.New(cfg.Notify)

		env, err := initPipeline(ctx, spreadsheetID, n)
		if err != nil {
			return failPass(ctx, n, eris.Wrap(err, "init pipeline"))
		}

		result, err := env.Pipeline.Run(ctx)
		if err != nil {
			return failPass(ctx, n, eris.Wrap(err, "pipeline run"))
		}

		zap.L().Info("scrape pass complete",
			zap.String("date", result.Row.Date),
			zap.Int64("section73", result.Row.Section73),
			zap.Int64("swaps", result.Row.Swaps),
			zap.String("action", string(result.Action)),
		)

		// Print result JSON to stdout
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
