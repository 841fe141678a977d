package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tn-afk/cme-event-contracts-scraper/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "cme-scraper",
	Short: "CME event contracts volume tracker",
	Long:  "Downloads the CME Section 73 and swap-based event contracts reports, extracts daily traded volumes, and upserts a dated row into a Google Sheets tracking spreadsheet.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
