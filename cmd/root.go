package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrono-city/chronoscore/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "chronoscore",
	Short: "Composite urban quality scoring engine",
	Long:  "Scores places 0-100 across seven thematic chapters (urban fabric, resilience, vitality, connectivity, prosperity, environment, culture) from pre-aggregated geospatial indicators.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
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
