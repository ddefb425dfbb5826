package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unitflow/unitflow/internal/config"
	"github.com/unitflow/unitflow/internal/format"
	"github.com/unitflow/unitflow/internal/inputs"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "unitflow",
	Short: "Unit-tracked engineering calculations",
	Long:  "Tracks physical quantities through calculation chains: dimension-checked arithmetic, provenance trails, audit logs, and lineage export.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		if cfg.Units.OverlayPath != "" {
			if err := inputs.LoadOverlay(cfg.Units.OverlayPath); err != nil {
				return fmt.Errorf("load unit overlay: %w", err)
			}
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newFormatter builds a formatter with the templates registered in config.
func newFormatter() (*format.Formatter, error) {
	f := format.NewFormatter()
	for category, tpl := range cfg.Formats.Categories {
		err := f.RegisterTemplate(category, format.Template{
			Precision: tpl.Precision,
			Notation:  format.Notation(tpl.Notation),
			Grouping:  tpl.Grouping,
		})
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
