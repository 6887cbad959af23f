package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/civicmap/mapdata-cli/internal/logos"
	"github.com/civicmap/mapdata-cli/internal/tabular"
)

var (
	logosCSVPath string
	logosOutDir  string
)

var logosCmd = &cobra.Command{
	Use:   "logos",
	Short: "Download a PNG logo for every entity in the source CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		csvPath := logosCSVPath
		if csvPath == "" {
			csvPath = cfg.Input.CSVPath
		}
		outDir := logosOutDir
		if outDir == "" {
			outDir = cfg.Logos.Dir
		}

		rows, err := tabular.ReadCSV(ctx, csvPath, tabular.Options{
			Require: []string{tabular.ColEntity, tabular.ColDomain},
		})
		if err != nil {
			return eris.Wrap(err, "read csv")
		}

		resolver := logos.NewResolver(logos.Options{
			OutDir:        outDir,
			BrandfetchKey: cfg.Logos.BrandfetchKey,
			Client: logos.ClientOptions{
				Timeout:   time.Duration(cfg.Logos.TimeoutSecs) * time.Second,
				Delay:     time.Duration(cfg.Logos.DelayMS) * time.Millisecond,
				UserAgent: cfg.Logos.UserAgent,
			},
		})

		sum, err := resolver.Run(ctx, rows)
		if err != nil {
			return eris.Wrap(err, "logo batch")
		}

		zap.L().Info("logo batch complete",
			zap.Int("successful", sum.Succeeded),
			zap.Int("skipped", sum.Skipped),
			zap.Int("failed", len(sum.Failures)),
			zap.String("dir", outDir),
		)

		if len(sum.Failures) > 0 {
			if err := logos.WriteReport(cfg.Logos.ReportPath, sum.Failures); err != nil {
				return eris.Wrap(err, "write failure report")
			}
			zap.L().Info("failure report written", zap.String("path", cfg.Logos.ReportPath))
		}
		return nil
	},
}

func init() {
	logosCmd.Flags().StringVar(&logosCSVPath, "csv", "", "path to CSV table (default from config)")
	logosCmd.Flags().StringVar(&logosOutDir, "output", "", "output directory for PNG files (default from config)")
	rootCmd.AddCommand(logosCmd)
}
