package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/civicmap/mapdata-cli/internal/pillar"
	"github.com/civicmap/mapdata-cli/internal/tabular"
)

var (
	updateCSVPath  string
	updateXLSXPath string
	updateOutPath  string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rebuild the three-pillar companiesV2 JSON from the source table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		csvPath := updateCSVPath
		if csvPath == "" {
			csvPath = cfg.Input.CSVPath
		}
		xlsxPath := updateXLSXPath
		if xlsxPath == "" {
			xlsxPath = cfg.Input.XLSXPath
		}
		outPath := updateOutPath
		if outPath == "" {
			outPath = cfg.Output.CompaniesV2Path
		}

		rows, source, err := tabular.ReadTable(ctx, xlsxPath, csvPath, tabular.Options{
			Require: []string{tabular.ColEntity, tabular.ColCategory},
		})
		if err != nil {
			return eris.Wrap(err, "read table")
		}
		zap.L().Info("table read", zap.String("source", source), zap.Int("rows", len(rows)))

		doc := pillar.Classify(rows)
		if err := doc.WriteFile(outPath); err != nil {
			return eris.Wrap(err, "write document")
		}
		doc.LogStats(zap.L(), outPath)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateCSVPath, "csv", "", "path to CSV table (default from config)")
	updateCmd.Flags().StringVar(&updateXLSXPath, "xlsx", "", "path to XLSX table, preferred when present (default from config)")
	updateCmd.Flags().StringVar(&updateOutPath, "out", "", "output JSON path (default from config)")
	rootCmd.AddCommand(updateCmd)
}
