package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/civicmap/mapdata-cli/internal/pillar"
	"github.com/civicmap/mapdata-cli/internal/tabular"
)

var (
	categoriesCSVPath string
	categoriesOutPath string
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Rebuild the flat category JSON (with HQ data) from the source CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		csvPath := categoriesCSVPath
		if csvPath == "" {
			csvPath = cfg.Input.CSVPath
		}
		outPath := categoriesOutPath
		if outPath == "" {
			outPath = cfg.Output.CompaniesPath
		}

		rows, err := tabular.ReadCSV(ctx, csvPath, tabular.Options{
			Require: []string{tabular.ColEntity, tabular.ColCategory},
		})
		if err != nil {
			return eris.Wrap(err, "read csv")
		}

		doc := pillar.ClassifyFlat(rows)
		if err := doc.WriteFile(outPath); err != nil {
			return eris.Wrap(err, "write document")
		}
		doc.LogStats(zap.L(), outPath)
		return nil
	},
}

func init() {
	categoriesCmd.Flags().StringVar(&categoriesCSVPath, "csv", "", "path to CSV table (default from config)")
	categoriesCmd.Flags().StringVar(&categoriesOutPath, "out", "", "output JSON path (default from config)")
	rootCmd.AddCommand(categoriesCmd)
}
