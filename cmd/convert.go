package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/civicmap/mapdata-cli/internal/tabular"
)

var (
	convertCSVPath  string
	convertXLSXPath string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "One-time: create the XLSX table from the CSV so the map can use Excel as source",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		csvPath := convertCSVPath
		if csvPath == "" {
			csvPath = cfg.Input.CSVPath
		}
		xlsxPath := convertXLSXPath
		if xlsxPath == "" {
			xlsxPath = cfg.Input.XLSXPath
		}

		f, err := os.Open(csvPath)
		if err != nil {
			return eris.Wrapf(err, "open %s", csvPath)
		}
		defer f.Close() //nolint:errcheck

		records, err := tabular.ReadCSVRecords(ctx, f)
		if err != nil {
			return eris.Wrap(err, "read csv")
		}

		if err := tabular.WriteXLSX(xlsxPath, "Map data", records); err != nil {
			return eris.Wrap(err, "write xlsx")
		}

		zap.L().Info("workbook created",
			zap.String("csv", csvPath),
			zap.String("xlsx", xlsxPath),
			zap.Int("rows", len(records)),
		)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertCSVPath, "csv", "", "path to CSV table (default from config)")
	convertCmd.Flags().StringVar(&convertXLSXPath, "xlsx", "", "path for the created workbook (default from config)")
	rootCmd.AddCommand(convertCmd)
}
