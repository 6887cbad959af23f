package tabular

import (
	"context"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/civicmap/mapdata-cli/internal/model"
)

// Canonical column names callers can require in the header.
const (
	ColEntity   = "Entity"
	ColDomain   = "Domain"
	ColCategory = "Category"
)

// Options configures table reading.
type Options struct {
	Require []string // canonical column names that must be present
}

// headerAliases maps lowercased header cells to canonical columns. The
// category column appears under two names depending on the sheet vintage.
var headerAliases = map[string]string{
	"entity":                    ColEntity,
	"domain":                    ColDomain,
	"description":               "Description",
	"category":                  ColCategory,
	"map bucket 1 (normalized)": ColCategory,
	"sub category":              "Sub Category",
	"subcategory":               "Sub Category",
	"hq":                        "HQ",
	"logo":                      "Logo",
	"hub url":                   "Hub URL",
	"hub_url":                   "Hub URL",
}

// columns holds the index of each recognized column, -1 when absent.
type columns struct {
	entity      int
	domain      int
	description int
	category    int
	subcategory int
	hq          int
	logo        int
	hubURL      int
}

// mapColumns indexes the recognized columns. When two headers alias the
// same column (a sheet carrying both "Category" and "Map Bucket 1
// (Normalized)"), the leftmost one wins.
func mapColumns(header []string) columns {
	cols := columns{entity: -1, domain: -1, description: -1, category: -1, subcategory: -1, hq: -1, logo: -1, hubURL: -1}
	set := func(dst *int, i int) {
		if *dst < 0 {
			*dst = i
		}
	}
	for i, cell := range header {
		switch headerAliases[strings.ToLower(strings.TrimSpace(cell))] {
		case ColEntity:
			set(&cols.entity, i)
		case ColDomain:
			set(&cols.domain, i)
		case "Description":
			set(&cols.description, i)
		case ColCategory:
			set(&cols.category, i)
		case "Sub Category":
			set(&cols.subcategory, i)
		case "HQ":
			set(&cols.hq, i)
		case "Logo":
			set(&cols.logo, i)
		case "Hub URL":
			set(&cols.hubURL, i)
		}
	}
	return cols
}

func (c columns) index(name string) int {
	switch name {
	case ColEntity:
		return c.entity
	case ColDomain:
		return c.domain
	case ColCategory:
		return c.category
	}
	return -1
}

func (c columns) validate(require []string) error {
	for _, name := range require {
		if c.index(name) < 0 {
			return eris.Errorf("table: required column %q not found in header", name)
		}
	}
	return nil
}

// cellAt returns the trimmed cell at index i, or "" when the record is short
// or the column is absent.
func cellAt(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func rowsFromRecords(records [][]string, opts Options) ([]model.Row, error) {
	if len(records) == 0 {
		return nil, eris.New("table: no header row")
	}

	cols := mapColumns(records[0])
	if err := cols.validate(opts.Require); err != nil {
		return nil, err
	}

	rows := make([]model.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, model.Row{
			Entity:      cellAt(record, cols.entity),
			Domain:      cellAt(record, cols.domain),
			Description: cellAt(record, cols.description),
			Category:    cellAt(record, cols.category),
			Subcategory: cellAt(record, cols.subcategory),
			HQ:          cellAt(record, cols.hq),
			Logo:        cellAt(record, cols.logo),
			HubURL:      cellAt(record, cols.hubURL),
		})
	}
	return rows, nil
}

// ReadCSV reads a delimited table with a header row into normalized rows.
func ReadCSV(ctx context.Context, path string, opts Options) ([]model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	records, err := ReadCSVRecords(ctx, f)
	if err != nil {
		return nil, err
	}
	return rowsFromRecords(records, opts)
}

// ReadXLSX reads the first sheet of a workbook into normalized rows.
func ReadXLSX(path string, opts Options) ([]model.Row, error) {
	records, err := ReadXLSXRecords(path)
	if err != nil {
		return nil, err
	}
	return rowsFromRecords(records, opts)
}

// ReadTable reads rows from the spreadsheet when it exists, falling back to
// the delimited file. Returns the path actually read. Fails fast when
// neither exists, naming both candidates.
func ReadTable(ctx context.Context, xlsxPath, csvPath string, opts Options) ([]model.Row, string, error) {
	if _, err := os.Stat(xlsxPath); err == nil {
		rows, err := ReadXLSX(xlsxPath, opts)
		return rows, xlsxPath, err
	}
	if _, err := os.Stat(csvPath); err == nil {
		rows, err := ReadCSV(ctx, csvPath, opts)
		return rows, csvPath, err
	}
	return nil, "", eris.Errorf("table: no input found (tried %s and %s)", xlsxPath, csvPath)
}
