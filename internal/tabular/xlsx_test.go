package tabular

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempXLSX(t *testing.T, records [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.xlsx")
	require.NoError(t, WriteXLSX(path, "Map data", records))
	return path
}

func TestWriteReadXLSX_RoundTrip(t *testing.T) {
	records := [][]string{
		{"Entity", "Domain", "Category"},
		{"Acme", "acme.com", "Field & Mobilization"},
		{"Café Média", "cafe.fr", "Research & Intelligence"},
	}
	path := writeTempXLSX(t, records)

	got, err := ReadXLSXRecords(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestReadXLSX_NormalizedRows(t *testing.T) {
	path := writeTempXLSX(t, [][]string{
		{"Entity", "Domain", "Sub Category", "Category"},
		{" Acme ", "acme.com", "Polling", "Research & Intelligence"},
	})

	rows, err := ReadXLSX(path, Options{Require: []string{ColEntity, ColCategory}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Entity)
	assert.Equal(t, "Polling", rows[0].Subcategory)
}

func TestReadXLSX_MissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.xlsx")
}

func TestReadTable_PrefersXLSX(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Entity,Category\nFromCSV,Cat\n"), 0o644))

	xlsxPath := filepath.Join(dir, "table.xlsx")
	require.NoError(t, WriteXLSX(xlsxPath, "Map data", [][]string{
		{"Entity", "Category"},
		{"FromXLSX", "Cat"},
	}))

	rows, source, err := ReadTable(context.Background(), xlsxPath, csvPath, Options{})
	require.NoError(t, err)
	assert.Equal(t, xlsxPath, source)
	require.Len(t, rows, 1)
	assert.Equal(t, "FromXLSX", rows[0].Entity)
}

func TestReadTable_FallsBackToCSV(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Entity,Category\nFromCSV,Cat\n"), 0o644))

	rows, source, err := ReadTable(context.Background(), filepath.Join(dir, "missing.xlsx"), csvPath, Options{})
	require.NoError(t, err)
	assert.Equal(t, csvPath, source)
	require.Len(t, rows, 1)
	assert.Equal(t, "FromCSV", rows[0].Entity)
}

func TestReadTable_NeitherExists(t *testing.T) {
	dir := t.TempDir()
	_, _, err := ReadTable(context.Background(), filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.csv"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.xlsx")
	assert.Contains(t, err.Error(), "b.csv")
}
