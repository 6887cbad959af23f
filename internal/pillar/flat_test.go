package pillar

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicmap/mapdata-cli/internal/model"
)

func TestClassifyFlat_GroupsAndSorts(t *testing.T) {
	doc := ClassifyFlat([]model.Row{
		{Entity: "Zeta", Category: "Zulu"},
		{Entity: "Alpha", Category: "Alfa", HQ: "Berlin"},
		{Entity: "Beta", Category: "Alfa"},
		{Entity: "", Category: "Alfa"},
		{Entity: "NoCat", Category: ""},
	})

	path := filepath.Join(t.TempDir(), "companies.json")
	require.NoError(t, doc.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alfa", "Zulu"}, objectKeys(t, raw))

	alfa, ok := doc.Get("Alfa")
	require.True(t, ok)
	require.Len(t, alfa, 2)
	assert.Equal(t, "Alpha", alfa[0].Name)
	assert.Equal(t, "Berlin", alfa[0].HQ)
}

func TestFlatDocument_WriteFileKeepsAmpersands(t *testing.T) {
	doc := ClassifyFlat([]model.Row{
		{Entity: "A&B", Category: "Data & Analytics"},
	})

	path := filepath.Join(t.TempDir(), "companies.json")
	require.NoError(t, doc.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Data & Analytics"`)
	assert.Contains(t, string(raw), "A&B")
}

func TestClassifyFlat_HQOnlyOptionalField(t *testing.T) {
	doc := ClassifyFlat([]model.Row{
		{Entity: "Acme", Category: "Alfa", Logo: "acme.png", HubURL: "https://hub/acme", HQ: "Berlin"},
	})

	path := filepath.Join(t.TempDir(), "companies.json")
	require.NoError(t, doc.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var out map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	company := out["Alfa"][0]
	assert.Equal(t, "Berlin", company["hq"])
	assert.NotContains(t, company, "logo")
	assert.NotContains(t, company, "hub_url")
}
