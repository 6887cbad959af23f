package pillar

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/civicmap/mapdata-cli/internal/model"
)

// FlatDocument is the older single-level output: category -> companies,
// categories sorted lexicographically. Companies carry hq as the only
// optional field.
type FlatDocument struct {
	categories *orderedmap.OrderedMap[string, []model.Company]
}

// ClassifyFlat groups rows by category with no pillar mapping. Rows with an
// empty entity or category are skipped silently.
func ClassifyFlat(rows []model.Row) *FlatDocument {
	byCategory := make(map[string][]model.Company)
	for _, r := range rows {
		if r.Entity == "" || r.Category == "" {
			continue
		}
		byCategory[r.Category] = append(byCategory[r.Category], model.Company{
			Name:        r.Entity,
			Domain:      r.Domain,
			Description: r.Description,
			HQ:          r.HQ,
		})
	}

	keys := make([]string, 0, len(byCategory))
	for k := range byCategory {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	categories := orderedmap.New[string, []model.Company]()
	for _, k := range keys {
		categories.Set(k, byCategory[k])
	}
	return &FlatDocument{categories: categories}
}

// Get returns the companies under a category.
func (d *FlatDocument) Get(category string) ([]model.Company, bool) {
	return d.categories.Get(category)
}

// WriteFile overwrites path with the document.
func (d *FlatDocument) WriteFile(path string) error {
	return writeJSON(path, d.categories)
}

// LogStats writes the category/company/HQ counts after a run.
func (d *FlatDocument) LogStats(log *zap.Logger, path string) {
	companies, withHQ := 0, 0
	for p := d.categories.Oldest(); p != nil; p = p.Next() {
		companies += len(p.Value)
		for _, c := range p.Value {
			if c.HQ != "" {
				withHQ++
			}
		}
	}
	log.Info("flat document written",
		zap.String("path", path),
		zap.Int("categories", d.categories.Len()),
		zap.Int("companies", companies),
		zap.Int("companies_with_hq", withHQ),
	)
}
