package pillar

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/civicmap/mapdata-cli/internal/model"
)

// bucket is a destination under a pillar: a flat company list, a
// subcategory map, or transiently both while rows are consumed. Assembly
// decides the final shape.
type bucket struct {
	flat   []model.Company
	nested *orderedmap.OrderedMap[string, []model.Company]
}

// add appends the company at the given path: under the subcategory when one
// is given, otherwise onto the flat list.
func (b *bucket) add(subcategory string, c model.Company) {
	if subcategory == "" {
		b.flat = append(b.flat, c)
		return
	}
	if b.nested == nil {
		b.nested = orderedmap.New[string, []model.Company]()
	}
	list, _ := b.nested.Get(subcategory)
	b.nested.Set(subcategory, append(list, c))
}

// value returns the JSON shape of the bucket: the subcategory map when any
// nested entries exist, otherwise the flat list. A bucket that collected
// both keeps the map; the flat rows are dropped with a warning because the
// two shapes cannot coexist under one category key.
func (b *bucket) value(log *zap.Logger, category string) any {
	if b.nested != nil && b.nested.Len() > 0 {
		if len(b.flat) > 0 {
			log.Warn("dropping rows without subcategory from nested category",
				zap.String("category", category),
				zap.Int("dropped", len(b.flat)),
			)
		}
		return b.nested
	}
	if b.flat == nil {
		return []model.Company{}
	}
	return b.flat
}

// Classifier consumes rows and accumulates them into pillar buckets.
// Insertion order of categories and subcategories is preserved everywhere;
// fixed display orders are applied at assembly.
type Classifier struct {
	brain     *orderedmap.OrderedMap[string, *bucket]
	engine    *orderedmap.OrderedMap[string, *bucket]
	megaphone *orderedmap.OrderedMap[string, *bucket]

	// Digital Comms & Advertising rows are buffered apart and merged first
	// into Megaphone at assembly, under the display name.
	digitalComms *bucket

	log *zap.Logger
}

// NewClassifier returns an empty classifier logging through the global
// logger.
func NewClassifier() *Classifier {
	return &Classifier{
		brain:        orderedmap.New[string, *bucket](),
		engine:       orderedmap.New[string, *bucket](),
		megaphone:    orderedmap.New[string, *bucket](),
		digitalComms: &bucket{},
		log:          zap.L(),
	}
}

func (c *Classifier) bucketFor(pillar *orderedmap.OrderedMap[string, *bucket], key string) *bucket {
	if b, ok := pillar.Get(key); ok {
		return b
	}
	b := &bucket{}
	pillar.Set(key, b)
	return b
}

func (c *Classifier) warnNoSubcategory(r model.Row) {
	c.log.Warn("row has no subcategory, dropping",
		zap.String("entity", r.Entity),
		zap.String("category", r.Category),
	)
}

// Add routes one row into its pillar. Rows with an empty entity or category
// are blank trailing rows and are skipped silently; rows with an unmapped
// category or a missing required subcategory are dropped with a warning.
func (c *Classifier) Add(r model.Row) {
	if r.Entity == "" || r.Category == "" {
		return
	}

	m, ok := categoryTable[r.Category]
	if !ok {
		c.log.Warn("category not mapped to any pillar",
			zap.String("category", r.Category),
			zap.String("entity", r.Entity),
		)
		return
	}

	company := model.NewCompany(r)

	switch m.Pillar {
	case Brain:
		// Every mapped Brain category nests by subcategory.
		if r.Subcategory == "" {
			c.warnNoSubcategory(r)
			return
		}
		c.bucketFor(c.brain, m.Display).add(r.Subcategory, company)

	case Engine:
		if m.Display != "" {
			// Organizational Infrastructure nests by subcategory.
			if r.Subcategory == "" {
				c.warnNoSubcategory(r)
				return
			}
			c.bucketFor(c.engine, m.Display).add(r.Subcategory, company)
			return
		}
		c.bucketFor(c.engine, r.Category).add("", company)

	case Megaphone:
		switch r.Category {
		case digitalCommsCategory:
			if r.Subcategory == "" {
				c.warnNoSubcategory(r)
				return
			}
			c.digitalComms.add(r.Subcategory, company)
		case participationCategory:
			// Nests when a subcategory is present, flat otherwise.
			c.bucketFor(c.megaphone, r.Category).add(r.Subcategory, company)
		default:
			// Remaining Megaphone categories are direct flat lists.
			c.bucketFor(c.megaphone, r.Category).add("", company)
		}
	}
}

// Document assembles the output in display order: Brain categories in
// insertion order, Engine in its fixed order, Megaphone with the merged
// Digital Communications group first.
func (c *Classifier) Document() *Document {
	brain := orderedmap.New[string, any]()
	for p := c.brain.Oldest(); p != nil; p = p.Next() {
		brain.Set(p.Key, p.Value.value(c.log, p.Key))
	}

	engine := orderedmap.New[string, any]()
	for _, key := range engineOrder {
		b, ok := c.engine.Get(key)
		if !ok {
			continue
		}
		engine.Set(key, b.value(c.log, key))
	}

	megaphone := orderedmap.New[string, any]()
	if c.digitalComms.nested != nil && c.digitalComms.nested.Len() > 0 {
		merged := orderedmap.New[string, []model.Company]()
		for p := c.digitalComms.nested.Oldest(); p != nil; p = p.Next() {
			if len(p.Value) == 0 {
				continue
			}
			merged.Set(p.Key, p.Value)
		}
		megaphone.Set(digitalCommsDisplay, merged)
	}
	for p := c.megaphone.Oldest(); p != nil; p = p.Next() {
		megaphone.Set(p.Key, p.Value.value(c.log, p.Key))
	}

	pillars := orderedmap.New[string, any]()
	pillars.Set(string(Brain), brain)
	pillars.Set(string(Engine), engine)
	pillars.Set(string(Megaphone), megaphone)
	return &Document{pillars: pillars}
}

// Classify runs the full reclassification over a row slice.
func Classify(rows []model.Row) *Document {
	c := NewClassifier()
	for _, r := range rows {
		c.Add(r)
	}
	return c.Document()
}
