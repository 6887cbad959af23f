package pillar

import (
	"bytes"
	"encoding/json"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/civicmap/mapdata-cli/internal/model"
)

// Document is the nested three-pillar output. Key order is the display
// order fixed at assembly; marshaling preserves it.
type Document struct {
	pillars *orderedmap.OrderedMap[string, any]
}

// MarshalJSON emits the pillars in order.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.pillars)
}

// WriteFile overwrites path with the document: 2-space indent, UTF-8,
// non-ASCII left unescaped, trailing newline.
func (d *Document) WriteFile(path string) error {
	return writeJSON(path, d.pillars)
}

// writeJSON writes any value as indented UTF-8 JSON with &, <, > kept
// literal. MarshalJSON implementations escape those before an encoder's
// SetEscapeHTML(false) can apply, so the escapes are undone on the
// marshaled bytes instead.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(unescapeHTML(data), '\n'), 0o644)
}

var htmlEscapes = map[string]string{
	`\u0026`: "&",
	`\u003c`: "<",
	`\u003e`: ">",
}

func unescapeHTML(data []byte) []byte {
	for esc, lit := range htmlEscapes {
		data = bytes.ReplaceAll(data, []byte(esc), []byte(lit))
	}
	return data
}

// Stats counts leaf companies per pillar for the operator summary.
type Stats struct {
	Total     int
	PerPillar map[string]int
}

// Stats walks the document and tallies companies by pillar.
func (d *Document) Stats() Stats {
	s := Stats{PerPillar: make(map[string]int)}
	for p := d.pillars.Oldest(); p != nil; p = p.Next() {
		n := countCompanies(p.Value)
		s.PerPillar[p.Key] = n
		s.Total += n
	}
	return s
}

func countCompanies(v any) int {
	switch vv := v.(type) {
	case []model.Company:
		return len(vv)
	case *orderedmap.OrderedMap[string, []model.Company]:
		n := 0
		for p := vv.Oldest(); p != nil; p = p.Next() {
			n += len(p.Value)
		}
		return n
	case *orderedmap.OrderedMap[string, any]:
		n := 0
		for p := vv.Oldest(); p != nil; p = p.Next() {
			n += countCompanies(p.Value)
		}
		return n
	}
	return 0
}

// LogStats writes the per-pillar summary the way the operator expects to see
// it after a run.
func (d *Document) LogStats(log *zap.Logger, path string) {
	s := d.Stats()
	log.Info("document written",
		zap.String("path", path),
		zap.Int("companies", s.Total),
		zap.Int("brain", s.PerPillar[string(Brain)]),
		zap.Int("engine", s.PerPillar[string(Engine)]),
		zap.Int("megaphone", s.PerPillar[string(Megaphone)]),
	)
}
