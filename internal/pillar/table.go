// Package pillar reclassifies flat (category, subcategory) rows into the
// nested three-pillar document consumed by the map front end.
package pillar

// Pillar is one of the three top-level groupings of the output document.
type Pillar string

const (
	Brain     Pillar = "Brain"
	Engine    Pillar = "Engine"
	Megaphone Pillar = "Megaphone"
)

// mapping assigns a source category to a pillar. A non-empty Display means
// rows group under that name, nested one level deeper by subcategory; an
// empty Display means the category is emitted as a direct flat list.
type mapping struct {
	Pillar  Pillar
	Display string
}

// categoryTable is the hand-authored category -> pillar assignment. It is
// pure data; routing and assembly live in classify.go.
var categoryTable = map[string]mapping{
	"Research & Intelligence":         {Brain, "Research & Intelligence"},
	"Strategy & Creative Production":  {Brain, "Strategy & Creative Production"},
	"Field & Mobilization":            {Engine, ""},
	"Campaign Management & CRM":       {Engine, ""},
	"Fundraising & Payments":          {Engine, ""},
	"Organisational Infrastructure":   {Engine, "Organizational Infrastructure"}, // source sheet uses the British spelling
	"Digital Comms & Advertising":     {Megaphone, "Digital Communications and Advertising"},
	"Information Integrity & Defense": {Megaphone, ""},
	"Social Media & Management":       {Megaphone, ""},
	"Participation & Election Tech":   {Megaphone, ""},
}

// engineOrder is the fixed display order for Engine categories. Categories
// absent from the data are skipped at assembly.
var engineOrder = []string{
	"Field & Mobilization",
	"Campaign Management & CRM",
	"Fundraising & Payments",
	"Organizational Infrastructure",
}

const (
	digitalCommsCategory  = "Digital Comms & Advertising"
	digitalCommsDisplay   = "Digital Communications and Advertising"
	participationCategory = "Participation & Election Tech"
)
