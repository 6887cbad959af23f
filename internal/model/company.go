package model

// Company is the output unit consumed by the map front end. Name, domain and
// description are always emitted (empty strings allowed for the latter two);
// hq, logo and hub_url appear only when the source cell was non-empty.
type Company struct {
	Name        string `json:"name"`
	Domain      string `json:"domain"`
	Description string `json:"description"`
	HQ          string `json:"hq,omitempty"`
	Logo        string `json:"logo,omitempty"`
	HubURL      string `json:"hub_url,omitempty"`
}

// NewCompany builds the full company record from a row.
func NewCompany(r Row) Company {
	return Company{
		Name:        r.Entity,
		Domain:      r.Domain,
		Description: r.Description,
		HQ:          r.HQ,
		Logo:        r.Logo,
		HubURL:      r.HubURL,
	}
}
