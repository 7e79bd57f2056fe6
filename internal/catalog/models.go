// internal/catalog/models.go
package catalog

// JobOffer represents one job posting. The catalog is built from static data
// and never mutated at runtime.
type JobOffer struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Payout      string `json:"payout"`
	Link        string `json:"link"`
	Logo        string `json:"logo,omitempty"`
	Location    string `json:"location,omitempty"`
	Type        string `json:"type,omitempty"`
	Sponsored   string `json:"sponsored,omitempty"`
	DetailPage  bool   `json:"detailPage,omitempty"`
}

// VisaRequirement holds per-country work visa guidance. Read-only reference
// data.
type VisaRequirement struct {
	ID                  string     `json:"id"`
	Country             string     `json:"country"`
	Flag                string     `json:"flag"`
	WorkVisaTypes       []VisaType `json:"workVisaTypes"`
	GeneralRequirements []string   `json:"generalRequirements"`
	ProcessingTime      string     `json:"processingTime"`
	AverageCost         string     `json:"averageCost"`
	OfficialWebsite     string     `json:"officialWebsite"`
	AdditionalInfo      string     `json:"additionalInfo,omitempty"`
}

type VisaType struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Duration     string   `json:"duration"`
	Requirements []string `json:"requirements"`
	Eligibility  []string `json:"eligibility"`
}
