// Package catalog loads the static job-offer and visa-requirement data sets
// embedded in the binary and serves them as immutable, shared, read-only
// state. No locking is needed: nothing mutates a loaded catalog.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/job-offers.json
var jobOffersJSON []byte

//go:embed data/job-offers.schema.json
var jobOffersSchemaJSON []byte

//go:embed data/visa-requirements.json
var visaRequirementsJSON []byte

//go:embed data/visa-requirements.schema.json
var visaRequirementsSchemaJSON []byte

// detailVariants maps the job ids that carry a rich detail page to the
// application form variant that page uses.
var detailVariants = map[int]string{
	3737: "student",
	3738: "student",
	3739: "marketing",
}

// Catalog is the loaded, validated data set.
type Catalog struct {
	jobs    []JobOffer
	jobByID map[int]JobOffer

	visas    []VisaRequirement
	visaByID map[string]VisaRequirement
}

// Load parses and validates the embedded data. Both documents are checked
// against their JSON Schemas before unmarshalling, then against the catalog
// invariants: unique ids, and a detail form variant for every offer flagged
// with detailPage.
func Load() (*Catalog, error) {
	if err := validateDocument(jobOffersSchemaJSON, jobOffersJSON, "job-offers"); err != nil {
		return nil, err
	}
	if err := validateDocument(visaRequirementsSchemaJSON, visaRequirementsJSON, "visa-requirements"); err != nil {
		return nil, err
	}

	var jobs []JobOffer
	if err := json.Unmarshal(jobOffersJSON, &jobs); err != nil {
		return nil, fmt.Errorf("parse job offers: %w", err)
	}

	var visas []VisaRequirement
	if err := json.Unmarshal(visaRequirementsJSON, &visas); err != nil {
		return nil, fmt.Errorf("parse visa requirements: %w", err)
	}

	c := &Catalog{
		jobs:     jobs,
		jobByID:  make(map[int]JobOffer, len(jobs)),
		visas:    visas,
		visaByID: make(map[string]VisaRequirement, len(visas)),
	}

	for _, job := range jobs {
		if _, dup := c.jobByID[job.ID]; dup {
			return nil, fmt.Errorf("duplicate job offer id %d", job.ID)
		}
		c.jobByID[job.ID] = job

		if job.DetailPage {
			if _, ok := detailVariants[job.ID]; !ok {
				return nil, fmt.Errorf("job offer %d flags a detail page but no form variant is registered", job.ID)
			}
		}
	}

	for _, visa := range visas {
		if _, dup := c.visaByID[visa.ID]; dup {
			return nil, fmt.Errorf("duplicate visa requirement id %q", visa.ID)
		}
		c.visaByID[visa.ID] = visa
	}

	return c, nil
}

func validateDocument(schema, document []byte, name string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("%s data invalid: %s", name, strings.Join(details, "; "))
	}
	return nil
}

// Jobs returns all offers in catalog order.
func (c *Catalog) Jobs() []JobOffer {
	return c.jobs
}

// JobByID looks up one offer.
func (c *Catalog) JobByID(id int) (JobOffer, bool) {
	job, ok := c.jobByID[id]
	return job, ok
}

// DetailVariant returns the form variant name backing an offer's detail
// page, if it has one.
func (c *Catalog) DetailVariant(id int) (string, bool) {
	job, ok := c.jobByID[id]
	if !ok || !job.DetailPage {
		return "", false
	}
	variant, ok := detailVariants[id]
	return variant, ok
}

// Countries returns the distinct country values offers are located in, in
// encounter order. The country is the last comma-separated segment of the
// free-text location; a location without a comma counts as its own country.
// This mirrors the convention the filter uses and existing data relies on.
func (c *Catalog) Countries() []string {
	seen := make(map[string]bool)
	var out []string
	for _, job := range c.jobs {
		if job.Location == "" {
			continue
		}
		parts := strings.Split(job.Location, ",")
		country := strings.TrimSpace(parts[len(parts)-1])
		if country == "" || seen[country] {
			continue
		}
		seen[country] = true
		out = append(out, country)
	}
	return out
}

// JobTypes returns the distinct non-empty type values, in encounter order.
func (c *Catalog) JobTypes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, job := range c.jobs {
		if job.Type == "" || seen[job.Type] {
			continue
		}
		seen[job.Type] = true
		out = append(out, job.Type)
	}
	return out
}

// Visas returns the visa reference data in catalog order.
func (c *Catalog) Visas() []VisaRequirement {
	return c.visas
}

// VisaByID looks up one country's visa guidance.
func (c *Catalog) VisaByID(id string) (VisaRequirement, bool) {
	visa, ok := c.visaByID[id]
	return visa, ok
}
