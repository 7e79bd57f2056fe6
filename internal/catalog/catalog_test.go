package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Len(t, c.Jobs(), 13)
	assert.Len(t, c.Visas(), 5)
}

func TestJobByID(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	job, ok := c.JobByID(3737)
	require.True(t, ok)
	assert.Equal(t, 3737, job.ID)
	assert.True(t, job.DetailPage)

	_, ok = c.JobByID(9999)
	assert.False(t, ok)
}

func TestDetailVariant(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tests := []struct {
		id      int
		variant string
		ok      bool
	}{
		{3737, "student", true},
		{3738, "student", true},
		{3739, "marketing", true},
		{3728, "", false},
		{9999, "", false},
	}

	for _, tt := range tests {
		variant, ok := c.DetailVariant(tt.id)
		assert.Equal(t, tt.ok, ok, "id %d", tt.id)
		assert.Equal(t, tt.variant, variant, "id %d", tt.id)
	}
}

func TestEveryDetailPageHasAVariant(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, job := range c.Jobs() {
		if job.DetailPage {
			variant, ok := c.DetailVariant(job.ID)
			assert.True(t, ok, "job %d", job.ID)
			assert.NotEmpty(t, variant, "job %d", job.ID)
		}
	}
}

func TestCountries(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	countries := c.Countries()
	require.NotEmpty(t, countries)

	// last comma-separated segment of each location, deduplicated in
	// encounter order
	assert.Equal(t, "Perú", countries[0])
	assert.Contains(t, countries, "España")
	assert.Contains(t, countries, "Argentina")

	seen := map[string]int{}
	for _, country := range countries {
		seen[country]++
	}
	for country, n := range seen {
		assert.Equal(t, 1, n, country)
	}
}

func TestJobTypes(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	types := c.JobTypes()
	assert.Contains(t, types, "Tiempo Completo")
	assert.Contains(t, types, "Remoto")
}

func TestVisaByID(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, id := range []string{"spain", "canada", "australia", "usa", "germany"} {
		visa, ok := c.VisaByID(id)
		require.True(t, ok, id)
		assert.Equal(t, id, visa.ID)
		assert.NotEmpty(t, visa.WorkVisaTypes, id)
	}

	_, ok := c.VisaByID("atlantis")
	assert.False(t, ok)
}

func TestValidateDocumentRejectsBadData(t *testing.T) {
	err := validateDocument(jobOffersSchemaJSON, []byte(`[{"title":"sin id"}]`), "job-offers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job-offers")
}
