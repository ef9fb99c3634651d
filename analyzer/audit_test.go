package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seo-optimizer/geoaudit/models"
)

func TestAudit(t *testing.T) {
	r := emptyRecord()
	r.URL = "https://example.com/guide"

	report := Audit(nil, r)

	assert.Zero(t, report.ID)
	assert.Equal(t, r.URL, report.URL)
	assert.Equal(t, 15, report.SeoScore)
	assert.Equal(t, 0, report.AiScore)
	assert.Len(t, report.TraditionalSeoResults, len(SeoRules))
	assert.Len(t, report.GeoResults, len(GeoRules))
	assert.False(t, report.CreatedAt.IsZero())

	// improvements follow the GEO score
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, priorities(report.ContentSuggestions.AIImprovements))
	assert.Equal(t, catalogueKeywords, report.ContentSuggestions.MissingKeywords)
}

func TestAudit_Strategy(t *testing.T) {
	r := emptyRecord()
	r.Headings = []models.Heading{{Level: 2, Text: "Pricing"}}

	static := Audit(StaticCatalogue{}, r)
	derived := Audit(ContentDerived{}, r)

	assert.Equal(t, catalogueStructure, static.ContentSuggestions.ContentStructure)
	assert.Equal(t, []string{"H2: Pricing"}, derived.ContentSuggestions.ContentStructure)
	assert.Equal(t, static.SeoScore, derived.SeoScore)
	assert.Equal(t, static.AiScore, derived.AiScore)
}
