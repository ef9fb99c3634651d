package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/geoaudit/models"
)

func assessment(overall int, scores map[models.FactorName]int) *models.AiVisibilityAssessment {
	v := &models.AiVisibilityAssessment{OverallScore: overall}
	for _, f := range Factors {
		score, ok := scores[f.Name]
		if !ok {
			continue
		}
		v.Factors = append(v.Factors, models.FactorResult{Factor: f.Name, Score: score, Status: models.StatusForScore(score)})
	}
	return v
}

func findDifference(t *testing.T, d models.Differences, aspect string) models.KeyDifference {
	t.Helper()
	for _, kd := range d.KeyDifferences {
		if kd.Aspect == aspect {
			return kd
		}
	}
	require.Failf(t, "missing key difference", "aspect %q", aspect)
	return models.KeyDifference{}
}

func TestCompareWebsites_StructuredData(t *testing.T) {
	rec := emptyRecord()
	report := &models.AuditReport{SeoScore: 60, AiScore: 40}

	visA := assessment(30, map[models.FactorName]int{models.FactorSummary: 0, models.FactorSchema: 0})
	visB := assessment(60, map[models.FactorName]int{models.FactorSummary: 0, models.FactorSchema: 85})

	d := CompareWebsites(rec, report, rec, report, visA, visB)

	assert.Equal(t, 0, d.SeoScoreDiff)
	assert.Equal(t, 0, d.AiScoreDiff)
	assert.Equal(t, 30, d.AiVisibilityDiff)
	assert.Equal(t, models.SideB, d.BetterPerformer)
	require.Len(t, d.KeyDifferences, 2)

	schema := findDifference(t, d, "Structured Data Implementation")
	assert.Equal(t, models.CategoryAIVisibility, schema.Category)
	assert.Equal(t, "0/100", schema.SiteA)
	assert.Equal(t, "85/100", schema.SiteB)
	assert.True(t, strings.HasPrefix(schema.Recommendation, "Site B leads here."))

	summary := findDifference(t, d, "TL;DR & Summary Sections")
	assert.True(t, strings.HasPrefix(summary.Recommendation, "Both sites are level."))
}

func TestCompareWebsites_SeoDifferences(t *testing.T) {
	recA := emptyRecord()
	recA.Title = "Short"
	recB := emptyRecord()
	recB.Title = strings.Repeat("t", 45)
	recB.MetaDescription = strings.Repeat("m", 130)

	vis := assessment(50, nil)
	d := CompareWebsites(recA, &models.AuditReport{SeoScore: 30}, recB, &models.AuditReport{SeoScore: 70}, vis, vis)

	require.Len(t, d.KeyDifferences, 2)
	title := findDifference(t, d, "Title Optimization")
	assert.Equal(t, models.CategorySEO, title.Category)
	assert.Equal(t, "5 characters", title.SiteA)
	assert.Equal(t, "45 characters", title.SiteB)
	assert.True(t, strings.HasPrefix(title.Recommendation, "Site B leads here."))

	meta := findDifference(t, d, "Meta Description")
	assert.Equal(t, "0 characters", meta.SiteA)
	assert.Equal(t, "130 characters", meta.SiteB)
}

func TestCompareWebsites_GeoDifferences(t *testing.T) {
	recA := emptyRecord()
	recA.Headings = []models.Heading{{Level: 1, Text: "A"}, {Level: 2, Text: "B"}, {Level: 2, Text: "C"}}
	recA.SchemaTypes = []string{"Article", "FAQPage"}
	recB := emptyRecord()

	vis := assessment(50, nil)
	d := CompareWebsites(recA, &models.AuditReport{AiScore: 80}, recB, &models.AuditReport{AiScore: 20}, vis, vis)

	assert.Equal(t, -60, d.AiScoreDiff)
	assert.Equal(t, models.SideA, d.BetterPerformer)

	headings := findDifference(t, d, "Content Structure (Headings)")
	assert.Equal(t, models.CategoryGEO, headings.Category)
	assert.Equal(t, "3 headings (2 H2)", headings.SiteA)
	assert.Equal(t, "0 headings (0 H2)", headings.SiteB)
	assert.True(t, strings.HasPrefix(headings.Recommendation, "Site A leads here."))

	schema := findDifference(t, d, "Schema Types")
	assert.Equal(t, "2 schema types", schema.SiteA)
	assert.Equal(t, "0 schema types", schema.SiteB)
}

func TestCompareWebsites_BelowThresholds(t *testing.T) {
	rec := emptyRecord()
	vis := assessment(50, nil)
	d := CompareWebsites(rec, &models.AuditReport{SeoScore: 50, AiScore: 50}, rec, &models.AuditReport{SeoScore: 60, AiScore: 60}, vis, vis)

	assert.Equal(t, 10, d.SeoScoreDiff)
	assert.Equal(t, 10, d.AiScoreDiff)
	assert.NotNil(t, d.KeyDifferences)
	assert.Empty(t, d.KeyDifferences)
}

func TestCompareWebsites_Swap(t *testing.T) {
	withYear(t, 2025)
	recA := emptyRecord()
	recA.Content = "TL;DR: short answer.\n\nWhat is GEO? It is defined as optimizing for AI."
	recA.HasSchema = true
	recA.SchemaTypes = []string{"FAQPage"}
	recB := emptyRecord()

	reportA, reportB := Audit(nil, recA), Audit(nil, recB)
	visA, visB := AnalyzeAIPlatformVisibility(recA), AnalyzeAIPlatformVisibility(recB)

	ab := CompareWebsites(recA, &reportA, recB, &reportB, &visA, &visB)
	ba := CompareWebsites(recB, &reportB, recA, &reportA, &visB, &visA)

	assert.Equal(t, -ab.SeoScoreDiff, ba.SeoScoreDiff)
	assert.Equal(t, -ab.AiScoreDiff, ba.AiScoreDiff)
	assert.Equal(t, -ab.AiVisibilityDiff, ba.AiVisibilityDiff)
	assert.Equal(t, models.SideA, ab.BetterPerformer)
	assert.Equal(t, models.SideB, ba.BetterPerformer)
}

func TestCompareWebsites_TieGoesToA(t *testing.T) {
	rec := emptyRecord()
	report := &models.AuditReport{SeoScore: 50, AiScore: 50}
	vis := assessment(50, nil)

	d := CompareWebsites(rec, report, rec, report, vis, vis)
	assert.Equal(t, models.SideA, d.BetterPerformer)

	// +20 SEO and -20 GEO cancel out
	d = CompareWebsites(rec, &models.AuditReport{SeoScore: 40, AiScore: 60}, rec, &models.AuditReport{SeoScore: 60, AiScore: 40}, vis, vis)
	assert.Equal(t, models.SideA, d.BetterPerformer)
}

func TestCompareWebsites_MissingFactor(t *testing.T) {
	rec := emptyRecord()
	report := &models.AuditReport{}
	visA := assessment(10, map[models.FactorName]int{models.FactorSchema: 0})
	visB := assessment(90, map[models.FactorName]int{models.FactorSchema: 100, models.FactorSummary: 100})

	d := CompareWebsites(rec, report, rec, report, visA, visB)

	summary := findDifference(t, d, "TL;DR & Summary Sections")
	assert.Equal(t, notAssessed, summary.SiteA)
	assert.Equal(t, notAssessed, summary.SiteB)

	schema := findDifference(t, d, "Structured Data Implementation")
	assert.Equal(t, "0/100", schema.SiteA)
	assert.Equal(t, "100/100", schema.SiteB)
}
