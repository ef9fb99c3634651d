package analyzer

import (
	"time"

	"github.com/seo-optimizer/geoaudit/models"
)

// Audit runs the SEO and GEO catalogues and the suggestion generator for a
// single record. The returned report has no ID until it is persisted.
func Audit(strategy SuggestionStrategy, r *models.ContentRecord) models.AuditReport {
	seoResults, seoScore := AnalyzeTraditionalSeo(r)
	geoResults, geoScore := AnalyzeGeo(r)
	return models.AuditReport{
		URL:                   r.URL,
		SeoScore:              seoScore,
		AiScore:               geoScore,
		TraditionalSeoResults: seoResults,
		GeoResults:            geoResults,
		ContentSuggestions:    GenerateContentSuggestions(strategy, r, geoScore),
		CreatedAt:             time.Now().UTC(),
	}
}
