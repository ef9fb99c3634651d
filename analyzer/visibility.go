package analyzer

import (
	"fmt"
	"math"

	"github.com/seo-optimizer/geoaudit/models"
)

// MaxRecommendations caps the recommendation list of an assessment.
const MaxRecommendations = 8

// AnalyzeAIPlatformVisibility scores the record against every factor of the
// catalogue and derives the summary and recommendations from those scores.
func AnalyzeAIPlatformVisibility(r *models.ContentRecord) models.AiVisibilityAssessment {
	factors := make([]models.FactorResult, 0, len(Factors))
	total := 0
	for _, f := range Factors {
		score := f.Assess(r)
		total += score
		factors = append(factors, models.FactorResult{
			Factor:      f.Name,
			Score:       score,
			Description: f.Description,
			Status:      models.StatusForScore(score),
		})
	}

	overall := OverallScore(total, len(Factors))
	return models.AiVisibilityAssessment{
		OverallScore:    overall,
		Summary:         Summarize(overall, factors),
		Factors:         factors,
		Recommendations: Recommend(overall, factors),
	}
}

// OverallScore is the rounded, equally weighted mean of the factor scores.
func OverallScore(total, factors int) int {
	if factors == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(factors*100) * 100))
}

// Summarize picks the summary template for the overall score band.
func Summarize(overall int, factors []models.FactorResult) string {
	var needsWork, failing int
	for _, f := range factors {
		switch f.Status {
		case models.StatusFail:
			failing++
			needsWork++
		case models.StatusWarning:
			needsWork++
		}
	}

	switch {
	case overall >= 80:
		return "Excellent AI visibility. Your content is well structured, clear and likely to be surfaced and cited by AI platforms."
	case overall >= 60:
		return fmt.Sprintf("Good AI visibility foundation. %d factors need attention to maximize the chance of being referenced by AI platforms.", needsWork)
	case overall >= 40:
		return fmt.Sprintf("Moderate AI visibility. %d factors are failing and should be addressed so AI platforms can understand and quote your content.", failing)
	default:
		return "Low AI visibility. The content needs significant restructuring before AI platforms are likely to surface it."
	}
}
