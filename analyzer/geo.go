package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/seo-optimizer/geoaudit/models"
)

var (
	summaryKeywords  = keywords("tl;dr", "tldr", "summary", "key takeaways", "in short")
	questionOpeners  = keywords("what is", "what are", "how to", "how do", "how does", "why", "when should", "who is", "faq")
	properNounBigram = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
	yearLiteral      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// GeoRules is the generative-engine check catalogue in evaluation order.
var GeoRules = []Rule{
	{Name: "h2-structure", Check: checkH2Structure},
	{Name: "summary", Check: checkSummary},
	{Name: "question-answering", Check: checkQuestionAnswering},
	{Name: "schema", Check: checkGeoSchema},
	{Name: "entities", Check: checkEntities},
}

// AnalyzeGeo runs every GEO rule against the record.
func AnalyzeGeo(r *models.ContentRecord) ([]models.GeoResult, int) {
	return runRules(GeoRules, r)
}

func checkH2Structure(r *models.ContentRecord) (models.GeoResult, int) {
	count := r.HeadingCount(2)
	metrics := map[string]string{"H2 Count": strconv.Itoa(count)}
	if count > 0 {
		return models.GeoResult{
			Type:        models.ResultSuccess,
			Title:       "Clear Section Structure",
			Description: "H2 headings split the content into sections AI engines can quote independently.",
			Metrics:     metrics,
		}, 20
	}
	return models.GeoResult{
		Type:        models.ResultWarning,
		Title:       "No Section Headings",
		Description: "Add H2 headings so generative engines can identify distinct sections.",
		Metrics:     metrics,
	}, 0
}

func checkSummary(r *models.ContentRecord) (models.GeoResult, int) {
	if summaryKeywords.any(r.Content) {
		return models.GeoResult{
			Type:        models.ResultSuccess,
			Title:       "Summary Section Found",
			Description: "The content includes a TL;DR or summary that AI assistants can lift directly.",
		}, 25
	}
	return models.GeoResult{
		Type:        models.ResultWarning,
		Title:       "No Summary Section",
		Description: "Add a TL;DR or key takeaways section near the top of the page.",
	}, 0
}

func checkQuestionAnswering(r *models.ContentRecord) (models.GeoResult, int) {
	questionHeadings := 0
	for _, h := range r.Headings {
		if strings.HasSuffix(strings.TrimSpace(h.Text), "?") {
			questionHeadings++
		}
	}
	if questionHeadings > 0 || questionOpeners.any(r.Content) {
		return models.GeoResult{
			Type:        models.ResultSuccess,
			Title:       "Question-Answer Patterns",
			Description: "The content answers explicit questions, matching how users prompt AI assistants.",
			Metrics:     map[string]string{"Question Headings": strconv.Itoa(questionHeadings)},
		}, 20
	}
	return models.GeoResult{
		Type:        models.ResultWarning,
		Title:       "No Question-Answer Patterns",
		Description: "Phrase some headings as questions and answer them directly below.",
	}, 0
}

func checkGeoSchema(r *models.ContentRecord) (models.GeoResult, int) {
	if r.HasSchema {
		return models.GeoResult{
			Type:        models.ResultSuccess,
			Title:       "Structured Data for AI",
			Description: "Schema markup gives generative engines explicit facts about the page.",
			Details:     "Types: " + strings.Join(r.SchemaTypes, ", "),
		}, 20
	}
	return models.GeoResult{
		Type:        models.ResultError,
		Title:       "Missing Structured Data",
		Description: "Add JSON-LD schema (FAQPage, Article or HowTo) so AI engines can parse the page reliably.",
	}, 0
}

func checkEntities(r *models.ContentRecord) (models.GeoResult, int) {
	entities := countMatches(properNounBigram, r.Content)
	dates := countMatches(yearLiteral, r.Content)
	metrics := map[string]string{
		"Entities": strconv.Itoa(entities),
		"Dates":    strconv.Itoa(dates),
	}
	if entities >= 3 || dates > 0 {
		return models.GeoResult{
			Type:        models.ResultSuccess,
			Title:       "Entities and Dates Referenced",
			Description: "Named entities and dates anchor the content to verifiable facts.",
			Metrics:     metrics,
		}, 15
	}
	return models.GeoResult{
		Type:        models.ResultWarning,
		Title:       "Few Entities Referenced",
		Description: "Mention specific people, organizations, products and dates.",
		Metrics:     metrics,
	}, 0
}
