package analyzer

import (
	"strconv"
	"strings"

	"github.com/seo-optimizer/geoaudit/models"
)

// MaxAIImprovements caps the score-banded improvement list.
const MaxAIImprovements = 6

// SuggestionStrategy produces the record-level parts of ContentSuggestions:
// missing keywords, blog titles, content outline and FAQs.
type SuggestionStrategy interface {
	Suggest(r *models.ContentRecord) models.ContentSuggestions
}

// StaticCatalogue returns the same catalogue for every page.
type StaticCatalogue struct{}

// ContentDerived builds suggestions from the page's own headings and text,
// falling back to the static catalogue for any list the page cannot fill.
type ContentDerived struct{}

var (
	catalogueKeywords = []string{
		"ai visibility", "generative engine optimization", "structured data",
		"faq schema", "content strategy", "featured snippets",
	}
	catalogueBlogTitles = []models.BlogTitle{
		{Title: "The Complete Guide to Generative Engine Optimization", Target: "generative engine optimization"},
		{Title: "How to Get Your Content Cited by AI Assistants", Target: "ai visibility"},
		{Title: "Structured Data Explained: FAQPage, Article and HowTo", Target: "structured data"},
		{Title: "SEO vs GEO: What Changes When Answers Come From AI", Target: "seo vs geo"},
	}
	catalogueStructure = []string{
		"H1: Primary topic with target keyword",
		"TL;DR: Two or three sentence summary",
		"H2: What is [topic]?",
		"H2: Why [topic] matters",
		"H2: How to [achieve outcome] step by step",
		"H2: Frequently asked questions",
		"H2: Key takeaways",
	}
	catalogueFAQs = []models.FAQ{
		{Question: "What is generative engine optimization?", Answer: "Structuring content so AI assistants can find, understand and cite it."},
		{Question: "How is GEO different from SEO?", Answer: "SEO targets ranked result pages while GEO targets the answers AI platforms generate."},
		{Question: "Does structured data help AI visibility?", Answer: "Yes. Schema markup gives AI systems explicit facts about the page."},
		{Question: "How often should content be updated?", Answer: "Review key pages at least quarterly and show a last-updated date."},
	}
	platformVisibility = map[models.AIPlatform]models.VisibilityLevel{
		models.PlatformChatGPT:    models.VisibilityMedium,
		models.PlatformClaude:     models.VisibilityMedium,
		models.PlatformPerplexity: models.VisibilityHigh,
		models.PlatformGemini:     models.VisibilityLow,
		models.PlatformCopilot:    models.VisibilityMedium,
	}
)

func (StaticCatalogue) Suggest(_ *models.ContentRecord) models.ContentSuggestions {
	return models.ContentSuggestions{
		MissingKeywords:  append([]string(nil), catalogueKeywords...),
		BlogTitles:       append([]models.BlogTitle(nil), catalogueBlogTitles...),
		ContentStructure: append([]string(nil), catalogueStructure...),
		FAQs:             append([]models.FAQ(nil), catalogueFAQs...),
	}
}

func (ContentDerived) Suggest(r *models.ContentRecord) models.ContentSuggestions {
	out := StaticCatalogue{}.Suggest(r)
	text := fullText(r)

	missing := []string{}
	for _, kw := range catalogueKeywords {
		if !keywords(kw).any(text) {
			missing = append(missing, kw)
		}
	}
	out.MissingKeywords = missing

	var outline []string
	var titles []models.BlogTitle
	var faqs []models.FAQ
	for _, h := range r.Headings {
		t := strings.TrimSpace(h.Text)
		if t == "" {
			continue
		}
		outline = append(outline, "H"+strconv.Itoa(h.Level)+": "+t)
		if h.Level == 2 {
			titles = append(titles, models.BlogTitle{Title: "A Deeper Look at " + t, Target: strings.ToLower(t)})
		}
		if strings.HasSuffix(t, "?") {
			faqs = append(faqs, models.FAQ{Question: t, Answer: "Answer this directly in the first sentence below the heading."})
		}
	}
	if len(outline) > 0 {
		out.ContentStructure = outline
	}
	if len(titles) > 0 {
		out.BlogTitles = titles
	}
	if len(faqs) > 0 {
		out.FAQs = faqs
	}
	return out
}

type improvementBand struct {
	applies func(score int) bool
	items   []models.AIImprovement
}

// improvementBands are cumulative: every band whose predicate holds
// contributes its items, in order.
var improvementBands = []improvementBand{
	{
		applies: func(s int) bool { return s < 50 },
		items: []models.AIImprovement{
			{Action: "Add a TL;DR section", Description: "Summarize the page in two or three sentences at the top.", Impact: "High", Priority: 1},
			{Action: "Implement FAQ schema", Description: "Mark up question and answer pairs with FAQPage JSON-LD.", Impact: "High", Priority: 2},
			{Action: "Restructure with H2 sections", Description: "Split the content into clearly titled sections.", Impact: "High", Priority: 3},
		},
	},
	{
		applies: func(s int) bool { return s < 75 },
		items: []models.AIImprovement{
			{Action: "Answer common questions", Description: "Use question headings followed by direct answers.", Impact: "Medium", Priority: 4},
			{Action: "Reference named entities", Description: "Cite organizations, people, products and dates explicitly.", Impact: "Medium", Priority: 5},
			{Action: "Add supporting statistics", Description: "Back key claims with numbers and sources.", Impact: "Medium", Priority: 6},
		},
	},
	{
		applies: func(s int) bool { return s < 85 },
		items: []models.AIImprovement{
			{Action: "Refresh publication dates", Description: "Show a last-updated date and keep examples current.", Impact: "Medium", Priority: 7},
			{Action: "Add comparison tables", Description: "Present alternatives side by side for easy extraction.", Impact: "Low", Priority: 8},
		},
	},
	{
		applies: func(s int) bool { return s >= 85 },
		items: []models.AIImprovement{
			{Action: "Monitor AI citations", Description: "Track how AI assistants reference the page and adjust wording.", Impact: "Low", Priority: 9},
			{Action: "Expand topical depth", Description: "Publish related pages and link them internally.", Impact: "Low", Priority: 10},
		},
	},
}

// AIImprovements returns the score-banded improvement list.
func AIImprovements(aiScore int) []models.AIImprovement {
	var out []models.AIImprovement
	for _, band := range improvementBands {
		if band.applies(aiScore) {
			out = append(out, band.items...)
		}
	}
	if len(out) > MaxAIImprovements {
		out = out[:MaxAIImprovements]
	}
	return out
}

// GenerateContentSuggestions combines the strategy's record-level lists
// with the platform map and the score-banded improvements.
func GenerateContentSuggestions(strategy SuggestionStrategy, r *models.ContentRecord, aiScore int) models.ContentSuggestions {
	if strategy == nil {
		strategy = StaticCatalogue{}
	}
	out := strategy.Suggest(r)
	out.AIVisibility = make(map[models.AIPlatform]models.VisibilityLevel, len(platformVisibility))
	for k, v := range platformVisibility {
		out.AIVisibility[k] = v
	}
	out.AIImprovements = AIImprovements(aiScore)
	return out
}
