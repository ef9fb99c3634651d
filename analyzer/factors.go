package analyzer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/seo-optimizer/geoaudit/models"
)

// Factor is one entry of the AI-visibility catalogue.
type Factor struct {
	Name        models.FactorName
	Description string
	Assess      func(r *models.ContentRecord) int
}

// Factors is the AI-visibility catalogue. Order is significant: results
// are reported and looked up in this order.
var Factors = []Factor{
	{
		Name:        models.FactorCrawlability,
		Description: "How freely AI crawlers can reach and read the page without logins, paywalls or error pages.",
		Assess:      AssessCrawlability,
	},
	{
		Name:        models.FactorHTMLStructure,
		Description: "Semantic heading hierarchy and well-sized title and meta description.",
		Assess:      AssessHTMLStructure,
	},
	{
		Name:        models.FactorClarity,
		Description: "Clear introductions, definitions and focused coverage of the title topic.",
		Assess:      AssessClarity,
	},
	{
		Name:        models.FactorScannability,
		Description: "Short paragraphs, lists and frequent headings that make content easy to extract.",
		Assess:      AssessScannability,
	},
	{
		Name:        models.FactorSummary,
		Description: "TL;DR, key takeaways and conclusion sections AI assistants can quote directly.",
		Assess:      AssessSummary,
	},
	{
		Name:        models.FactorQA,
		Description: "Explicit questions and answers that mirror how users prompt AI assistants.",
		Assess:      AssessQA,
	},
	{
		Name:        models.FactorSchema,
		Description: "Structured data that describes the page to machines, especially FAQPage, Article and HowTo.",
		Assess:      AssessSchema,
	},
	{
		Name:        models.FactorEntities,
		Description: "References to authoritative sources, research and recognized organizations.",
		Assess:      AssessEntities,
	},
	{
		Name:        models.FactorDataFormats,
		Description: "Lists, statistics, tables and comparisons that are easy to extract as facts.",
		Assess:      AssessDataFormats,
	},
	{
		Name:        models.FactorReadability,
		Description: "Sentence length, vocabulary and paragraph size suited to summarization.",
		Assess:      AssessReadability,
	},
	{
		Name:        models.FactorFreshness,
		Description: "Signals that the content is current, such as recent dates and update notes.",
		Assess:      AssessFreshness,
	},
	{
		Name:        models.FactorCredibility,
		Description: "Author, contact, credential and sourcing signals that establish trust.",
		Assess:      AssessCredibility,
	},
}

// currentYear is swapped in tests.
var currentYear = func() int { return time.Now().Year() }

// fullText joins title, headings and body. Headings the body already
// carries are not repeated.
func fullText(r *models.ContentRecord) string {
	var headings []string
	for _, h := range r.Headings {
		if h.Text != "" && !strings.Contains(r.Content, h.Text) {
			headings = append(headings, h.Text)
		}
	}
	return pageText(r.Title, headings, r.Content)
}

var (
	accessBarriers    = keywords("login required", "log in to continue", "sign in to continue", "sign in to read", "subscribe to read", "subscribers only", "members only", "paywall", "premium content")
	openAccess        = keywords("free", "public", "open access", "no registration", "no sign-up")
	errorTitleMarkers = keywords("404", "not found", "error", "access denied", "forbidden")
)

func AssessCrawlability(r *models.ContentRecord) int {
	text := r.Title + "\n" + r.Content
	score := 70
	score -= accessBarriers.count(text) * 15
	score += capped(openAccess.count(text), 5, 15)
	if !errorTitleMarkers.any(r.Title) {
		score += 15
	}
	return clamp(score, 0)
}

func AssessHTMLStructure(r *models.ContentRecord) int {
	score := 0
	if r.HeadingCount(1) == 1 {
		score += 25
	}
	if r.HeadingCount(2) > 0 {
		score += 25
	}
	if r.HeadingCount(3) > 0 {
		score += 15
	}
	if n := textLength(r.Title); n >= 30 && n <= 60 {
		score += 20
	}
	if n := textLength(r.MetaDescription); n >= 120 && n <= 160 {
		score += 15
	}
	return clamp(score, 0)
}

var (
	introPatterns     = keywords("in this article", "in this guide", "this guide", "you will learn", "you'll learn", "we will", "introduction", "overview")
	questionWords     = keywords("what", "how", "why", "when", "where", "who", "which")
	definitionPhrases = keywords("is defined as", "refers to", "means that", "is a type of", "is a", "is an")
)

func AssessClarity(r *models.ContentRecord) int {
	score := 10
	if introPatterns.any(r.Content) {
		score += 15
	}
	if r.WordCount > 0 {
		density := float64(questionWords.count(r.Content)) / float64(r.WordCount) * 100
		score += int(math.Min(density*5, 15))
	}
	if definitionPhrases.any(r.Content) {
		score += 15
	}
	switch wc := r.WordCount; {
	case wc >= 500 && wc <= 2000:
		score += 25
	case (wc >= 300 && wc < 500) || (wc > 2000 && wc <= 3000):
		score += 15
	case wc >= 100 && wc < 300:
		score += 5
	}
	score += int(math.Round(titleOverlap(r.Title, r.Content) * 20))
	return clamp(score, 0)
}

// titleOverlap is the share of significant title words present in the content.
func titleOverlap(title, content string) float64 {
	lower := strings.ToLower(content)
	seen := map[string]bool{}
	terms, hits := 0, 0
	for _, w := range strings.Fields(strings.ToLower(title)) {
		w = strings.TrimFunc(w, func(c rune) bool { return !unicode.IsLetter(c) && !unicode.IsDigit(c) })
		if len([]rune(w)) <= 3 || seen[w] {
			continue
		}
		seen[w] = true
		terms++
		if strings.Contains(lower, w) {
			hits++
		}
	}
	if terms == 0 {
		return 0
	}
	return float64(hits) / float64(terms)
}

var (
	bulletLine   = regexp.MustCompile(`(?m)^\s*[-*•]\s+\S`)
	numberedLine = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+\S`)
	inlineLabel  = regexp.MustCompile(`(?m)^[A-Z][A-Za-z0-9 ]{1,30}:\s`)
	emphasis     = regexp.MustCompile(`\*\*[^*\n]+\*\*|__[^_\n]+__`)
)

func AssessScannability(r *models.ContentRecord) int {
	score := 5
	if paras := paragraphs(r.Content); len(paras) > 0 {
		switch avg := averageWords(paras); {
		case avg <= 40:
			score += 30
		case avg <= 80:
			score += 20
		case avg <= 120:
			score += 10
		}
	}
	lists := countMatches(bulletLine, r.Content) + countMatches(numberedLine, r.Content)
	score += capped(lists, 5, 25)
	if len(r.Headings) > 0 && r.WordCount > 0 {
		switch perHeading := r.WordCount / len(r.Headings); {
		case perHeading <= 150:
			score += 25
		case perHeading <= 300:
			score += 15
		case perHeading <= 500:
			score += 5
		}
	}
	formatting := countMatches(inlineLabel, r.Content) + countMatches(emphasis, r.Content)
	score += capped(formatting, 3, 15)
	return clamp(score, 0)
}

var (
	tldrMarkers       = keywords("tl;dr", "tldr")
	keyPointMarkers   = keywords("summary", "key points", "key takeaways", "takeaways", "in short", "at a glance")
	conclusionMarkers = keywords("conclusion", "in conclusion", "to sum up", "final thoughts", "wrapping up")
)

func AssessSummary(r *models.ContentRecord) int {
	text := fullText(r)
	score := 0
	if tldrMarkers.any(text) {
		score += 40
	}
	if keyPointMarkers.any(text) {
		score += 30
	}
	if conclusionMarkers.any(text) {
		score += 30
	}
	return clamp(score, 0)
}

var (
	questionMarkers    = keywords("q:", "question:", "faq", "faqs", "frequently asked")
	answerMarkers      = keywords("a:", "answer:")
	interrogativeStart = regexp.MustCompile(`(?i)^\s*(what|how|why|when|where|who|which|can|does|do|is|are|should)\b`)
)

func AssessQA(r *models.ContentRecord) int {
	text := fullText(r)
	score := 0
	if questionMarkers.any(text) {
		score += 40
	}
	if answerMarkers.any(r.Content) {
		score += 30
	}
	for _, h := range r.Headings {
		t := strings.TrimSpace(h.Text)
		if strings.HasSuffix(t, "?") || interrogativeStart.MatchString(t) {
			score += 30
			break
		}
	}
	return clamp(score, 0)
}

func AssessSchema(r *models.ContentRecord) int {
	if !r.HasSchema {
		return 0
	}
	score := 50
	if r.HasSchemaType("FAQPage") {
		score += 20
	}
	if r.HasSchemaType("Article") {
		score += 15
	}
	if r.HasSchemaType("HowTo") {
		score += 15
	}
	return clamp(score, 0)
}

var (
	authorityDomains  = keywords(".gov", ".edu", "wikipedia", "who.int", "europa.eu", "ncbi", "pubmed")
	researchTerms     = keywords("study", "studies", "research", "survey", "according to", "published in", "journal")
	industryAuthority = keywords("harvard", "stanford", "mit", "oxford", "gartner", "forrester", "mckinsey", "deloitte", "world health organization", "pew research")
	citationTerms     = keywords("cited", "citation", "source:", "sources", "references", "bibliography")
	corporateEntity   = regexp.MustCompile(`\b[A-Z][A-Za-z&]+(?: [A-Z][A-Za-z&]+)* (?:Inc|LLC|Ltd|Corp|Corporation|GmbH|PLC)\b`)
)

func AssessEntities(r *models.ContentRecord) int {
	text := fullText(r)
	var hrefs strings.Builder
	for _, l := range r.Links {
		hrefs.WriteString(l.Href)
		hrefs.WriteByte('\n')
	}
	score := 5
	score += capped(authorityDomains.count(text)+authorityDomains.count(hrefs.String()), 5, 20)
	score += capped(researchTerms.count(text), 4, 20)
	score += capped(industryAuthority.count(text), 5, 15)
	score += capped(r.ExternalLinks(), 2, 15)
	score += capped(citationTerms.count(text), 3, 15)
	score += capped(countMatches(corporateEntity, r.Content), 2, 10)
	return clamp(score, 0)
}

var (
	statPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+(?:\.\d+)?%`),
		regexp.MustCompile(`[$€£]\s?\d[\d,]*(?:\.\d+)?`),
		regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s?(?:thousand|million|billion|trillion)\b`),
		regexp.MustCompile(`(?i)\b\d+\s?(?:years?|months?|weeks?|days?|hours?|minutes?)\b`),
		regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s?(?:kg|lbs?|km|miles?|mb|gb|tb|ml|liters?)\b`),
	}
	visualKeywords    = keywords("table", "chart", "graph", "figure", "diagram", "infographic")
	comparisonPhrases = keywords("vs", "versus", "compared to", "compared with", "better than", "pros and cons")
	codePatterns      = []*regexp.Regexp{
		regexp.MustCompile("```"),
		regexp.MustCompile(`<[a-zA-Z][a-zA-Z0-9-]*>`),
		regexp.MustCompile(`\b[a-zA-Z_]\w*\(\)`),
		regexp.MustCompile(`\{[^{}\n]*\}`),
	}
)

func AssessDataFormats(r *models.ContentRecord) int {
	score := 5
	score += capped(countMatches(bulletLine, r.Content), 3, 15)
	score += capped(countMatches(numberedLine, r.Content), 3, 15)
	stats := 0
	for _, re := range statPatterns {
		stats += countMatches(re, r.Content)
	}
	score += capped(stats, 2, 25)
	score += capped(visualKeywords.count(r.Content), 4, 15)
	score += capped(comparisonPhrases.count(r.Content), 3, 15)
	code := 0
	for _, re := range codePatterns {
		code += countMatches(re, r.Content)
	}
	score += capped(code, 2, 10)
	return clamp(score, 0)
}

var readabilityPhrases = keywords("for example", "for instance", "in other words", "simply put", "this means", "in short", "first", "next", "finally")

func AssessReadability(r *models.ContentRecord) int {
	score := 30
	sents := sentences(r.Content)
	if len(sents) > 0 {
		switch avg := averageWords(sents); {
		case avg >= 10 && avg <= 20:
			score += 25
		case avg < 10 || avg <= 25:
			score += 15
		case avg <= 30:
			score += 5
		}
	}
	words := strings.Fields(r.Content)
	if len(words) > 0 {
		long := 0
		for _, w := range words {
			w = strings.TrimFunc(w, func(c rune) bool { return !unicode.IsLetter(c) })
			if len([]rune(w)) > 7 {
				long++
			}
		}
		switch ratio := float64(long) / float64(len(words)); {
		case ratio < 0.15:
			score += 20
		case ratio < 0.25:
			score += 12
		case ratio < 0.35:
			score += 5
		}
	}
	if paras := paragraphs(r.Content); len(paras) > 0 {
		switch avg := averageWords(paras); {
		case avg <= 60:
			score += 15
		case avg <= 100:
			score += 8
		}
	}
	score += capped(readabilityPhrases.count(r.Content), 2, 10)
	return clamp(score, 0)
}

var (
	freshnessTerms = weighted(map[string]int{
		"last updated": 8,
		"updated":      6,
		"latest":       5,
		"up to date":   5,
		"up-to-date":   5,
		"recent":       4,
		"recently":     4,
		"this year":    4,
		"current":      3,
		"currently":    3,
		"today":        3,
		"new":          2,
	})
	monthNames   = exactKeywords("January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December")
	versionTerms = keywords("version", "release", "edition", "changelog", "v1", "v2", "v3")
	staleYears   = keywords("2017", "2018", "2019", "2020")
)

func AssessFreshness(r *models.ContentRecord) int {
	text := fullText(r)
	year := currentYear()
	score := 10
	thisYear, lastYear := strconv.Itoa(year), strconv.Itoa(year-1)
	var current, previous int
	for _, y := range yearLiteral.FindAllString(text, -1) {
		switch y {
		case thisYear:
			current++
		case lastYear:
			previous++
		}
	}
	score += capped(current, 8, 24)
	score += capped(previous, 4, 12)
	if fresh := freshnessTerms.sum(text); fresh > 25 {
		score += 25
	} else {
		score += fresh
	}
	score += capped(monthNames.count(text), 2, 14)
	score += capped(versionTerms.count(text), 3, 15)
	score -= capped(staleYears.count(text), 5, 20)
	return clamp(score, 0)
}

var (
	authorByline    = keywords("written by", "author:", "about the author", "posted by", "reviewed by")
	bylineLine      = regexp.MustCompile(`(?m)^By [A-Z][a-z]+`)
	contactPhrases  = keywords("contact us", "about us", "contact", "get in touch", "our team")
	credentialTerms = keywords("phd", "ph.d", "m.d.", "dr.", "certified", "licensed", "professor", "expert", "years of experience")
	trustSignals    = keywords("privacy policy", "terms of service", "terms and conditions", "verified", "secure", "guarantee", "award", "accredited", "trusted by", "testimonial")
	dateSignals     = keywords("published", "updated", "last modified", "posted on")
	sourceTerms     = keywords("source", "sources", "reference", "references", "study", "studies", "research", "cited")
)

func AssessCredibility(r *models.ContentRecord) int {
	text := fullText(r)
	var linkText strings.Builder
	for _, l := range r.Links {
		linkText.WriteString(l.Text)
		linkText.WriteByte('\n')
	}
	score := 15
	if authorByline.any(text) || bylineLine.MatchString(r.Content) {
		score += 15
	}
	score += capped(contactPhrases.count(text)+contactPhrases.count(linkText.String()), 3, 10)
	score += capped(credentialTerms.count(text), 4, 20)
	score += capped(trustSignals.count(text)+trustSignals.count(linkText.String()), 3, 15)
	if dateSignals.any(text) || yearLiteral.MatchString(text) {
		score += 10
	}
	if sourceTerms.any(text) {
		score += 15
	}
	return clamp(score, 0)
}
