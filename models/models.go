package models

import "time"

// ContentRecord is the normalized content of a single fetched page.
// It is the only input the analysis engine reads.
type ContentRecord struct {
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"metaDescription"`
	Headings        []Heading `json:"headings"`
	Images          []Image   `json:"images"`
	Links           []Link    `json:"links"`
	Content         string    `json:"content"`
	HasSchema       bool      `json:"hasSchema"`
	SchemaTypes     []string  `json:"schemaTypes"`
	LoadTimeMs      int       `json:"loadTimeMs"`
	WordCount       int       `json:"wordCount"`
}

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	HasAlt bool   `json:"hasAlt"`
}

type Link struct {
	Href       string `json:"href"`
	Text       string `json:"text"`
	IsInternal bool   `json:"isInternal"`
}

// HeadingCount returns the number of headings at the given level.
func (r *ContentRecord) HeadingCount(level int) int {
	n := 0
	for _, h := range r.Headings {
		if h.Level == level {
			n++
		}
	}
	return n
}

// HasSchemaType reports whether the record declares the given schema.org type.
func (r *ContentRecord) HasSchemaType(schemaType string) bool {
	for _, t := range r.SchemaTypes {
		if t == schemaType {
			return true
		}
	}
	return false
}

// ExternalLinks returns the number of links pointing off-site.
func (r *ContentRecord) ExternalLinks() int {
	n := 0
	for _, l := range r.Links {
		if !l.IsInternal {
			n++
		}
	}
	return n
}

// SeoResult is the outcome of one traditional SEO or GEO rule check.
type SeoResult struct {
	Type        ResultType        `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Details     string            `json:"details,omitempty"`
	Metrics     map[string]string `json:"metrics,omitempty"`
}

// GeoResult shares its shape with SeoResult.
type GeoResult = SeoResult

// AuditReport is the persisted result of analyzing one URL.
type AuditReport struct {
	ID                    int64              `json:"id"`
	URL                   string             `json:"url"`
	SeoScore              int                `json:"seoScore"`
	AiScore               int                `json:"aiScore"` // GEO score
	TraditionalSeoResults []SeoResult        `json:"traditionalSeoResults"`
	GeoResults            []GeoResult        `json:"geoResults"`
	ContentSuggestions    ContentSuggestions `json:"contentSuggestions"`
	CreatedAt             time.Time          `json:"createdAt"`
}

type ContentSuggestions struct {
	MissingKeywords  []string                       `json:"missingKeywords"`
	BlogTitles       []BlogTitle                    `json:"blogTitles"`
	ContentStructure []string                       `json:"contentStructure"`
	FAQs             []FAQ                          `json:"faqs"`
	AIVisibility     map[AIPlatform]VisibilityLevel `json:"aiVisibility"`
	AIImprovements   []AIImprovement                `json:"aiImprovements"`
}

type BlogTitle struct {
	Title  string `json:"title"`
	Target string `json:"target"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type AIImprovement struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Priority    int    `json:"priority"`
}

// FactorResult is the score of one AI-visibility factor.
type FactorResult struct {
	Factor      FactorName `json:"factor"`
	Score       int        `json:"score"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
}

type Recommendation struct {
	Priority    Priority `json:"priority"`
	Action      string   `json:"action"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
}

type AiVisibilityAssessment struct {
	OverallScore    int              `json:"overallScore"`
	Summary         string           `json:"summary"`
	Factors         []FactorResult   `json:"factors"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Factor looks up a factor result by name.
func (a *AiVisibilityAssessment) Factor(name FactorName) (FactorResult, bool) {
	for _, f := range a.Factors {
		if f.Factor == name {
			return f, true
		}
	}
	return FactorResult{}, false
}

type KeyDifference struct {
	Category       Category `json:"category"`
	Aspect         string   `json:"aspect"`
	SiteA          string   `json:"siteA"`
	SiteB          string   `json:"siteB"`
	Recommendation string   `json:"recommendation"`
}

type Differences struct {
	SeoScoreDiff     int             `json:"seoScoreDiff"`
	AiScoreDiff      int             `json:"aiScoreDiff"`
	AiVisibilityDiff int             `json:"aiVisibilityDiff"`
	BetterPerformer  Side            `json:"betterPerformer"`
	KeyDifferences   []KeyDifference `json:"keyDifferences"`
}

// ComparisonResult pairs two analyses with their differences.
type ComparisonResult struct {
	ReportA       AuditReport            `json:"reportA"`
	ReportB       AuditReport            `json:"reportB"`
	AIVisibilityA AiVisibilityAssessment `json:"aiVisibilityA"`
	AIVisibilityB AiVisibilityAssessment `json:"aiVisibilityB"`
	Differences   Differences            `json:"differences"`
}
