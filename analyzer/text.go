package analyzer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// clamp bounds a raw additive score to [floor, 100].
func clamp(raw, floor int) int {
	if raw > 100 {
		return 100
	}
	if raw < floor {
		return floor
	}
	return raw
}

// capped returns count*weight but never more than limit.
func capped(count, weight, limit int) int {
	v := count * weight
	if v > limit {
		return limit
	}
	return v
}

// keywordSet is a precompiled list of case-insensitive phrases.
// Phrase edges that are word characters are matched on word boundaries,
// so "new" does not match "news" while "source:" still matches "source: x".
type keywordSet []*regexp.Regexp

func keywords(phrases ...string) keywordSet {
	set := make(keywordSet, 0, len(phrases))
	for _, p := range phrases {
		set = append(set, phrasePattern(p, true))
	}
	return set
}

// exactKeywords is keywords without case folding, for capitalized
// names such as months that collide with ordinary words ("May").
func exactKeywords(phrases ...string) keywordSet {
	set := make(keywordSet, 0, len(phrases))
	for _, p := range phrases {
		set = append(set, phrasePattern(p, false))
	}
	return set
}

func phrasePattern(phrase string, fold bool) *regexp.Regexp {
	expr := regexp.QuoteMeta(phrase)
	first, _ := utf8.DecodeRuneInString(phrase)
	last, _ := utf8.DecodeLastRuneInString(phrase)
	if isWordRune(first) {
		expr = `\b` + expr
	}
	if isWordRune(last) {
		expr = expr + `\b`
	}
	if fold {
		expr = `(?i)` + expr
	}
	return regexp.MustCompile(expr)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// count returns the total number of matches of every phrase.
func (k keywordSet) count(text string) int {
	n := 0
	for _, re := range k {
		n += len(re.FindAllStringIndex(text, -1))
	}
	return n
}

// any reports whether at least one phrase matches.
func (k keywordSet) any(text string) bool {
	for _, re := range k {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// weightedKeywords scores phrase hits by per-phrase weight.
type weightedKeywords []weightedKeyword

type weightedKeyword struct {
	re     *regexp.Regexp
	weight int
}

func weighted(weights map[string]int) weightedKeywords {
	out := make(weightedKeywords, 0, len(weights))
	for phrase, w := range weights {
		out = append(out, weightedKeyword{re: phrasePattern(phrase, true), weight: w})
	}
	return out
}

func (w weightedKeywords) sum(text string) int {
	total := 0
	for _, k := range w {
		total += len(k.re.FindAllStringIndex(text, -1)) * k.weight
	}
	return total
}

func countMatches(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}

var (
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
)

// paragraphs splits content on blank lines. Content without blank lines
// falls back to one paragraph per non-empty line.
func paragraphs(content string) []string {
	parts := paragraphSplit.Split(content, -1)
	if len(parts) <= 1 {
		parts = strings.Split(content, "\n")
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func sentences(content string) []string {
	parts := sentenceSplit.Split(content, -1)
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if len(strings.Fields(s)) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func averageWords(chunks []string) float64 {
	if len(chunks) == 0 {
		return 0
	}
	total := 0
	for _, c := range chunks {
		total += len(strings.Fields(c))
	}
	return float64(total) / float64(len(chunks))
}

func textLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// pageText joins the title, headings and body into one searchable string.
func pageText(title string, headings []string, content string) string {
	var b strings.Builder
	b.WriteString(title)
	for _, h := range headings {
		b.WriteByte('\n')
		b.WriteString(h)
	}
	b.WriteByte('\n')
	b.WriteString(content)
	return b.String()
}
