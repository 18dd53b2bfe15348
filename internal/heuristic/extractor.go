// Package heuristic extracts paper metadata from raw first-page text
// with pattern rules. It is the fallback when no extraction service is
// available and the supplement for fields the service missed.
package heuristic

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mhalverson/paperdex/internal/paper"
	"github.com/mhalverson/paperdex/internal/pdftext"
)

const (
	// titleScanLines bounds how deep into the text the title heuristic
	// looks.
	titleScanLines = 8

	// minTitleLen filters out page numbers, headers, and other short
	// lines when hunting for the title.
	minTitleLen = 20

	// maxAuthorLineLen rejects lines too long to plausibly be an
	// author list.
	maxAuthorLineLen = 120

	// minPlausibleYear is the lower bound for publication years.
	minPlausibleYear = 1900
)

var (
	authorsLinePattern   = regexp.MustCompile(`(?i)Authors?\s*[:\-]\s*(.+)`)
	keywordsPattern      = regexp.MustCompile(`(?i)(?:Keywords?|Index Terms?)\s*[:\-]\s*(.*)`)
	yearCandidatePattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	abstractPattern      = regexp.MustCompile(`(?is)\bAbstract\b\s*[:\-]?\s*(.+?)(?:\n\s*\n|\bIntroduction\b|\bKeywords\b)`)
	affiliationPattern   = regexp.MustCompile(`(?i)\b(University|Institute|Department|Laboratory|College|School|Center|Centre)\b`)
	runningHeadPattern   = regexp.MustCompile(`(?i)\b(vol\.?|volume|no\.?|issue|pp\.?)\s*\d`)
)

// Countries recognized at the end of affiliation-like lines. Coverage
// is deliberately small; this signal is advisory.
var knownCountries = []string{
	"USA", "United States", "UK", "United Kingdom", "Germany", "France",
	"China", "Japan", "India", "Canada", "Australia", "Italy", "Spain",
	"Brazil", "Netherlands", "Switzerland", "Sweden", "South Korea",
	"Israel", "Singapore",
}

// Extractor derives metadata from raw text. It holds no state and
// never fails: malformed input degrades to an empty result.
type Extractor struct{}

// New creates a heuristic extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name identifies this extractor in pipeline output.
func (e *Extractor) Name() string { return "heuristic" }

// Extract applies all pattern rules to the document's text.
func (e *Extractor) Extract(_ context.Context, doc *pdftext.Document) (paper.Metadata, error) {
	return FromText(doc.Text()), nil
}

// FromText runs the pattern rules over raw text.
func FromText(text string) paper.Metadata {
	var md paper.Metadata

	lines := splitLines(text)

	title, titleIdx := extractTitle(lines)
	md.Title = paper.String(title)

	if authors := extractAuthors(lines, titleIdx); len(authors) > 0 {
		md.Authors = authors
	}
	if year := extractYear(text); year != 0 {
		md.Year = paper.Int(year)
	}
	if keywords := extractKeywords(text); len(keywords) > 0 {
		md.Keywords = keywords
	}
	md.Abstract = paper.String(extractAbstract(text))

	affs, countries := extractAffiliations(lines)
	if len(affs) > 0 {
		md.Affiliations = affs
	}
	if len(countries) > 0 {
		md.Countries = countries
	}

	return md
}

// splitLines returns the trimmed non-empty lines of text.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// extractTitle picks the longest line exceeding the minimum length
// among the first few lines, skipping running-header boilerplate.
// Ties go to the earliest line. Returns the line's index so the author
// heuristic can look just below it; -1 when nothing qualified.
func extractTitle(lines []string) (string, int) {
	limit := titleScanLines
	if len(lines) < limit {
		limit = len(lines)
	}

	best := -1
	for i := 0; i < limit; i++ {
		if len(lines[i]) < minTitleLen || isBoilerplateLine(lines[i]) {
			continue
		}
		if best == -1 || len(lines[i]) > len(lines[best]) {
			best = i
		}
	}
	if best == -1 {
		return "", -1
	}
	return lines[best], best
}

// isBoilerplateLine checks for running headers and similar noise.
// Words like "journal" alone are not enough: they appear in real
// titles. A volume/issue/page marker next to a number is the signal.
func isBoilerplateLine(line string) bool {
	lower := strings.ToLower(line)
	if runningHeadPattern.MatchString(line) {
		return true
	}
	if strings.Contains(lower, "copyright") {
		return true
	}
	if strings.Contains(lower, "downloaded from") {
		return true
	}
	if strings.HasPrefix(lower, "doi") || strings.HasPrefix(lower, "http") {
		return true
	}
	return false
}

// extractAuthors looks for an explicit Authors: marker in the first
// lines, then falls back to the line directly under the title when it
// is short enough to plausibly be a name list.
func extractAuthors(lines []string, titleIdx int) []string {
	scan := 5
	if len(lines) < scan {
		scan = len(lines)
	}
	for i := 0; i < scan; i++ {
		if m := authorsLinePattern.FindStringSubmatch(lines[i]); m != nil {
			return splitAuthors(m[1])
		}
	}

	next := titleIdx + 1
	if titleIdx < 0 {
		next = 1
	}
	if next < len(lines) && len(lines[next]) <= maxAuthorLineLen {
		return splitAuthors(lines[next])
	}
	return nil
}

// splitAuthors splits a name list on commas, semicolons, and "and".
func splitAuthors(line string) []string {
	normalized := strings.ReplaceAll(line, " and ", ",")
	normalized = strings.ReplaceAll(normalized, ";", ",")
	var authors []string
	for _, part := range strings.Split(normalized, ",") {
		if part = strings.TrimSpace(part); part != "" {
			authors = append(authors, part)
		}
	}
	return authors
}

// extractYear returns the most frequent plausible four-digit year in
// the text, tie-broken by first occurrence.
func extractYear(text string) int {
	maxYear := time.Now().Year() + 1
	counts := make(map[int]int)
	var order []int

	for _, m := range yearCandidatePattern.FindAllString(text, -1) {
		year, err := strconv.Atoi(m)
		if err != nil || year < minPlausibleYear || year > maxYear {
			continue
		}
		if counts[year] == 0 {
			order = append(order, year)
		}
		counts[year]++
	}

	best := 0
	for _, year := range order {
		if best == 0 || counts[year] > counts[best] {
			best = year
		}
	}
	return best
}

// extractKeywords finds a Keywords: or Index Terms: marker line and
// splits the remainder on commas and semicolons. A bare marker pulls
// its keyword list from the following line.
func extractKeywords(text string) []string {
	loc := keywordsPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil
	}

	rest := text[loc[2]:loc[3]]
	line := rest
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		line = rest[:idx]
	}

	if strings.TrimSpace(line) == "" {
		// Marker with nothing after the colon: take the next line.
		after := text[loc[1]:]
		for _, candidate := range strings.Split(after, "\n") {
			if candidate = strings.TrimSpace(candidate); candidate != "" {
				line = candidate
				break
			}
		}
	}

	return splitKeywords(line)
}

// splitKeywords splits a keyword list on commas and semicolons.
func splitKeywords(line string) []string {
	normalized := strings.ReplaceAll(line, ";", ",")
	var keywords []string
	for _, part := range strings.Split(normalized, ",") {
		if part = strings.TrimSpace(part); part != "" {
			keywords = append(keywords, part)
		}
	}
	return keywords
}

// extractAbstract captures text between an Abstract marker and the
// next blank line, Introduction, or Keywords heading.
func extractAbstract(text string) string {
	m := abstractPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.Join(strings.Fields(m[1]), " ")
}

// extractAffiliations scans lines near the title block for
// institution-looking lines and recognizable country names. Both
// signals are low-confidence and advisory.
func extractAffiliations(lines []string) (affiliations, countries []string) {
	scan := 15
	if len(lines) < scan {
		scan = len(lines)
	}
	seenCountry := make(map[string]bool)

	for i := 0; i < scan; i++ {
		line := lines[i]
		if affiliationPattern.MatchString(line) {
			affiliations = append(affiliations, line)
		}
		for _, country := range knownCountries {
			if strings.HasSuffix(line, country) && !seenCountry[country] {
				seenCountry[country] = true
				countries = append(countries, country)
			}
		}
	}
	return affiliations, countries
}
