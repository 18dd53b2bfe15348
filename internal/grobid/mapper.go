package grobid

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mhalverson/paperdex/internal/paper"
)

// Document types accepted from TEI keyword terms when no explicit type
// attribute or class code is present.
var knownDocTypes = map[string]bool{
	"article":    true,
	"review":     true,
	"book":       true,
	"chapter":    true,
	"conference": true,
	"preprint":   true,
}

var (
	fullDatePattern  = regexp.MustCompile(`\b(19|20)\d{2}-\d{2}-\d{2}\b`)
	yearMonthPattern = regexp.MustCompile(`\b(19|20)\d{2}-\d{2}\b`)
	yearPattern      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// MapTEI converts a decoded TEI header into sparse paper metadata.
// Missing substructures yield absent fields; they never invalidate the
// rest of the record.
func MapTEI(tei *TEI) paper.Metadata {
	var md paper.Metadata

	md.Title = paper.String(normalizeSpace(headerTitle(tei)))
	md.DocumentType = paper.String(documentType(tei))

	authors := tei.Header.FileDesc.SourceDesc.BiblStruct.Analytic.Authors
	names := authorNames(authors)
	if len(names) == 0 {
		authors = tei.Header.FileDesc.TitleStmt.Authors
		names = authorNames(authors)
	}
	if len(names) > 0 {
		md.Authors = names
	}
	if affs := affiliations(authors); len(affs) > 0 {
		md.Affiliations = affs
	}
	if countries := countries(authors); len(countries) > 0 {
		md.Countries = countries
	}

	if terms := keywordTerms(tei); len(terms) > 0 {
		md.Keywords = terms
	}

	md.PublicationDate = publicationDate(tei)
	if md.PublicationDate != nil {
		md.Year = paper.Int(md.PublicationDate.Year)
	} else if year := fallbackYear(tei); year != 0 {
		md.Year = paper.Int(year)
	}

	journal, book := monogrTitles(tei.Header.FileDesc.SourceDesc.BiblStruct.Monogr.Titles)
	md.JournalTitle = paper.String(normalizeSpace(journal))
	md.BookTitle = paper.String(normalizeSpace(book))

	publisher := tei.Header.FileDesc.PublicationStmt.Publisher
	if strings.TrimSpace(publisher) == "" {
		publisher = tei.Header.FileDesc.SourceDesc.BiblStruct.Monogr.Imprint.Publisher
	}
	md.Publisher = paper.String(normalizeSpace(publisher))

	md.Abstract = paper.String(normalizeSpace(tei.Header.ProfileDesc.Abstract.Text))

	return md
}

// headerTitle prefers the titleStmt title, falling back to the analytic
// title inside biblStruct.
func headerTitle(tei *TEI) string {
	if t := firstTitle(tei.Header.FileDesc.TitleStmt.Titles); t != "" {
		return t
	}
	return firstTitle(tei.Header.FileDesc.SourceDesc.BiblStruct.Analytic.Titles)
}

func firstTitle(titles []teiTitle) string {
	for _, t := range titles {
		if strings.TrimSpace(t.Value) != "" {
			return t.Value
		}
	}
	return ""
}

// documentType recovers a type label from, in order: the biblStruct
// type attribute, a textClass classCode, or a short keyword term that
// names a known document type.
func documentType(tei *TEI) string {
	if t := normalizeSpace(tei.Header.FileDesc.SourceDesc.BiblStruct.Type); t != "" {
		return t
	}
	for _, code := range tei.Header.ProfileDesc.TextClass.ClassCodes {
		if c := normalizeSpace(code); c != "" {
			return c
		}
	}
	for _, term := range tei.Header.ProfileDesc.TextClass.Keywords.Terms {
		if len(strings.Fields(term)) > 4 {
			continue
		}
		candidate := strings.ToLower(strings.TrimSpace(term))
		if knownDocTypes[candidate] {
			return candidate
		}
	}
	return ""
}

// authorNames assembles "forename(s) surname" strings, skipping authors
// with no usable name parts.
func authorNames(authors []teiAuthor) []string {
	var names []string
	for _, a := range authors {
		forename := strings.Join(nonEmpty(a.PersName.Forenames), " ")
		full := normalizeSpace(strings.TrimSpace(forename + " " + a.PersName.Surname))
		if full != "" {
			names = append(names, full)
		}
	}
	return names
}

// affiliations renders each affiliation as "orgNames, address" and
// returns the sorted de-duplicated set.
func affiliations(authors []teiAuthor) []string {
	seen := make(map[string]bool)
	var affs []string
	for _, a := range authors {
		for _, aff := range a.Affiliations {
			parts := nonEmpty(aff.OrgNames)
			if addr := addressText(aff.Address); addr != "" {
				parts = append(parts, addr)
			}
			rendered := normalizeSpace(strings.Join(parts, ", "))
			if rendered != "" && !seen[rendered] {
				seen[rendered] = true
				affs = append(affs, rendered)
			}
		}
	}
	sort.Strings(affs)
	return affs
}

func addressText(addr teiAddress) string {
	var parts []string
	parts = append(parts, nonEmpty(addr.AddrLines)...)
	parts = append(parts, addr.Settlement, addr.Region, addr.PostCode)
	parts = append(parts, addr.Countries...)
	return normalizeSpace(strings.Join(nonEmpty(parts), " "))
}

// countries collects the sorted de-duplicated country set across all
// author affiliations.
func countries(authors []teiAuthor) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range authors {
		for _, aff := range a.Affiliations {
			for _, c := range aff.Address.Countries {
				c = normalizeSpace(c)
				if c != "" && !seen[c] {
					seen[c] = true
					out = append(out, c)
				}
			}
		}
	}
	sort.Strings(out)
	return out
}

func keywordTerms(tei *TEI) []string {
	var terms []string
	for _, term := range tei.Header.ProfileDesc.TextClass.Keywords.Terms {
		if t := strings.TrimSpace(term); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// publicationDate scans publicationStmt dates first, then imprint
// dates, preferring the when attribute over element text.
func publicationDate(tei *TEI) *paper.PartialDate {
	dateSets := [][]teiDate{
		tei.Header.FileDesc.PublicationStmt.Dates,
		tei.Header.FileDesc.SourceDesc.BiblStruct.Monogr.Imprint.Dates,
	}
	for _, dates := range dateSets {
		for _, d := range dates {
			value := d.When
			if strings.TrimSpace(value) == "" {
				value = d.Value
			}
			if pd := parseDate(value); pd != nil {
				return pd
			}
		}
	}
	return nil
}

// fallbackYear pulls a bare year out of date elements whose value never
// parsed as a date.
func fallbackYear(tei *TEI) int {
	for _, d := range tei.Header.FileDesc.PublicationStmt.Dates {
		for _, value := range []string{d.Value, d.When} {
			if m := yearPattern.FindString(value); m != "" {
				year, _ := strconv.Atoi(m)
				return year
			}
		}
	}
	return 0
}

// parseDate recognizes ISO-ish date strings at decreasing precision:
// YYYY-MM-DD, then YYYY-MM, then a bare YYYY.
func parseDate(value string) *paper.PartialDate {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if m := fullDatePattern.FindString(value); m != "" {
		year, _ := strconv.Atoi(m[0:4])
		month, _ := strconv.Atoi(m[5:7])
		day, _ := strconv.Atoi(m[8:10])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return &paper.PartialDate{Year: year, Month: month, Day: day}
		}
	}
	if m := yearMonthPattern.FindString(value); m != "" {
		year, _ := strconv.Atoi(m[0:4])
		month, _ := strconv.Atoi(m[5:7])
		if month >= 1 && month <= 12 {
			return &paper.PartialDate{Year: year, Month: month}
		}
	}
	if m := yearPattern.FindString(value); m != "" {
		year, _ := strconv.Atoi(m)
		return &paper.PartialDate{Year: year}
	}
	return nil
}

// monogrTitles splits monograph titles into journal (level j) and book
// (level m) titles. An untyped title counts as a book title when
// neither typed form is present.
func monogrTitles(titles []teiTitle) (journal, book string) {
	var untyped string
	for _, t := range titles {
		value := strings.TrimSpace(t.Value)
		if value == "" {
			continue
		}
		switch t.Level {
		case "j":
			if journal == "" {
				journal = value
			}
		case "m":
			if book == "" {
				book = value
			}
		default:
			if untyped == "" {
				untyped = value
			}
		}
	}
	if journal == "" && book == "" {
		book = untyped
	}
	return journal, book
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}

// normalizeSpace trims and collapses runs of whitespace to single
// spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
