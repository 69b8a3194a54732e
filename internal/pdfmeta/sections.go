package pdfmeta

import (
	"regexp"
	"strings"
)

// Section label patterns. Each list is tried in order; first match wins.
// English and Chinese labels are covered because the corpus mixes both.
var (
	abstractPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:Abstract|摘\s*要)[:\s]*\n?(.*?)(?:\n\s*(?:Keywords|关键词|Introduction|1\.|1\s|引言)|$)`),
		regexp.MustCompile(`(?is)Summary[:\s]*\n?(.*?)(?:\n\s*(?:Keywords|Introduction|1\.)|$)`),
	}

	keywordsPattern = regexp.MustCompile(`(?i)(?:Key\s*words|关键词)[:\s]*([^\n]+)`)

	referencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:References|参考文献)\s*\n(.*)$`),
		regexp.MustCompile(`(?is)Bibliography\s*\n(.*)$`),
	}

	// Reference entries are split on numbering markers at line starts:
	// [1], 1., or (1).
	referenceSplit = regexp.MustCompile(`\n\s*(?:\[\d+\]|\d+\.|\(\d+\))\s*`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// keywordSeparators is the fixed priority order for splitting a keyword
// line; first separator found wins.
var keywordSeparators = []string{";", ",", "；", "，", "、"}

// minReferenceLength filters out numbering artifacts and page-break debris
// from the split reference section.
const minReferenceLength = 10

func extractAbstract(doc *document, maxLen int) string {
	var abstract string
	for _, re := range abstractPatterns {
		if m := re.FindStringSubmatch(doc.window); m != nil {
			abstract = strings.TrimSpace(m[1])
			break
		}
	}
	if abstract == "" {
		return ""
	}
	abstract = whitespaceRun.ReplaceAllString(abstract, " ")
	return truncateEllipsis(abstract, maxLen)
}

// extractKeywords splits the keyword line on the first matching separator.
// A labeled line with no separator at all is kept as a single keyword
// rather than discarded; a one-keyword paper is real input.
func extractKeywords(doc *document, max int) []string {
	m := keywordsPattern.FindStringSubmatch(doc.window)
	if m == nil {
		return nil
	}

	var keywords []string
	for _, sep := range keywordSeparators {
		if !strings.Contains(m[1], sep) {
			continue
		}
		for _, k := range strings.Split(m[1], sep) {
			if k = strings.TrimSpace(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		break
	}
	if keywords == nil {
		if k := strings.TrimSpace(m[1]); k != "" {
			keywords = []string{k}
		}
	}
	if max > 0 && len(keywords) > max {
		keywords = keywords[:max]
	}
	return keywords
}

// extractReferences locates the reference section in the full document text
// and splits it into individual citation strings.
func extractReferences(doc *document, max int) []string {
	var section string
	for _, re := range referencePatterns {
		if m := re.FindStringSubmatch(doc.fullText); m != nil {
			section = m[1]
			break
		}
	}
	if section == "" {
		return nil
	}

	// The leading newline lets the split pattern see a marker at the very
	// start of the section.
	var refs []string
	for _, entry := range referenceSplit.Split("\n"+section, -1) {
		entry = strings.TrimSpace(entry)
		if len(entry) <= minReferenceLength {
			continue
		}
		refs = append(refs, whitespaceRun.ReplaceAllString(entry, " "))
		if max > 0 && len(refs) >= max {
			break
		}
	}
	return refs
}
