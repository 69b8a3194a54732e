package pdfmeta

import (
	"regexp"
	"strings"
)

// minTitleLength is the shortest trimmed string accepted as a title by the
// metadata and font-size strategies.
const minTitleLength = 5

// authorSearchWindow bounds how far into the text window the labeled-author
// patterns look. Author lines appear near the top of page one.
const authorSearchWindow = 2000

// titleStrategies are tried in declared order; the first non-empty result
// wins. The order encodes extraction priority: embedded metadata is most
// reliable, the largest-font heuristic covers PDFs without metadata, and the
// caller falls back to the filename stem when both miss.
var titleStrategies = []struct {
	name string
	fn   func(doc *document) string
}{
	{"embedded-metadata", titleFromMetadata},
	{"largest-font-run", titleFromLargestFont},
}

func extractTitle(doc *document, stem string) string {
	for _, s := range titleStrategies {
		if title := s.fn(doc); title != "" {
			return title
		}
	}
	return stem
}

func titleFromMetadata(doc *document) string {
	title := strings.TrimSpace(doc.metaTitle)
	if len(title) > minTitleLength {
		return title
	}
	return ""
}

// titleFromLargestFont returns the text of the largest-font run on page one.
// Titles are typically the largest text on the first page when embedded
// metadata is absent.
func titleFromLargestFont(doc *document) string {
	var maxSize float64
	var candidate string
	for _, run := range doc.firstPageRuns {
		text := strings.TrimSpace(run.text)
		if run.size > maxSize && len(text) > minTitleLength {
			maxSize = run.size
			candidate = text
		}
	}
	return candidate
}

// authorSeparators is the fixed priority order for splitting a multi-author
// string. The first separator found as a substring wins and the rest are
// never consulted. This is deliberately naive and matches its known hazards:
// "and" can split inside a name containing it, and a single-author
// "Lastname, Firstname" entry is indistinguishable from a comma-separated
// list, so it over-splits. Callers wanting different behavior must not rely
// on this order changing.
var authorSeparators = []string{",", ";", "and", "&", "、"}

var authorLinePatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"authors-label", regexp.MustCompile(`(?i)(?:Authors?|作者)[:\s]+([^\n]+)`)},
	{"by-label", regexp.MustCompile(`(?i)\bBy[:\s]+([^\n]+)`)},
}

func extractAuthors(doc *document, max int) []string {
	if doc.metaAuthor != "" {
		return capAuthors(splitAuthors(doc.metaAuthor), max)
	}

	head := doc.window
	if len(head) > authorSearchWindow {
		head = head[:authorSearchWindow]
	}
	for _, p := range authorLinePatterns {
		if m := p.re.FindStringSubmatch(head); m != nil {
			if authors := splitAuthors(m[1]); len(authors) > 0 {
				return capAuthors(authors, max)
			}
		}
	}
	return nil
}

// splitAuthors splits an author string on the first matching separator in
// authorSeparators. If no separator matches, the whole trimmed string is one
// author.
func splitAuthors(s string) []string {
	for _, sep := range authorSeparators {
		if !strings.Contains(s, sep) {
			continue
		}
		var authors []string
		for _, part := range strings.Split(s, sep) {
			if part = strings.TrimSpace(part); part != "" {
				authors = append(authors, part)
			}
		}
		return authors
	}
	if s = strings.TrimSpace(s); s != "" {
		return []string{s}
	}
	return nil
}

func capAuthors(authors []string, max int) []string {
	if max > 0 && len(authors) > max {
		return authors[:max]
	}
	return authors
}
