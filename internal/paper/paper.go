// Package paper defines the core domain types for scanned literature.
package paper

import "strings"

// Paper represents one scanned PDF document and its extracted metadata.
//
// A zero value is a valid "unknown" record: empty strings and nil slices mean
// the corresponding field could not be extracted, never that extraction
// failed. The ID is assigned by storage on first insert and is immutable;
// FilePath is the unique key, so re-ingesting the same path updates the
// existing record.
type Paper struct {
	ID       int64  `json:"id"`
	FilePath string `json:"file_path"`
	Filename string `json:"filename"`

	// Extracted metadata
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Abstract   string   `json:"abstract"`
	Keywords   []string `json:"keywords"`
	References []string `json:"references,omitempty"`
	PageCount  int      `json:"page_count"`

	// Populated by the classifier; zero values until classified.
	Classification

	// Path the PDF was archived to, if file organization ran.
	ClassifiedPath string `json:"classified_path,omitempty"`
}

// Classification is the discipline assignment produced by the classifier.
type Classification struct {
	Discipline string  `json:"discipline"`
	SubField   string  `json:"sub_field"`
	PaperType  string  `json:"paper_type"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	Summary    string  `json:"summary"`
}

// IsClassified reports whether the paper has been through classification.
func (p *Paper) IsClassified() bool {
	return p.Discipline != ""
}

/// CombinedText returns the document representation used for similarity:
// title, abstract, and space-joined keywords concatenated with spaces.
func (p *Paper) CombinedText() string {
	parts := []string{p.Title, p.Abstract, strings.Join(p.Keywords, " ")}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// NormalizeAuthor canonicalizes an author name for identity comparison.
// Identity is exact-match on the trimmed, space-collapsed name; no fuzzy
// merging is attempted.
func NormalizeAuthor(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// FormatAuthors formats up to max author names as a comma-separated string,
// appending "et al." when truncated. max <= 0 means no limit.
func FormatAuthors(authors []string, max int) string {
	if len(authors) == 0 {
		return ""
	}
	if max > 0 && len(authors) > max {
		return strings.Join(authors[:max], ", ") + " et al."
	}
	return strings.Join(authors, ", ")
}
