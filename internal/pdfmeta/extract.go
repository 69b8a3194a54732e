// Package pdfmeta extracts bibliographic metadata from PDF files using
// layout and pattern heuristics.
package pdfmeta

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/litgraph/litgraph/internal/paper"
)

// Config bounds the extraction heuristics.
type Config struct {
	MaxPages       int // pages read into the heuristic text window
	MaxAbstractLen int // abstract truncation length in characters
	MaxAuthors     int
	MaxKeywords    int
	MaxReferences  int
}

// DefaultConfig returns the standard extraction bounds.
func DefaultConfig() Config {
	return Config{
		MaxPages:       5,
		MaxAbstractLen: 2000,
		MaxAuthors:     10,
		MaxKeywords:    15,
		MaxReferences:  100,
	}
}

// Result is the outcome of extracting one file. Extraction never fails:
// an unreadable file produces a degraded stub record (filename-derived title,
// zero page count) with Degraded set and Reason describing the failure.
// Individual heuristic misses are not degradation; they leave fields empty.
type Result struct {
	Record   paper.Paper
	Degraded bool
	Reason   string
}

// Extract parses a single PDF into a best-effort metadata record.
func Extract(path string, cfg Config) Result {
	stem := filenameStem(path)

	doc, err := openDocument(path, cfg.MaxPages)
	if err != nil {
		return Result{
			Record: paper.Paper{
				FilePath: path,
				Filename: filepath.Base(path),
				Title:    stem,
				Authors:  []string{},
			},
			Degraded: true,
			Reason:   err.Error(),
		}
	}

	return Result{Record: extractRecord(doc, path, stem, cfg)}
}

// extractRecord runs all field heuristics over an opened document.
func extractRecord(doc *document, path, stem string, cfg Config) paper.Paper {
	return paper.Paper{
		FilePath:   path,
		Filename:   filepath.Base(path),
		Title:      extractTitle(doc, stem),
		Authors:    extractAuthors(doc, cfg.MaxAuthors),
		Abstract:   extractAbstract(doc, cfg.MaxAbstractLen),
		Keywords:   extractKeywords(doc, cfg.MaxKeywords),
		References: extractReferences(doc, cfg.MaxReferences),
		PageCount:  doc.pageCount,
	}
}

func filenameStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// truncateEllipsis truncates s to at most maxLen characters, appending
// "..." if anything was cut. The limit counts runes, not bytes, so CJK
// text is measured the same as ASCII.
func truncateEllipsis(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + "..."
}
