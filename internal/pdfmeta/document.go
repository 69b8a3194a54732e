package pdfmeta

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// document is the raw material the extraction heuristics work on. It is
// decoupled from the PDF library so heuristics can be tested on synthetic
// input.
type document struct {
	// Embedded document information dictionary values, empty if absent.
	metaTitle  string
	metaAuthor string

	// window is the plain text of the first MaxPages pages; all heuristics
	// except reference extraction operate on it.
	window string

	// fullText is the plain text of every page, used only for locating the
	// reference section.
	fullText string

	// firstPageRuns are styled text runs from page one, for the
	// largest-font title heuristic.
	firstPageRuns []styledRun

	pageCount int
}

// styledRun is a contiguous run of same-size text on one visual line.
type styledRun struct {
	text string
	size float64
}

// yTolerance is the vertical distance within which two text fragments are
// considered to sit on the same line.
const yTolerance = 2.0

// openDocument reads a PDF from disk into a document. The library can panic
// on malformed files, so the whole read is wrapped in a recover that turns a
// panic into an error.
func openDocument(path string, maxPages int) (doc *document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("reading pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	doc = &document{pageCount: r.NumPage()}

	info := r.Trailer().Key("Info")
	if !info.IsNull() {
		doc.metaTitle = strings.TrimSpace(info.Key("Title").Text())
		doc.metaAuthor = strings.TrimSpace(info.Key("Author").Text())
	}

	windowPages := maxPages
	if windowPages <= 0 || windowPages > r.NumPage() {
		windowPages = r.NumPage()
	}

	var window, full strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		full.WriteString(text)
		full.WriteString("\n")
		if i <= windowPages {
			window.WriteString(text)
			window.WriteString("\n")
		}
		if i == 1 {
			doc.firstPageRuns = collectRuns(page)
		}
	}
	doc.window = window.String()
	doc.fullText = full.String()

	return doc, nil
}

// collectRuns groups the page's raw text fragments into per-line runs of
// uniform font size. Fragments from this library are often single words or
// glyphs, so grouping is required before line lengths mean anything.
func collectRuns(page pdf.Page) []styledRun {
	content := page.Content()
	texts := make([]pdf.Text, len(content.Text))
	copy(texts, content.Text)

	// Reading order: top of page first (higher Y first), then left to right.
	sort.SliceStable(texts, func(i, j int) bool {
		if math.Abs(texts[i].Y-texts[j].Y) > yTolerance {
			return texts[i].Y > texts[j].Y
		}
		return texts[i].X < texts[j].X
	})

	var runs []styledRun
	var cur strings.Builder
	var curSize, curY float64

	flush := func() {
		if cur.Len() > 0 {
			runs = append(runs, styledRun{text: strings.TrimSpace(cur.String()), size: curSize})
			cur.Reset()
		}
	}

	for _, t := range texts {
		sameLine := math.Abs(t.Y-curY) <= yTolerance
		sameSize := t.FontSize == curSize
		if cur.Len() > 0 && (!sameLine || !sameSize) {
			flush()
		}
		if cur.Len() == 0 {
			curSize = t.FontSize
			curY = t.Y
		}
		cur.WriteString(t.S)
	}
	flush()

	return runs
}
