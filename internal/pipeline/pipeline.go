// Package pipeline orchestrates batch ingestion: scan, extract, classify,
// store, organize.
package pipeline

import (
	"context"
	"fmt"

	"github.com/litgraph/litgraph/internal/classify"
	"github.com/litgraph/litgraph/internal/paper"
	"github.com/litgraph/litgraph/internal/pdfmeta"
)

// Store is the persistence surface the pipeline writes papers to.
type Store interface {
	UpsertPaper(p *paper.Paper) (int64, error)
}

// Organizer archives a stored PDF into its discipline folder. Optional.
// Archiving is best effort: a failure here is logged but does not fail
// the document, whose record is already durably stored.
type Organizer interface {
	Organize(sourcePath, discipline, subField string) (string, error)
}

// Failure records one document that did not make it into storage.
type Failure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Summary reports the outcome of one batch run. A single document's
// failure never fails the batch; it is recorded here instead.
type Summary struct {
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failures  []Failure `json:"failures,omitempty"`
}

// Pipeline processes documents one at a time, isolating per-document
// failures so a batch always runs to completion (or cancellation).
type Pipeline struct {
	Extract    func(path string) pdfmeta.Result
	Classifier classify.Classifier // nil skips classification
	Store      Store
	Organizer  Organizer // nil skips archiving

	// Logf receives progress and diagnostics; nil discards them.
	Logf func(format string, args ...interface{})
}

// Run ingests the given paths sequentially. Cancellation is cooperative:
// the context is checked between documents, never mid-document, so a
// committed document is never half-written by cancellation.
func (pl *Pipeline) Run(ctx context.Context, paths []string) (Summary, error) {
	summary := Summary{Total: len(paths)}

	for i, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		pl.logf("[%d/%d] %s", i+1, len(paths), path)

		if reason, ok := pl.processOne(ctx, path); !ok {
			summary.Failures = append(summary.Failures, Failure{Path: path, Reason: reason})
			continue
		}
		summary.Succeeded++
	}

	return summary, nil
}

// processOne runs one document through the pipeline. Returns ok=false with
// a reason when the document was not stored.
func (pl *Pipeline) processOne(ctx context.Context, path string) (reason string, ok bool) {
	result := pl.Extract(path)
	if result.Degraded {
		pl.logf("  extraction degraded: %s", result.Reason)
		return fmt.Sprintf("extraction degraded: %s", result.Reason), false
	}
	record := result.Record

	if pl.Classifier != nil {
		cls, err := pl.Classifier.Classify(ctx, record.Title, record.Abstract, record.Keywords)
		if err != nil {
			// Classifier outages must not stall ingestion.
			pl.logf("  classification failed, using default: %v", err)
			cls = classify.Default()
		}
		record.Classification = cls
	}

	if _, err := pl.Store.UpsertPaper(&record); err != nil {
		pl.logf("  storing failed: %v", err)
		return fmt.Sprintf("storing: %v", err), false
	}

	if pl.Organizer != nil && record.IsClassified() {
		target, err := pl.Organizer.Organize(path, record.Discipline, record.SubField)
		if err != nil {
			// The record is already durably stored; archiving is best effort.
			pl.logf("  archiving failed: %v", err)
			return "", true
		}
		record.ClassifiedPath = target
		if _, err := pl.Store.UpsertPaper(&record); err != nil {
			pl.logf("  updating archived path failed: %v", err)
		}
	}

	return "", true
}

func (pl *Pipeline) logf(format string, args ...interface{}) {
	if pl.Logf != nil {
		pl.Logf(format, args...)
	}
}
