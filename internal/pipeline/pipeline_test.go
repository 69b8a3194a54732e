package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/litgraph/litgraph/internal/classify"
	"github.com/litgraph/litgraph/internal/paper"
	"github.com/litgraph/litgraph/internal/pdfmeta"
)

// fakeStore records upserted papers and fails on configured paths.
type fakeStore struct {
	papers   []paper.Paper
	failPath string
}

func (s *fakeStore) UpsertPaper(p *paper.Paper) (int64, error) {
	if s.failPath != "" && p.FilePath == s.failPath {
		return 0, errors.New("disk full")
	}
	s.papers = append(s.papers, *p)
	id := int64(len(s.papers))
	p.ID = id
	return id, nil
}

// fakeClassifier returns a fixed classification or error.
type fakeClassifier struct {
	cls paper.Classification
	err error
}

func (c *fakeClassifier) Classify(ctx context.Context, title, abstract string, keywords []string) (paper.Classification, error) {
	return c.cls, c.err
}

// extractFromPath fakes extraction: paths containing "bad" degrade.
func extractFromPath(path string) pdfmeta.Result {
	if strings.Contains(path, "bad") {
		return pdfmeta.Result{
			Record:   paper.Paper{FilePath: path, Title: "bad", Authors: []string{}},
			Degraded: true,
			Reason:   "unreadable",
		}
	}
	return pdfmeta.Result{Record: paper.Paper{FilePath: path, Title: "Title of " + path}}
}

func TestRunCountsAndIsolation(t *testing.T) {
	store := &fakeStore{}
	pl := &Pipeline{
		Extract:    extractFromPath,
		Classifier: &fakeClassifier{cls: paper.Classification{Discipline: "Physics"}},
		Store:      store,
	}

	summary, err := pl.Run(context.Background(), []string{"/p/one.pdf", "/p/bad.pdf", "/p/two.pdf"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if summary.Total != 3 || summary.Succeeded != 2 {
		t.Errorf("summary = %+v, want 2/3", summary)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].Path != "/p/bad.pdf" {
		t.Errorf("failures = %+v", summary.Failures)
	}
	// The degraded document was not stored; the batch continued past it.
	if len(store.papers) != 2 {
		t.Errorf("stored papers = %d, want 2", len(store.papers))
	}
	if store.papers[0].Discipline != "Physics" {
		t.Errorf("stored classification = %+v", store.papers[0].Classification)
	}
}

func TestRunClassifierFailureSoft(t *testing.T) {
	store := &fakeStore{}
	pl := &Pipeline{
		Extract:    extractFromPath,
		Classifier: &fakeClassifier{err: errors.New("api down")},
		Store:      store,
	}

	summary, err := pl.Run(context.Background(), []string{"/p/one.pdf"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("summary = %+v, want success despite classifier outage", summary)
	}

	got := store.papers[0].Classification
	if got != classify.Default() {
		t.Errorf("classification = %+v, want default", got)
	}
}

func TestRunStoreFailureRecorded(t *testing.T) {
	store := &fakeStore{failPath: "/p/two.pdf"}
	pl := &Pipeline{
		Extract: extractFromPath,
		Store:   store,
	}

	summary, err := pl.Run(context.Background(), []string{"/p/one.pdf", "/p/two.pdf", "/p/three.pdf"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.Succeeded != 2 {
		t.Errorf("summary = %+v, want 2 successes", summary)
	}
	if len(summary.Failures) != 1 || !strings.Contains(summary.Failures[0].Reason, "storing") {
		t.Errorf("failures = %+v", summary.Failures)
	}
}

// fakeOrganizer fails every archive attempt.
type fakeOrganizer struct {
	calls int
}

func (o *fakeOrganizer) Organize(sourcePath, discipline, subField string) (string, error) {
	o.calls++
	return "", errors.New("target unwritable")
}

func TestRunOrganizerFailureSoft(t *testing.T) {
	store := &fakeStore{}
	org := &fakeOrganizer{}
	pl := &Pipeline{
		Extract:    extractFromPath,
		Classifier: &fakeClassifier{cls: paper.Classification{Discipline: "Physics"}},
		Store:      store,
		Organizer:  org,
	}

	summary, err := pl.Run(context.Background(), []string{"/p/one.pdf"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if org.calls != 1 {
		t.Fatalf("organizer calls = %d, want 1", org.calls)
	}
	// The record is durably stored before archiving, so the document still
	// counts as succeeded.
	if summary.Succeeded != 1 || len(summary.Failures) != 0 {
		t.Errorf("summary = %+v, want success despite archive failure", summary)
	}
	if len(store.papers) != 1 || store.papers[0].ClassifiedPath != "" {
		t.Errorf("stored papers = %+v, want one record without an archived path", store.papers)
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pl := &Pipeline{
		Extract: extractFromPath,
		Store:   &fakeStore{},
	}

	summary, err := pl.Run(ctx, []string{"/p/one.pdf", "/p/two.pdf"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if summary.Succeeded != 0 {
		t.Errorf("summary = %+v, want nothing processed after cancellation", summary)
	}
}

func TestRunLogsProgress(t *testing.T) {
	var lines []string
	pl := &Pipeline{
		Extract: extractFromPath,
		Store:   &fakeStore{},
		Logf: func(format string, args ...interface{}) {
			lines = append(lines, format)
		},
	}

	if _, err := pl.Run(context.Background(), []string{"/p/one.pdf"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(lines) == 0 {
		t.Error("no progress logged")
	}
}
