package storage

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/litgraph/litgraph/internal/paper"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "papers.db"))
	if err != nil {
		t.Fatalf("OpenDB() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func samplePaper(path string) *paper.Paper {
	return &paper.Paper{
		FilePath:  path,
		Filename:  filepath.Base(path),
		Title:     "A Study of Things",
		Authors:   []string{"Alice Smith", "Bob Jones"},
		Abstract:  "We study things.",
		Keywords:  []string{"things", "studies"},
		PageCount: 12,
		Classification: paper.Classification{
			Discipline: "Computer Science",
			SubField:   "Databases",
			PaperType:  "Research",
			Confidence: 0.9,
		},
	}
}

func TestUpsertPaperIdempotent(t *testing.T) {
	db := openTestDB(t)

	p := samplePaper("/data/a.pdf")
	id1, err := db.UpsertPaper(p)
	if err != nil {
		t.Fatalf("UpsertPaper() error: %v", err)
	}
	if p.ID != id1 {
		t.Errorf("record ID = %d, want %d", p.ID, id1)
	}

	// Re-ingesting the same path updates in place.
	p2 := samplePaper("/data/a.pdf")
	p2.Title = "A Revised Study of Things"
	p2.Authors = []string{"Alice Smith"}
	id2, err := db.UpsertPaper(p2)
	if err != nil {
		t.Fatalf("second UpsertPaper() error: %v", err)
	}
	if id2 != id1 {
		t.Fatalf("re-ingestion created a new id: %d != %d", id2, id1)
	}

	if n, err := db.CountPapers(); err != nil || n != 1 {
		t.Fatalf("CountPapers() = %d, %v, want 1", n, err)
	}

	got, err := db.GetPaperByID(id1)
	if err != nil {
		t.Fatalf("GetPaperByID() error: %v", err)
	}
	if got.Title != "A Revised Study of Things" {
		t.Errorf("stored title = %q, want updated title", got.Title)
	}
	if !reflect.DeepEqual(got.Authors, []string{"Alice Smith"}) {
		t.Errorf("stored authors = %v, want updated list", got.Authors)
	}
}

func TestGetPaperRoundTrip(t *testing.T) {
	db := openTestDB(t)

	p := samplePaper("/data/roundtrip.pdf")
	p.References = []string{"Smith (2020). Prior work on things."}
	p.Summary = "Things, studied."
	if _, err := db.UpsertPaper(p); err != nil {
		t.Fatalf("UpsertPaper() error: %v", err)
	}

	got, err := db.GetPaperByPath("/data/roundtrip.pdf")
	if err != nil {
		t.Fatalf("GetPaperByPath() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetPaperByPath() = nil for stored paper")
	}

	if got.Title != p.Title || got.Abstract != p.Abstract || got.PageCount != p.PageCount {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if !reflect.DeepEqual(got.Authors, p.Authors) {
		t.Errorf("authors = %v, want %v", got.Authors, p.Authors)
	}
	if !reflect.DeepEqual(got.Keywords, p.Keywords) {
		t.Errorf("keywords = %v, want %v", got.Keywords, p.Keywords)
	}
	if !reflect.DeepEqual(got.References, p.References) {
		t.Errorf("references = %v, want %v", got.References, p.References)
	}
	if got.Discipline != "Computer Science" || got.Confidence != 0.9 {
		t.Errorf("classification = %+v", got.Classification)
	}

	if missing, err := db.GetPaperByPath("/data/nope.pdf"); err != nil || missing != nil {
		t.Errorf("GetPaperByPath() for absent path = %v, %v, want nil, nil", missing, err)
	}
}

func TestListPapersByDiscipline(t *testing.T) {
	db := openTestDB(t)

	cs := samplePaper("/data/cs.pdf")
	if _, err := db.UpsertPaper(cs); err != nil {
		t.Fatal(err)
	}
	bio := samplePaper("/data/bio.pdf")
	bio.Discipline = "Biology"
	if _, err := db.UpsertPaper(bio); err != nil {
		t.Fatal(err)
	}

	all, err := db.ListPapers()
	if err != nil {
		t.Fatalf("ListPapers() error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListPapers() = %d papers, want 2", len(all))
	}

	got, err := db.ListPapersByDiscipline("Biology")
	if err != nil {
		t.Fatalf("ListPapersByDiscipline() error: %v", err)
	}
	if len(got) != 1 || got[0].FilePath != "/data/bio.pdf" {
		t.Errorf("ListPapersByDiscipline() = %+v, want only the biology paper", got)
	}

	if none, err := db.ListPapersByDiscipline("Geology"); err != nil || len(none) != 0 {
		t.Errorf("ListPapersByDiscipline() for empty discipline = %v, %v", none, err)
	}
}

func TestAuthorsRebuiltOnUpsert(t *testing.T) {
	db := openTestDB(t)

	p := samplePaper("/data/authors.pdf")
	if _, err := db.UpsertPaper(p); err != nil {
		t.Fatal(err)
	}

	// Shared author across two papers counts twice.
	p2 := samplePaper("/data/authors2.pdf")
	p2.Authors = []string{"Alice Smith"}
	if _, err := db.UpsertPaper(p2); err != nil {
		t.Fatal(err)
	}

	authors, err := db.ListAuthors()
	if err != nil {
		t.Fatalf("ListAuthors() error: %v", err)
	}
	if len(authors) != 2 {
		t.Fatalf("ListAuthors() = %+v, want 2 authors", authors)
	}
	if authors[0].Name != "Alice Smith" || authors[0].PaperCount != 2 {
		t.Errorf("top author = %+v, want Alice Smith with 2 papers", authors[0])
	}

	// Dropping an author from the paper drops the link but keeps the
	// author row.
	p.Authors = []string{"Alice Smith"}
	if _, err := db.UpsertPaper(p); err != nil {
		t.Fatal(err)
	}
	authors, err = db.ListAuthors()
	if err != nil {
		t.Fatal(err)
	}
	var bob *AuthorCount
	for i := range authors {
		if authors[i].Name == "Bob Jones" {
			bob = &authors[i]
		}
	}
	if bob == nil {
		t.Fatal("author row deleted on re-upsert")
	}
	if bob.PaperCount != 0 {
		t.Errorf("unlinked author paper count = %d, want 0", bob.PaperCount)
	}
}

func TestGetStatistics(t *testing.T) {
	db := openTestDB(t)

	for _, path := range []string{"/d/1.pdf", "/d/2.pdf"} {
		if _, err := db.UpsertPaper(samplePaper(path)); err != nil {
			t.Fatal(err)
		}
	}
	bio := samplePaper("/d/3.pdf")
	bio.Discipline = "Biology"
	bio.Authors = []string{"Carol White"}
	if _, err := db.UpsertPaper(bio); err != nil {
		t.Fatal(err)
	}

	stats, err := db.GetStatistics()
	if err != nil {
		t.Fatalf("GetStatistics() error: %v", err)
	}
	if stats.TotalPapers != 3 {
		t.Errorf("TotalPapers = %d, want 3", stats.TotalPapers)
	}
	if stats.TotalAuthors != 3 {
		t.Errorf("TotalAuthors = %d, want 3", stats.TotalAuthors)
	}
	want := map[string]int{"Computer Science": 2, "Biology": 1}
	if !reflect.DeepEqual(stats.ByDiscipline, want) {
		t.Errorf("ByDiscipline = %v, want %v", stats.ByDiscipline, want)
	}
}
