// Package storage persists papers, authors, and computed similarity pairs
// in SQLite.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/litgraph/litgraph/internal/paper"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectPaperFields is the standard field list for SELECT queries.
const selectPaperFields = `id, file_path, filename, title, authors_json,
	abstract, keywords_json, references_json, page_count,
	discipline, sub_field, paper_type, confidence, summary, classified_path`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_path TEXT UNIQUE NOT NULL,
			filename TEXT NOT NULL,
			title TEXT,
			authors_json TEXT,
			abstract TEXT,
			keywords_json TEXT,
			references_json TEXT,
			page_count INTEGER,
			discipline TEXT,
			sub_field TEXT,
			paper_type TEXT,
			confidence REAL,
			summary TEXT,
			classified_path TEXT,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_papers_discipline ON papers(discipline);

		CREATE TABLE IF NOT EXISTS authors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL
		);

		CREATE TABLE IF NOT EXISTS paper_authors (
			paper_id INTEGER NOT NULL,
			author_id INTEGER NOT NULL,
			PRIMARY KEY (paper_id, author_id),
			FOREIGN KEY (paper_id) REFERENCES papers(id),
			FOREIGN KEY (author_id) REFERENCES authors(id)
		);

		CREATE TABLE IF NOT EXISTS similarities (
			paper1_id INTEGER NOT NULL,
			paper2_id INTEGER NOT NULL,
			score REAL NOT NULL,
			PRIMARY KEY (paper1_id, paper2_id),
			FOREIGN KEY (paper1_id) REFERENCES papers(id),
			FOREIGN KEY (paper2_id) REFERENCES papers(id)
		);
	`
	_, err := db.Exec(schema)
	return err
}

// UpsertPaper inserts the paper or, if a record with the same file path
// exists, updates it in place. The record's ID field is set to the stored
// id, which never changes across re-ingestion of the same path. The author
// association rows are rebuilt to match the record's author list.
func (d *DB) UpsertPaper(p *paper.Paper) (int64, error) {
	authorsJSON, err := marshalStrings(p.Authors)
	if err != nil {
		return 0, fmt.Errorf("marshaling authors: %w", err)
	}
	keywordsJSON, err := marshalStrings(p.Keywords)
	if err != nil {
		return 0, fmt.Errorf("marshaling keywords: %w", err)
	}
	referencesJSON, err := marshalStrings(p.References)
	if err != nil {
		return 0, fmt.Errorf("marshaling references: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow("SELECT id FROM papers WHERE file_path = ?", p.FilePath).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		res, err := tx.Exec(`
			INSERT INTO papers (
				file_path, filename, title, authors_json, abstract,
				keywords_json, references_json, page_count,
				discipline, sub_field, paper_type, confidence, summary,
				classified_path
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.FilePath, p.Filename, p.Title, authorsJSON, p.Abstract,
			keywordsJSON, referencesJSON, p.PageCount,
			p.Discipline, p.SubField, p.PaperType, p.Confidence, p.Summary,
			p.ClassifiedPath)
		if err != nil {
			return 0, fmt.Errorf("inserting paper: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading insert id: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("looking up paper by path: %w", err)
	default:
		_, err = tx.Exec(`
			UPDATE papers SET
				filename = ?, title = ?, authors_json = ?, abstract = ?,
				keywords_json = ?, references_json = ?, page_count = ?,
				discipline = ?, sub_field = ?, paper_type = ?,
				confidence = ?, summary = ?, classified_path = ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, p.Filename, p.Title, authorsJSON, p.Abstract,
			keywordsJSON, referencesJSON, p.PageCount,
			p.Discipline, p.SubField, p.PaperType, p.Confidence, p.Summary,
			p.ClassifiedPath, id)
		if err != nil {
			return 0, fmt.Errorf("updating paper %d: %w", id, err)
		}
	}

	if err := rebuildAuthorLinks(tx, id, p.Authors); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing paper upsert: %w", err)
	}

	p.ID = id
	return id, nil
}

// rebuildAuthorLinks replaces the paper's author association rows. Author
// rows themselves are created lazily and never deleted.
func rebuildAuthorLinks(tx *sql.Tx, paperID int64, authors []string) error {
	if _, err := tx.Exec("DELETE FROM paper_authors WHERE paper_id = ?", paperID); err != nil {
		return fmt.Errorf("clearing author links: %w", err)
	}

	for _, name := range authors {
		name = paper.NormalizeAuthor(name)
		if name == "" {
			continue
		}
		if _, err := tx.Exec("INSERT OR IGNORE INTO authors (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("inserting author %q: %w", name, err)
		}
		var authorID int64
		if err := tx.QueryRow("SELECT id FROM authors WHERE name = ?", name).Scan(&authorID); err != nil {
			return fmt.Errorf("looking up author %q: %w", name, err)
		}
		if _, err := tx.Exec("INSERT OR IGNORE INTO paper_authors (paper_id, author_id) VALUES (?, ?)", paperID, authorID); err != nil {
			return fmt.Errorf("linking author %q: %w", name, err)
		}
	}
	return nil
}

// GetPaperByID retrieves a paper by id. Returns (nil, nil) when absent.
func (d *DB) GetPaperByID(id int64) (*paper.Paper, error) {
	row := d.db.QueryRow(`SELECT `+selectPaperFields+` FROM papers WHERE id = ?`, id)
	return scanPaper(row)
}

// GetPaperByPath retrieves a paper by file path. Returns (nil, nil) when absent.
func (d *DB) GetPaperByPath(path string) (*paper.Paper, error) {
	row := d.db.QueryRow(`SELECT `+selectPaperFields+` FROM papers WHERE file_path = ?`, path)
	return scanPaper(row)
}

// ListPapers returns all papers, newest first.
func (d *DB) ListPapers() ([]paper.Paper, error) {
	rows, err := d.db.Query(`SELECT ` + selectPaperFields + ` FROM papers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// ListPapersByDiscipline returns all papers classified into the discipline.
func (d *DB) ListPapersByDiscipline(name string) ([]paper.Paper, error) {
	rows, err := d.db.Query(`SELECT `+selectPaperFields+` FROM papers WHERE discipline = ? ORDER BY created_at DESC, id DESC`, name)
	if err != nil {
		return nil, fmt.Errorf("listing papers by discipline: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// CountPapers returns the total number of papers.
func (d *DB) CountPapers() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&count)
	return count, err
}

// AuthorCount pairs an author name with how many papers they appear on.
type AuthorCount struct {
	Name       string `json:"name"`
	PaperCount int    `json:"paper_count"`
}

// ListAuthors returns all authors with their paper counts, most prolific
// first.
func (d *DB) ListAuthors() ([]AuthorCount, error) {
	rows, err := d.db.Query(`
		SELECT a.name, COUNT(pa.paper_id)
		FROM authors a
		LEFT JOIN paper_authors pa ON a.id = pa.author_id
		GROUP BY a.id
		ORDER BY COUNT(pa.paper_id) DESC, a.name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing authors: %w", err)
	}
	defer rows.Close()

	var authors []AuthorCount
	for rows.Next() {
		var a AuthorCount
		if err := rows.Scan(&a.Name, &a.PaperCount); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// Statistics summarizes the stored corpus.
type Statistics struct {
	TotalPapers  int            `json:"total_papers"`
	TotalAuthors int            `json:"total_authors"`
	ByDiscipline map[string]int `json:"by_discipline"`
}

// GetStatistics returns corpus-wide counts.
func (d *DB) GetStatistics() (*Statistics, error) {
	stats := &Statistics{ByDiscipline: make(map[string]int)}

	if err := d.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&stats.TotalPapers); err != nil {
		return nil, fmt.Errorf("counting papers: %w", err)
	}
	if err := d.db.QueryRow("SELECT COUNT(*) FROM authors").Scan(&stats.TotalAuthors); err != nil {
		return nil, fmt.Errorf("counting authors: %w", err)
	}

	rows, err := d.db.Query(`
		SELECT discipline, COUNT(*)
		FROM papers
		WHERE discipline != ''
		GROUP BY discipline
	`)
	if err != nil {
		return nil, fmt.Errorf("counting by discipline: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		stats.ByDiscipline[name] = count
	}
	return stats, rows.Err()
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPaper(s scanner) (*paper.Paper, error) {
	var p paper.Paper
	var title, authorsJSON, abstract, keywordsJSON, referencesJSON sql.NullString
	var discipline, subField, paperType, summary, classifiedPath sql.NullString
	var pageCount sql.NullInt64
	var confidence sql.NullFloat64

	err := s.Scan(
		&p.ID, &p.FilePath, &p.Filename, &title, &authorsJSON,
		&abstract, &keywordsJSON, &referencesJSON, &pageCount,
		&discipline, &subField, &paperType, &confidence, &summary,
		&classifiedPath,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	p.Title = title.String
	p.Abstract = abstract.String
	p.Discipline = discipline.String
	p.SubField = subField.String
	p.PaperType = paperType.String
	p.Summary = summary.String
	p.ClassifiedPath = classifiedPath.String
	p.PageCount = int(pageCount.Int64)
	p.Confidence = confidence.Float64

	if p.Authors, err = unmarshalStrings(authorsJSON); err != nil {
		return nil, fmt.Errorf("parsing authors for %d: %w", p.ID, err)
	}
	if p.Keywords, err = unmarshalStrings(keywordsJSON); err != nil {
		return nil, fmt.Errorf("parsing keywords for %d: %w", p.ID, err)
	}
	if p.References, err = unmarshalStrings(referencesJSON); err != nil {
		return nil, fmt.Errorf("parsing references for %d: %w", p.ID, err)
	}

	return &p, nil
}

func scanPapers(rows *sql.Rows) ([]paper.Paper, error) {
	var papers []paper.Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		if p != nil {
			papers = append(papers, *p)
		}
	}
	return papers, rows.Err()
}

func marshalStrings(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalStrings(ns sql.NullString) ([]string, error) {
	if !ns.Valid || ns.String == "" || ns.String == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(ns.String), &values); err != nil {
		return nil, err
	}
	return values, nil
}
