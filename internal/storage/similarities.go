package storage

import "fmt"

// Similarity is a stored topical-similarity score between two papers.
// Pairs are canonical: Paper1ID < Paper2ID always holds in storage.
type Similarity struct {
	Paper1ID int64   `json:"paper1_id"`
	Paper2ID int64   `json:"paper2_id"`
	Score    float64 `json:"score"`
}

// UpsertSimilarity stores the score for the unordered pair (a, b),
// replacing any prior score for the same pair. The pair is normalized to
// lower-id-first so each pair is stored exactly once.
func (d *DB) UpsertSimilarity(a, b int64, score float64) error {
	if a == b {
		return fmt.Errorf("similarity pair cannot be a self-pair (paper %d)", a)
	}
	if a > b {
		a, b = b, a
	}
	_, err := d.db.Exec(`
		INSERT OR REPLACE INTO similarities (paper1_id, paper2_id, score)
		VALUES (?, ?, ?)
	`, a, b, score)
	if err != nil {
		return fmt.Errorf("upserting similarity (%d, %d): %w", a, b, err)
	}
	return nil
}

// ListSimilarities returns all stored pairs with score at or above minScore.
func (d *DB) ListSimilarities(minScore float64) ([]Similarity, error) {
	rows, err := d.db.Query(`
		SELECT paper1_id, paper2_id, score
		FROM similarities
		WHERE score >= ?
		ORDER BY paper1_id, paper2_id
	`, minScore)
	if err != nil {
		return nil, fmt.Errorf("listing similarities: %w", err)
	}
	defer rows.Close()

	var sims []Similarity
	for rows.Next() {
		var s Similarity
		if err := rows.Scan(&s.Paper1ID, &s.Paper2ID, &s.Score); err != nil {
			return nil, err
		}
		sims = append(sims, s)
	}
	return sims, rows.Err()
}

// ClearSimilarities removes all stored similarity pairs. Called before a
// full recompute so pairs involving removed or re-filtered papers don't
// linger.
func (d *DB) ClearSimilarities() error {
	if _, err := d.db.Exec("DELETE FROM similarities"); err != nil {
		return fmt.Errorf("clearing similarities: %w", err)
	}
	return nil
}
