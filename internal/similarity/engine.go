package similarity

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/litgraph/litgraph/internal/paper"
)

// DefaultThreshold is the minimum cosine similarity for an emitted edge.
const DefaultThreshold = 0.6

// Edge is one emitted similarity pair, lower paper id first.
type Edge struct {
	Paper1ID int64   `json:"paper1_id"`
	Paper2ID int64   `json:"paper2_id"`
	Score    float64 `json:"score"`
}

// Store is the persistence surface the engine writes edges to.
type Store interface {
	UpsertSimilarity(a, b int64, score float64) error
}

// Engine computes pairwise topical similarity over a paper collection.
//
// Pair comparison is O(n²) over a bounded-dimension vector space, which is
// fine for corpora in the hundreds to low thousands. Larger corpora would
// want an approximate nearest-neighbor index in place of the full pairwise
// sweep; the contract (pairs at or above threshold, with score) would not
// change.
type Engine struct {
	Threshold   float64
	MaxFeatures int

	// Store receives every emitted edge; nil disables persistence.
	Store Store

	// Logf receives non-fatal diagnostics; nil discards them.
	Logf func(format string, args ...interface{})
}

// NewEngine returns an engine with default threshold and vocabulary bounds
// writing to store.
func NewEngine(store Store) *Engine {
	return &Engine{
		Threshold:   DefaultThreshold,
		MaxFeatures: DefaultMaxFeatures,
		Store:       store,
	}
}

// Compute builds the vector space over the papers' combined text and
// returns every unordered pair scoring at or above the threshold, with
// scores rounded to three decimals. Papers with empty combined text are
// discarded first; fewer than two eligible papers yield no edges.
//
// Vectorization failure is logged and yields an empty result rather than an
// error. Persistence failures do propagate: a half-written similarity table
// should not look like a success.
func (e *Engine) Compute(papers []paper.Paper) ([]Edge, error) {
	eligible := make([]paper.Paper, 0, len(papers))
	texts := make([]string, 0, len(papers))
	for _, p := range papers {
		text := p.CombinedText()
		if strings.TrimSpace(text) == "" {
			continue
		}
		eligible = append(eligible, p)
		texts = append(texts, text)
	}

	if len(eligible) < 2 {
		return nil, nil
	}

	vectorizer := &Vectorizer{MaxFeatures: e.MaxFeatures}
	vectors, err := vectorizer.Fit(texts)
	if err != nil {
		if errors.Is(err, ErrDegenerateVocabulary) {
			e.logf("similarity: %v, skipping", err)
			return nil, nil
		}
		e.logf("similarity: vectorization failed: %v", err)
		return nil, nil
	}

	var edges []Edge
	for i := range eligible {
		for j := i + 1; j < len(eligible); j++ {
			score := cosine(vectors[i], vectors[j])
			if score < e.threshold() {
				continue
			}
			edge := Edge{
				Paper1ID: eligible[i].ID,
				Paper2ID: eligible[j].ID,
				Score:    roundScore(score),
			}
			if edge.Paper1ID > edge.Paper2ID {
				edge.Paper1ID, edge.Paper2ID = edge.Paper2ID, edge.Paper1ID
			}
			if e.Store != nil {
				if err := e.Store.UpsertSimilarity(edge.Paper1ID, edge.Paper2ID, edge.Score); err != nil {
					return edges, fmt.Errorf("persisting similarity (%d, %d): %w", edge.Paper1ID, edge.Paper2ID, err)
				}
			}
			edges = append(edges, edge)
		}
	}
	return edges, nil
}

func (e *Engine) threshold() float64 {
	if e.Threshold <= 0 {
		return DefaultThreshold
	}
	return e.Threshold
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

func roundScore(s float64) float64 {
	return math.Round(s*1000) / 1000
}
