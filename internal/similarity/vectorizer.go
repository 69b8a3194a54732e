// Package similarity computes pairwise topical similarity over a paper
// corpus using a TF-IDF vector space.
package similarity

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

// ErrDegenerateVocabulary is returned when fitting yields no usable terms,
// for example when every document is stop words only.
var ErrDegenerateVocabulary = errors.New("vocabulary is empty after tokenization")

// DefaultMaxFeatures caps the vocabulary at the most frequent terms across
// the corpus.
const DefaultMaxFeatures = 1000

// Vectorizer builds a bounded unigram+bigram TF-IDF vector space over a
// document collection. Fit once per corpus; document vectors are
// l2-normalized so cosine similarity reduces to a dot product.
type Vectorizer struct {
	MaxFeatures int

	vocabulary map[string]int // term -> column index
	idf        []float64
}

// vector is a sparse l2-normalized document vector.
type vector map[int]float64

// tokenize lowercases the text and splits it into word tokens of two or
// more characters, dropping stop words.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 2 || isStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// terms expands tokens into the unigram+bigram term sequence.
func terms(tokens []string) []string {
	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// Fit builds the vocabulary and idf weights from the corpus and returns the
// per-document vectors, in input order.
func (v *Vectorizer) Fit(docs []string) ([]vector, error) {
	if v.MaxFeatures <= 0 {
		v.MaxFeatures = DefaultMaxFeatures
	}

	docTerms := make([][]string, len(docs))
	corpusCount := make(map[string]int)
	docFreq := make(map[string]int)

	for i, doc := range docs {
		ts := terms(tokenize(doc))
		docTerms[i] = ts

		seen := make(map[string]bool, len(ts))
		for _, t := range ts {
			corpusCount[t]++
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
	}

	if len(corpusCount) == 0 {
		return nil, ErrDegenerateVocabulary
	}

	// Keep the MaxFeatures most frequent terms; ties break alphabetically
	// so the vocabulary is deterministic.
	ranked := make([]string, 0, len(corpusCount))
	for t := range corpusCount {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if corpusCount[ranked[i]] != corpusCount[ranked[j]] {
			return corpusCount[ranked[i]] > corpusCount[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > v.MaxFeatures {
		ranked = ranked[:v.MaxFeatures]
	}

	v.vocabulary = make(map[string]int, len(ranked))
	v.idf = make([]float64, len(ranked))
	n := float64(len(docs))
	for col, t := range ranked {
		v.vocabulary[t] = col
		// Smoothed idf, as if one extra document contained every term.
		v.idf[col] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	vectors := make([]vector, len(docs))
	for i, ts := range docTerms {
		vectors[i] = v.transform(ts)
	}
	return vectors, nil
}

// transform maps one document's term sequence into a normalized tf-idf
// vector.
func (v *Vectorizer) transform(ts []string) vector {
	vec := make(vector)
	for _, t := range ts {
		if col, ok := v.vocabulary[t]; ok {
			vec[col]++
		}
	}

	var norm float64
	for col, tf := range vec {
		w := tf * v.idf[col]
		vec[col] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for col, w := range vec {
		vec[col] = w / norm
	}
	return vec
}

// cosine returns the cosine similarity of two normalized sparse vectors.
func cosine(a, b vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for col, w := range a {
		dot += w * b[col]
	}
	return dot
}
