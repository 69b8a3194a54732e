// Package classify assigns papers to a discipline taxonomy using a remote
// language model.
package classify

import (
	"context"

	"github.com/litgraph/litgraph/internal/paper"
)

// Disciplines is the fixed top-level taxonomy the classifier chooses from.
// "Other" is the catch-all and the soft-failure default.
var Disciplines = []string{
	"Computer Science",
	"Artificial Intelligence",
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"Medicine",
	"Economics",
	"Management",
	"Psychology",
	"Sociology",
	"Law",
	"Literature",
	"History",
	"Geography",
	"Environmental Science",
	"Materials Science",
	"Electrical Engineering",
	"Mechanical Engineering",
	"Transportation",
	"Architecture",
	"Agriculture",
	"Other",
}

// Classifier assigns a discipline classification to one paper's metadata.
type Classifier interface {
	Classify(ctx context.Context, title, abstract string, keywords []string) (paper.Classification, error)
}

// Default returns the low-confidence classification used when the remote
// classifier fails. The pipeline substitutes it at the collaborator boundary
// so a classifier outage never stalls ingestion.
func Default() paper.Classification {
	return paper.Classification{
		Discipline: "Other",
		SubField:   "Unknown",
		PaperType:  "Unknown",
		Confidence: 0.0,
	}
}

// IsKnownDiscipline reports whether name is in the fixed taxonomy.
func IsKnownDiscipline(name string) bool {
	for _, d := range Disciplines {
		if d == name {
			return true
		}
	}
	return false
}
