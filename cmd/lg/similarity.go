package main

import (
	"fmt"

	"github.com/litgraph/litgraph/internal/config"
	"github.com/litgraph/litgraph/internal/similarity"
	"github.com/litgraph/litgraph/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(similarityCmd)
	similarityCmd.Flags().Float64("threshold", 0, "Minimum cosine similarity for an edge (overrides config)")
	similarityCmd.Flags().Bool("quiet", false, "Suppress diagnostics on stderr")
}

var similarityCmd = &cobra.Command{
	Use:   "similarity",
	Short: "Recompute pairwise topical similarity for all stored papers",
	Long: `Recompute pairwise topical similarity over all stored papers and
replace the stored similarity edges.

Each paper's title, abstract, and keywords are vectorized with
TF-IDF over unigrams and bigrams; every pair scoring at or above
the threshold becomes an edge. The whole edge set is recomputed
from scratch on every run.`,
	RunE: runSimilarity,
}

// SimilarityResponse reports one recomputation run.
type SimilarityResponse struct {
	Papers    int               `json:"papers"`
	Threshold float64           `json:"threshold"`
	Edges     []similarity.Edge `json:"edges"`
}

func runSimilarity(cmd *cobra.Command, args []string) error {
	root, cfg := findWorkspace()

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	papers, err := db.ListPapers()
	if err != nil {
		exitWithError(ExitError, "listing papers: %v", err)
	}

	threshold := cfg.Threshold()
	if flagThreshold, _ := cmd.Flags().GetFloat64("threshold"); flagThreshold > 0 {
		threshold = flagThreshold
	}

	// Stale edges from removed or re-extracted papers must not survive
	// a recomputation.
	if err := db.ClearSimilarities(); err != nil {
		exitWithError(ExitError, "clearing similarities: %v", err)
	}

	engine := similarity.NewEngine(db)
	engine.Threshold = threshold
	engine.MaxFeatures = cfg.Features()
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		engine.Logf = progressf
	}

	edges, err := engine.Compute(papers)
	if err != nil {
		exitWithError(ExitError, "computing similarities: %v", err)
	}

	if humanOutput {
		for _, e := range edges {
			fmt.Printf("%4d ~ %-4d  %.3f\n", e.Paper1ID, e.Paper2ID, e.Score)
		}
		fmt.Printf("%d edge(s) at threshold %.2f across %d paper(s)\n", len(edges), threshold, len(papers))
	} else {
		if edges == nil {
			edges = []similarity.Edge{}
		}
		outputJSON(SimilarityResponse{
			Papers:    len(papers),
			Threshold: threshold,
			Edges:     edges,
		})
	}

	return nil
}
