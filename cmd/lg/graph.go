package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/litgraph/litgraph/internal/config"
	"github.com/litgraph/litgraph/internal/graph"
	"github.com/litgraph/litgraph/internal/paper"
	"github.com/litgraph/litgraph/internal/storage"
	"github.com/litgraph/litgraph/internal/viz"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("output", "", "HTML output path (overrides config)")
	graphCmd.Flags().String("layout", "force", "Graph layout: force, circle, or grid")
	graphCmd.Flags().String("discipline", "", "Only include papers in this discipline")
	graphCmd.Flags().Bool("stats-only", false, "Print graph statistics without writing HTML")
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build the knowledge graph and export it as HTML",
	Long: `Build the knowledge graph from stored papers and similarity edges
and export it as a self-contained interactive HTML page.

Nodes are papers, authors, and disciplines; edges cover authorship,
co-author collaboration, topical similarity, and discipline
membership. Run lg similarity first to populate similarity edges.`,
	RunE: runGraph,
}

// GraphResponse reports one graph export.
type GraphResponse struct {
	Stats  graph.Stats `json:"stats"`
	Output string      `json:"output,omitempty"`
}

func runGraph(cmd *cobra.Command, args []string) error {
	root, cfg := findWorkspace()

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	discipline, _ := cmd.Flags().GetString("discipline")
	papers, err := listGraphPapers(db, discipline)
	if err != nil {
		exitWithError(ExitError, "listing papers: %v", err)
	}

	threshold := cfg.Threshold()
	sims, err := db.ListSimilarities(threshold)
	if err != nil {
		exitWithError(ExitError, "listing similarities: %v", err)
	}

	g := graph.Build(papers, sims, threshold)
	stats := g.Stats()

	if statsOnly, _ := cmd.Flags().GetBool("stats-only"); statsOnly {
		reportGraph(stats, "")
		return nil
	}

	layout, _ := cmd.Flags().GetString("layout")
	opts := viz.DefaultOptions()
	opts.Layout = layout

	html, err := viz.GenerateHTML(g, opts)
	if err != nil {
		exitWithError(ExitError, "generating HTML: %v", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = cfg.GraphOutputPath(root)
	} else {
		output = config.ExpandPath(output)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		exitWithError(ExitError, "creating output directory: %v", err)
	}
	if err := os.WriteFile(output, []byte(html), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", output, err)
	}

	reportGraph(stats, output)
	return nil
}

func listGraphPapers(db *storage.DB, discipline string) ([]paper.Paper, error) {
	if discipline != "" {
		return db.ListPapersByDiscipline(discipline)
	}
	return db.ListPapers()
}

func reportGraph(stats graph.Stats, output string) {
	if humanOutput {
		fmt.Printf("Nodes: %d  Edges: %d\n", stats.TotalNodes, stats.TotalEdges)
		for kind, count := range stats.NodesByKind {
			fmt.Printf("  %-12s %d node(s)\n", kind, count)
		}
		for relation, count := range stats.EdgesByRelation {
			fmt.Printf("  %-12s %d edge(s)\n", relation, count)
		}
		if output != "" {
			fmt.Printf("Wrote %s\n", output)
		}
	} else {
		outputJSON(GraphResponse{Stats: stats, Output: output})
	}
}
