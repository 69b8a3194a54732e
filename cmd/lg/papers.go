package main

import (
	"fmt"
	"sort"

	"github.com/litgraph/litgraph/internal/config"
	"github.com/litgraph/litgraph/internal/paper"
	"github.com/litgraph/litgraph/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(papersCmd)
	papersCmd.Flags().String("discipline", "", "Only list papers in this discipline")
	papersCmd.Flags().Bool("stats", false, "Show collection statistics instead of the paper list")
	papersCmd.Flags().Bool("authors", false, "List authors with paper counts instead of papers")

	rootCmd.AddCommand(showCmd)
}

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "List stored papers",
	Long: `List stored papers, optionally filtered by discipline.

With --stats, show paper/author totals and the per-discipline
breakdown instead. With --authors, list authors by paper count.`,
	RunE: runPapers,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one stored paper in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// PaperSummary is one row of the papers list.
type PaperSummary struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Authors    string `json:"authors,omitempty"`
	Discipline string `json:"discipline,omitempty"`
	SubField   string `json:"sub_field,omitempty"`
	PageCount  int    `json:"page_count,omitempty"`
}

// PapersResponse lists stored papers.
type PapersResponse struct {
	Count  int            `json:"count"`
	Papers []PaperSummary `json:"papers"`
}

func runPapers(cmd *cobra.Command, args []string) error {
	root, _ := findWorkspace()

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		return showStats(db)
	}
	if authors, _ := cmd.Flags().GetBool("authors"); authors {
		return showAuthors(db)
	}

	discipline, _ := cmd.Flags().GetString("discipline")

	var papers []paper.Paper
	if discipline != "" {
		papers, err = db.ListPapersByDiscipline(discipline)
	} else {
		papers, err = db.ListPapers()
	}
	if err != nil {
		exitWithError(ExitError, "listing papers: %v", err)
	}

	summaries := make([]PaperSummary, 0, len(papers))
	for i := range papers {
		p := &papers[i]
		summaries = append(summaries, PaperSummary{
			ID:         p.ID,
			Title:      p.Title,
			Authors:    paper.FormatAuthors(p.Authors, 3),
			Discipline: p.Discipline,
			SubField:   p.SubField,
			PageCount:  p.PageCount,
		})
	}

	if humanOutput {
		for _, s := range summaries {
			fmt.Printf("%4d  %-12s  %s\n", s.ID, s.Discipline, truncateString(s.Title, ListTitleMaxLen))
		}
		fmt.Printf("%d paper(s)\n", len(summaries))
	} else {
		outputJSON(PapersResponse{Count: len(summaries), Papers: summaries})
	}

	return nil
}

func showStats(db *storage.DB) error {
	stats, err := db.GetStatistics()
	if err != nil {
		exitWithError(ExitError, "reading statistics: %v", err)
	}

	if humanOutput {
		fmt.Printf("Papers:  %d\n", stats.TotalPapers)
		fmt.Printf("Authors: %d\n", stats.TotalAuthors)
		fmt.Println("By discipline:")
		names := make([]string, 0, len(stats.ByDiscipline))
		for name := range stats.ByDiscipline {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-24s %d\n", name, stats.ByDiscipline[name])
		}
	} else {
		outputJSON(stats)
	}

	return nil
}

func showAuthors(db *storage.DB) error {
	authors, err := db.ListAuthors()
	if err != nil {
		exitWithError(ExitError, "listing authors: %v", err)
	}

	if humanOutput {
		for _, a := range authors {
			fmt.Printf("%4d  %s\n", a.PaperCount, a.Name)
		}
		fmt.Printf("%d author(s)\n", len(authors))
	} else {
		outputJSON(map[string]interface{}{
			"count":   len(authors),
			"authors": authors,
		})
	}

	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	root, _ := findWorkspace()

	var id int64
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		exitWithError(ExitError, "invalid paper id: %s", args[0])
	}

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	p, err := db.GetPaperByID(id)
	if err != nil {
		exitWithError(ExitError, "reading paper: %v", err)
	}
	if p == nil {
		exitWithError(ExitDataError, "no paper with id %d", id)
	}

	if humanOutput {
		printPaperDetail(p)
	} else {
		outputJSON(p)
	}

	return nil
}
