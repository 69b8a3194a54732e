package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/litgraph/litgraph/internal/config"
	"github.com/litgraph/litgraph/internal/paper"
	"github.com/litgraph/litgraph/internal/pdfmeta"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file.pdf>",
	Short: "Extract metadata from a single PDF without storing it",
	Long: `Extract metadata from a single PDF and print it, without touching
the database. Useful for checking what the heuristics see in a file
before ingesting it.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

// ParseResponse is the extraction result for one file.
type ParseResponse struct {
	Paper    paper.Paper `json:"paper"`
	Degraded bool        `json:"degraded,omitempty"`
	Reason   string      `json:"reason,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	_, cfg := findWorkspace()

	extractCfg := pdfmeta.DefaultConfig()
	extractCfg.MaxPages = cfg.PagesToParse()
	extractCfg.MaxAbstractLen = cfg.AbstractLimit()

	result := pdfmeta.Extract(config.ExpandPath(args[0]), extractCfg)

	if humanOutput {
		printPaperDetail(&result.Record)
		if result.Degraded {
			fmt.Printf("\nDegraded extraction: %s\n", result.Reason)
		}
	} else {
		outputJSON(ParseResponse{
			Paper:    result.Record,
			Degraded: result.Degraded,
			Reason:   result.Reason,
		})
	}

	if result.Degraded {
		// Exit after output so the partial record is still usable by scripts.
		os.Exit(ExitDataError)
	}

	return nil
}

// printPaperDetail prints one paper's full record in human-readable form.
func printPaperDetail(p *paper.Paper) {
	fmt.Printf("Title:      %s\n", truncateString(p.Title, DetailTitleMaxLen))
	fmt.Printf("Authors:    %s\n", paper.FormatAuthors(p.Authors, 10))
	fmt.Printf("Pages:      %d\n", p.PageCount)
	if p.IsClassified() {
		fmt.Printf("Discipline: %s / %s (%s, %.2f)\n", p.Discipline, p.SubField, p.PaperType, p.Confidence)
	}
	if len(p.Keywords) > 0 {
		fmt.Printf("Keywords:   %s\n", truncateString(strings.Join(p.Keywords, ", "), DetailTitleMaxLen))
	}
	if p.Abstract != "" {
		fmt.Printf("Abstract:   %s\n", truncateString(p.Abstract, 300))
	}
	if len(p.References) > 0 {
		fmt.Printf("References: %d entries\n", len(p.References))
	}
}
