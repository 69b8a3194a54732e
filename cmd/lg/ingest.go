package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/litgraph/litgraph/internal/classify"
	"github.com/litgraph/litgraph/internal/config"
	"github.com/litgraph/litgraph/internal/organizer"
	"github.com/litgraph/litgraph/internal/pdfmeta"
	"github.com/litgraph/litgraph/internal/pipeline"
	"github.com/litgraph/litgraph/internal/scanner"
	"github.com/litgraph/litgraph/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().Bool("no-classify", false, "Skip the discipline classifier")
	ingestCmd.Flags().Bool("no-organize", false, "Skip archiving files into discipline folders")
	ingestCmd.Flags().Bool("quiet", false, "Suppress per-file progress on stderr")
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [directory]",
	Short: "Scan, extract, classify, and store PDF papers",
	Long: `Scan the configured pdf-root (or the given directory) for PDFs and
run each one through metadata extraction, discipline classification,
and storage. Re-ingesting a path updates its existing record.

Classification needs LITGRAPH_API_KEY in the environment or a .env
file in the workspace root. A classifier outage never stalls the
batch: affected papers get the default low-confidence classification.

Progress goes to stderr; the batch summary goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	root, cfg := findWorkspace()

	// .env in the workspace root supplies LITGRAPH_API_KEY when present.
	godotenv.Load(filepath.Join(root, ".env"))

	scanRoot := cfg.PDFRoot
	if len(args) == 1 {
		scanRoot = config.ExpandPath(args[0])
	}
	if scanRoot == "" {
		exitWithError(ExitConfigError, "no pdf-root configured; run lg config pdf-root <dir> or pass a directory")
	}

	paths, err := scanner.Scan(scanRoot, cfg.ScanRecursive())
	if err != nil {
		exitWithError(ExitError, "scanning %s: %v", scanRoot, err)
	}
	if len(paths) == 0 {
		if humanOutput {
			fmt.Printf("No PDF files found under %s\n", scanRoot)
		} else {
			outputJSON(pipeline.Summary{})
		}
		return nil
	}

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	noClassify, _ := cmd.Flags().GetBool("no-classify")
	noOrganize, _ := cmd.Flags().GetBool("no-organize")
	quiet, _ := cmd.Flags().GetBool("quiet")

	extractCfg := pdfmeta.DefaultConfig()
	extractCfg.MaxPages = cfg.PagesToParse()
	extractCfg.MaxAbstractLen = cfg.AbstractLimit()

	pl := &pipeline.Pipeline{
		Extract: func(path string) pdfmeta.Result {
			return pdfmeta.Extract(path, extractCfg)
		},
		Store: db,
	}
	if !noClassify {
		opts := []classify.Option{}
		if cfg.APIBaseURL != "" {
			opts = append(opts, classify.WithBaseURL(cfg.APIBaseURL))
		}
		if cfg.Model != "" {
			opts = append(opts, classify.WithModel(cfg.Model))
		}
		pl.Classifier = classify.NewClient(opts...)
	}
	if !noOrganize {
		pl.Organizer = organizer.New(cfg.ClassifiedPath(root), cfg.OrganizeByCopy())
	}
	if !quiet {
		pl.Logf = progressf
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := pl.Run(ctx, paths)
	if err != nil {
		// Interrupted mid-batch; report what completed before exiting.
		reportSummary(summary)
		exitWithError(ExitError, "ingest interrupted: %v", err)
	}

	reportSummary(summary)
	return nil
}

func reportSummary(summary pipeline.Summary) {
	if humanOutput {
		fmt.Printf("Ingested %d/%d paper(s)\n", summary.Succeeded, summary.Total)
		for _, f := range summary.Failures {
			fmt.Printf("  failed: %s: %s\n", f.Path, f.Reason)
		}
	} else {
		outputJSON(summary)
	}
}
