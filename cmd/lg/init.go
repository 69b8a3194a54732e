package main

import (
	"fmt"
	"os"

	"github.com/litgraph/litgraph/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("pdf-root", "", "Directory scanned for PDFs (defaults to the workspace root)")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new litgraph workspace",
	Long: `Initialize a new litgraph workspace in the current directory.

Creates:
  .litgraph/
  ├── config.yml      # Default config
  └── papers.db       # Created on first ingest`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getStartDir()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsWorkspace(root) {
		exitWithError(ExitError, "directory already contains a litgraph workspace")
	}

	if err := os.MkdirAll(config.LitgraphPath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .litgraph directory: %v", err)
	}

	pdfRoot, _ := cmd.Flags().GetString("pdf-root")
	if pdfRoot == "" {
		pdfRoot = root
	}
	pdfRoot = config.ExpandPath(pdfRoot)
	if info, err := os.Stat(pdfRoot); err != nil || !info.IsDir() {
		exitWithError(ExitConfigError, "pdf-root is not a directory: %s", pdfRoot)
	}

	cfg := &config.Config{PDFRoot: pdfRoot}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "creating config.yml: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized litgraph workspace in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
