package main

import (
	"fmt"

	"github.com/litgraph/litgraph/internal/config"
	"github.com/litgraph/litgraph/internal/scanner"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().Bool("paths-only", false, "List file paths without size or modification time")
}

var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "List PDF files under a directory",
	Long: `List PDF files under a directory without ingesting them.

Defaults to the configured pdf-root; pass a directory to scan elsewhere.
Recursion follows the workspace config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

// ScanResponse lists discovered PDF files.
type ScanResponse struct {
	Root  string             `json:"root"`
	Count int                `json:"count"`
	Files []scanner.FileInfo `json:"files"`
}

func runScan(cmd *cobra.Command, args []string) error {
	_, cfg := findWorkspace()

	root := cfg.PDFRoot
	if len(args) == 1 {
		root = config.ExpandPath(args[0])
	}
	if root == "" {
		exitWithError(ExitConfigError, "no pdf-root configured; run lg config pdf-root <dir> or pass a directory")
	}

	paths, err := scanner.Scan(root, cfg.ScanRecursive())
	if err != nil {
		exitWithError(ExitError, "scanning %s: %v", root, err)
	}

	pathsOnly, _ := cmd.Flags().GetBool("paths-only")

	files := make([]scanner.FileInfo, 0, len(paths))
	for _, p := range paths {
		if pathsOnly {
			files = append(files, scanner.FileInfo{Path: p})
			continue
		}
		info, err := scanner.Stat(p)
		if err != nil {
			// File disappeared between listing and stat; skip it.
			continue
		}
		files = append(files, info)
	}

	if humanOutput {
		for _, f := range files {
			if pathsOnly {
				fmt.Println(f.Path)
			} else {
				fmt.Printf("%8.2f MB  %s\n", f.SizeMB, f.Path)
			}
		}
		fmt.Printf("%d PDF file(s) under %s\n", len(files), root)
	} else {
		outputJSON(ScanResponse{Root: root, Count: len(files), Files: files})
	}

	return nil
}
