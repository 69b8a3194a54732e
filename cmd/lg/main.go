// Package main provides the lg CLI entry point.
package main

import (
	"os"

	"github.com/litgraph/litgraph/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lg",
	Short: "Literature knowledge-graph builder",
	Long: `lg ingests PDF papers, extracts bibliographic metadata, classifies
each paper into a discipline taxonomy, and builds a knowledge graph of
authorship, topical similarity, and discipline relations.

State lives in a .litgraph/ workspace directory (YAML config plus a
SQLite database). All commands output JSON by default for easy
integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getStartDir returns the directory workspace discovery starts from,
// or exits with an error.
func getStartDir() (string, int) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}

	// LITGRAPH_ROOT overrides the working directory
	if root := os.Getenv("LITGRAPH_ROOT"); root != "" {
		cwd = root
	}

	return cwd, 0
}

// findWorkspace locates the enclosing workspace and loads its config,
// exiting with ExitConfigError when there is none.
func findWorkspace() (string, *config.Config) {
	start, exitCode := getStartDir()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	root, err := config.FindWorkspace(start)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	return root, cfg
}
