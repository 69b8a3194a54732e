package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/litgraph/litgraph/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  lg config                              # Show all config
  lg config pdf-root                     # Get specific value
  lg config pdf-root ~/papers            # Set value
  lg config similarity-threshold 0.55    # Set similarity threshold

Keys:
  pdf-root              Directory scanned for PDFs
  recursive             Scan subdirectories (true/false)
  copy-files            Copy instead of move when organizing (true/false)
  max-pages             Pages read for metadata extraction
  max-abstract-len      Abstract truncation length
  similarity-threshold  Minimum cosine similarity for an edge (0-1)
  max-features          Vocabulary cap for similarity vectors
  api-base-url          OpenAI-compatible API base URL
  model                 Classifier model name
  classified-dir        Archive directory, relative to the workspace root
  graph-output          Graph HTML path, relative to the workspace root`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for showing the full config.
type ConfigResponse struct {
	PDFRoot             string  `json:"pdf_root"`
	Recursive           bool    `json:"recursive"`
	CopyFiles           bool    `json:"copy_files"`
	MaxPages            int     `json:"max_pages"`
	MaxAbstractLen      int     `json:"max_abstract_len"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	MaxFeatures         int     `json:"max_features"`
	APIBaseURL          string  `json:"api_base_url,omitempty"`
	Model               string  `json:"model,omitempty"`
	ClassifiedDir       string  `json:"classified_dir"`
	GraphOutput         string  `json:"graph_output"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	root, cfg := findWorkspace()

	if len(args) == 0 {
		showConfig(cfg)
		return nil
	}

	key := normalizeKey(args[0])

	if len(args) == 1 {
		value, ok := configValue(cfg, key)
		if !ok {
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		return nil
	}

	value := args[1]
	if err := setConfigValue(cfg, key, value); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}

	return nil
}

func showConfig(cfg *config.Config) {
	resp := ConfigResponse{
		PDFRoot:             cfg.PDFRoot,
		Recursive:           cfg.ScanRecursive(),
		CopyFiles:           cfg.OrganizeByCopy(),
		MaxPages:            cfg.PagesToParse(),
		MaxAbstractLen:      cfg.AbstractLimit(),
		SimilarityThreshold: cfg.Threshold(),
		MaxFeatures:         cfg.Features(),
		APIBaseURL:          cfg.APIBaseURL,
		Model:               cfg.Model,
		ClassifiedDir:       cfg.ClassifiedDir,
		GraphOutput:         cfg.GraphOutput,
	}
	if resp.ClassifiedDir == "" {
		resp.ClassifiedDir = config.DefaultClassifiedDir
	}
	if resp.GraphOutput == "" {
		resp.GraphOutput = config.DefaultGraphOutput
	}

	if humanOutput {
		fmt.Printf("pdf-root:              %s\n", resp.PDFRoot)
		fmt.Printf("recursive:             %t\n", resp.Recursive)
		fmt.Printf("copy-files:            %t\n", resp.CopyFiles)
		fmt.Printf("max-pages:             %d\n", resp.MaxPages)
		fmt.Printf("max-abstract-len:      %d\n", resp.MaxAbstractLen)
		fmt.Printf("similarity-threshold:  %g\n", resp.SimilarityThreshold)
		fmt.Printf("max-features:          %d\n", resp.MaxFeatures)
		fmt.Printf("api-base-url:          %s\n", resp.APIBaseURL)
		fmt.Printf("model:                 %s\n", resp.Model)
		fmt.Printf("classified-dir:        %s\n", resp.ClassifiedDir)
		fmt.Printf("graph-output:          %s\n", resp.GraphOutput)
	} else {
		outputJSON(resp)
	}
}

func configValue(cfg *config.Config, key string) (string, bool) {
	switch key {
	case "pdf-root":
		return cfg.PDFRoot, true
	case "recursive":
		return strconv.FormatBool(cfg.ScanRecursive()), true
	case "copy-files":
		return strconv.FormatBool(cfg.OrganizeByCopy()), true
	case "max-pages":
		return strconv.Itoa(cfg.PagesToParse()), true
	case "max-abstract-len":
		return strconv.Itoa(cfg.AbstractLimit()), true
	case "similarity-threshold":
		return strconv.FormatFloat(cfg.Threshold(), 'g', -1, 64), true
	case "max-features":
		return strconv.Itoa(cfg.Features()), true
	case "api-base-url":
		return cfg.APIBaseURL, true
	case "model":
		return cfg.Model, true
	case "classified-dir":
		return cfg.ClassifiedDir, true
	case "graph-output":
		return cfg.GraphOutput, true
	default:
		return "", false
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "pdf-root":
		expanded := config.ExpandPath(value)
		info, err := os.Stat(expanded)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("pdf-root is not a directory: %s", expanded)
		}
		cfg.PDFRoot = expanded
	case "recursive":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("recursive must be true or false: %s", value)
		}
		cfg.Recursive = &b
	case "copy-files":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("copy-files must be true or false: %s", value)
		}
		cfg.CopyFiles = &b
	case "max-pages":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("max-pages must be a positive integer: %s", value)
		}
		cfg.MaxPages = n
	case "max-abstract-len":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("max-abstract-len must be a positive integer: %s", value)
		}
		cfg.MaxAbstractLen = n
	case "similarity-threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("similarity-threshold must be between 0 and 1: %s", value)
		}
		cfg.SimilarityThreshold = f
	case "max-features":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("max-features must be a positive integer: %s", value)
		}
		cfg.MaxFeatures = n
	case "api-base-url":
		cfg.APIBaseURL = value
	case "model":
		cfg.Model = value
	case "classified-dir":
		cfg.ClassifiedDir = value
	case "graph-output":
		cfg.GraphOutput = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// normalizeKey converts key formats (pdf-root, pdf_root) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
