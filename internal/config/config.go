// Package config handles workspace discovery and configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the workspace configuration stored in .litgraph/config.yml.
// Zero fields fall back to the documented defaults via the accessor methods,
// so a minimal config file only needs pdf_root.
type Config struct {
	PDFRoot   string `yaml:"pdf_root"`             // directory scanned for PDFs
	Recursive *bool  `yaml:"recursive,omitempty"`  // scan subdirectories, default true
	CopyFiles *bool  `yaml:"copy_files,omitempty"` // copy (true) or move (false) on organize

	// Extraction bounds
	MaxPages       int `yaml:"max_pages,omitempty"`
	MaxAbstractLen int `yaml:"max_abstract_len,omitempty"`

	// Similarity
	SimilarityThreshold float64 `yaml:"similarity_threshold,omitempty"`
	MaxFeatures         int     `yaml:"max_features,omitempty"`

	// Classifier
	APIBaseURL string `yaml:"api_base_url,omitempty"`
	Model      string `yaml:"model,omitempty"`

	// Output
	ClassifiedDir string `yaml:"classified_dir,omitempty"` // relative to workspace root
	GraphOutput   string `yaml:"graph_output,omitempty"`   // relative to workspace root
}

const (
	// LitgraphDir is the workspace marker directory.
	LitgraphDir = ".litgraph"
	// ConfigFile is the config file name inside LitgraphDir.
	ConfigFile = "config.yml"
	// DBFile is the SQLite database name inside LitgraphDir.
	DBFile = "papers.db"

	DefaultMaxPages            = 5
	DefaultMaxAbstractLen      = 2000
	DefaultSimilarityThreshold = 0.6
	DefaultMaxFeatures         = 1000
	DefaultClassifiedDir       = "classified"
	DefaultGraphOutput         = "knowledge_graph.html"
)

// LitgraphPath returns the path to the .litgraph directory from a root path.
func LitgraphPath(root string) string {
	return filepath.Join(root, LitgraphDir)
}

// ConfigPath returns the path to config.yml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, LitgraphDir, ConfigFile)
}

// DBPath returns the path to the database from a root path.
func DBPath(root string) string {
	return filepath.Join(root, LitgraphDir, DBFile)
}

// IsWorkspace checks if the given path contains a litgraph workspace.
func IsWorkspace(root string) bool {
	info, err := os.Stat(LitgraphPath(root))
	return err == nil && info.IsDir()
}

// FindWorkspace walks up from the given path to find a litgraph workspace.
// Returns the workspace root path or an error if not found.
func FindWorkspace(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsWorkspace(abs) {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a litgraph workspace (no .litgraph directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the workspace at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Accessors with defaults.

func (c *Config) ScanRecursive() bool {
	return c.Recursive == nil || *c.Recursive
}

func (c *Config) OrganizeByCopy() bool {
	return c.CopyFiles == nil || *c.CopyFiles
}

func (c *Config) PagesToParse() int {
	if c.MaxPages > 0 {
		return c.MaxPages
	}
	return DefaultMaxPages
}

func (c *Config) AbstractLimit() int {
	if c.MaxAbstractLen > 0 {
		return c.MaxAbstractLen
	}
	return DefaultMaxAbstractLen
}

func (c *Config) Threshold() float64 {
	if c.SimilarityThreshold > 0 {
		return c.SimilarityThreshold
	}
	return DefaultSimilarityThreshold
}

func (c *Config) Features() int {
	if c.MaxFeatures > 0 {
		return c.MaxFeatures
	}
	return DefaultMaxFeatures
}

func (c *Config) ClassifiedPath(root string) string {
	dir := c.ClassifiedDir
	if dir == "" {
		dir = DefaultClassifiedDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

func (c *Config) GraphOutputPath(root string) string {
	out := c.GraphOutput
	if out == "" {
		out = DefaultGraphOutput
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(root, out)
}
