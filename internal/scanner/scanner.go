// Package scanner enumerates PDF files under a source directory.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo describes one discovered PDF file.
type FileInfo struct {
	Path     string    `json:"path"`
	Filename string    `json:"filename"`
	SizeMB   float64   `json:"size_mb"`
	Modified time.Time `json:"modified"`
}

// Scan returns the paths of all .pdf files under root, sorted for
// deterministic processing order. With recursive false only the top-level
// directory is examined.
func Scan(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", root)
	}

	var paths []string
	if recursive {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isPDF(d.Name()) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", root, err)
		}
		for _, e := range entries {
			if !e.IsDir() && isPDF(e.Name()) {
				paths = append(paths, filepath.Join(root, e.Name()))
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// Stat returns display information for a discovered PDF.
func Stat(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return FileInfo{
		Path:     path,
		Filename: filepath.Base(path),
		SizeMB:   float64(info.Size()) / (1024 * 1024),
		Modified: info.ModTime(),
	}, nil
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
