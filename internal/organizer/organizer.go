// Package organizer archives classified PDFs into discipline folders.
package organizer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Organizer copies or moves PDFs into <base>/<discipline>/<sub_field>/
// directories, created on demand.
type Organizer struct {
	baseDir string
	copy    bool
}

// New creates an organizer rooted at baseDir. With copy false files are
// moved instead of copied.
func New(baseDir string, copy bool) *Organizer {
	return &Organizer{baseDir: baseDir, copy: copy}
}

// Organize archives one PDF under its discipline (and optional sub-field)
// folder and returns the destination path. Name collisions get a numeric
// suffix rather than overwriting.
func (o *Organizer) Organize(sourcePath, discipline, subField string) (string, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		return "", fmt.Errorf("source file: %w", err)
	}
	if discipline == "" {
		discipline = "Other"
	}

	targetDir := filepath.Join(o.baseDir, cleanDirName(discipline))
	if sub := cleanDirName(subField); sub != "" {
		targetDir = filepath.Join(targetDir, sub)
	}
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", targetDir, err)
	}

	targetPath := uniquePath(filepath.Join(targetDir, filepath.Base(sourcePath)))

	if o.copy {
		if err := copyFile(sourcePath, targetPath); err != nil {
			return "", err
		}
	} else {
		if err := movePath(sourcePath, targetPath); err != nil {
			return "", err
		}
	}
	return targetPath, nil
}

// cleanDirName strips characters that are unsafe in directory names.
func cleanDirName(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "", "?", "",
		"\"", "", "<", "", ">", "", "|", "-",
	)
	return strings.TrimSpace(replacer.Replace(name))
}

// uniquePath returns path, or path with a _2, _3, ... suffix if a file
// already exists there.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}

// movePath renames, falling back to copy+remove across filesystems.
func movePath(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
