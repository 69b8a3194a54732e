package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFixture(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "b.pdf"))
	writeFixture(t, filepath.Join(root, "a.PDF"))
	writeFixture(t, filepath.Join(root, "notes.txt"))
	writeFixture(t, filepath.Join(root, "sub", "c.pdf"))

	t.Run("recursive", func(t *testing.T) {
		got, err := Scan(root, true)
		if err != nil {
			t.Fatalf("Scan() error: %v", err)
		}
		want := []string{
			filepath.Join(root, "a.PDF"),
			filepath.Join(root, "b.pdf"),
			filepath.Join(root, "sub", "c.pdf"),
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Scan() = %v, want %v", got, want)
		}
	})

	t.Run("flat", func(t *testing.T) {
		got, err := Scan(root, false)
		if err != nil {
			t.Fatalf("Scan() error: %v", err)
		}
		want := []string{
			filepath.Join(root, "a.PDF"),
			filepath.Join(root, "b.pdf"),
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Scan() = %v, want %v", got, want)
		}
	})
}

func TestScanErrors(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing"), true); err == nil {
		t.Error("Scan() on missing directory returned nil error")
	}

	file := filepath.Join(t.TempDir(), "plain.pdf")
	writeFixture(t, file)
	if _, err := Scan(file, true); err == nil {
		t.Error("Scan() on a file returned nil error")
	}
}

func TestStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sized.pdf")
	if err := os.WriteFile(path, make([]byte, 1024*1024), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := Stat(path)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if info.Filename != "sized.pdf" {
		t.Errorf("Filename = %q", info.Filename)
	}
	if info.SizeMB != 1 {
		t.Errorf("SizeMB = %f, want 1", info.SizeMB)
	}
	if info.Modified.IsZero() {
		t.Error("Modified is zero")
	}
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"paper.pdf", true},
		{"paper.PDF", true},
		{"paper.Pdf", true},
		{"paper.pdfx", false},
		{"paper.txt", false},
		{"pdf", false},
	}
	for _, tt := range tests {
		if got := isPDF(tt.name); got != tt.want {
			t.Errorf("isPDF(%q) = %t, want %t", tt.name, got, tt.want)
		}
	}
}
