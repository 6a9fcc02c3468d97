package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "spanish.csv")
	if err := os.WriteFile(outputFile, []byte("hola,hello\n"), 0644); err != nil {
		t.Fatalf("Failed to create output file: %v", err)
	}

	archivedPath, err := ArchiveFile(outputFile)
	if err != nil {
		t.Fatalf("ArchiveFile failed: %v", err)
	}

	// Check that the output file no longer exists
	if _, err := os.Stat(outputFile); !os.IsNotExist(err) {
		t.Error("Output file still exists after archiving")
	}

	if filepath.Dir(archivedPath) != filepath.Join(tmpDir, "archive") {
		t.Errorf("Archived to unexpected directory: %s", archivedPath)
	}

	// Verify name format (should be spanish-YYYYMMDD-HHMMSS.csv)
	name := filepath.Base(archivedPath)
	if !strings.HasPrefix(name, "spanish-") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("Invalid archive name format: %s", name)
	}

	content, err := os.ReadFile(archivedPath)
	if err != nil {
		t.Fatalf("Failed to read archived file: %v", err)
	}
	if string(content) != "hola,hello\n" {
		t.Errorf("Archived content = %q", content)
	}
}

func TestArchiveFile_NonExistentFile(t *testing.T) {
	archivedPath, err := ArchiveFile(filepath.Join(t.TempDir(), "missing.csv"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got: %v", err)
	}
	if archivedPath != "" {
		t.Errorf("Expected empty archive path, got %s", archivedPath)
	}
}

func TestArchiveFile_Directory(t *testing.T) {
	_, err := ArchiveFile(t.TempDir())
	if err == nil {
		t.Fatal("Expected error when archiving a directory")
	}
	if !strings.Contains(err.Error(), "refusing") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestArchiveFile_MultipleArchives(t *testing.T) {
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "deck.db")

	// Archive twice in quick succession; names must not collide
	for i := 0; i < 2; i++ {
		if err := os.WriteFile(outputFile, []byte{byte(i)}, 0644); err != nil {
			t.Fatalf("Failed to create output file: %v", err)
		}
		if _, err := ArchiveFile(outputFile); err != nil {
			t.Fatalf("ArchiveFile failed on iteration %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, "archive"))
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries in archive directory, got %d", len(entries))
	}
}

func TestUniqueArchivePath(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

	first := uniqueArchivePath(dir, "spanish.csv", now)
	if want := filepath.Join(dir, "spanish-20261019-083000.csv"); first != want {
		t.Fatalf("uniqueArchivePath() = %s, want %s", first, want)
	}

	if err := os.WriteFile(first, nil, 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	second := uniqueArchivePath(dir, "spanish.csv", now)
	if want := filepath.Join(dir, "spanish-20261019-083000_1.csv"); second != want {
		t.Errorf("uniqueArchivePath() = %s, want %s", second, want)
	}
}
