package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeMigration(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write migration: %v", err)
	}
}

const validBody = "-- +goose Up\nCREATE TABLE t (id TEXT);\n-- +goose Down\nDROP TABLE t;\n"

func TestValidateDirAcceptsWellFormedMigrations(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20250601120000_init_schema.sql", validBody)
	writeMigration(t, dir, "20250614090000_add_reviews.sql", validBody)

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("expected valid dir, got %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_bad_version.sql", validBody)

	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "invalid migration filename") {
		t.Fatalf("expected filename error, got %v", err)
	}
}

func TestValidateDirRejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20250601120000_first.sql", validBody)
	writeMigration(t, dir, "20250601120000_second.sql", validBody)

	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestValidateDirReportsAllProblems(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "bad_name.sql", validBody)
	writeMigration(t, dir, "20250601120000_missing_down.sql", "-- +goose Up\nSELECT 1;\n")

	err := ValidateDir(dir)
	if err == nil {
		t.Fatalf("expected errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "invalid migration filename") || !strings.Contains(msg, "missing") {
		t.Fatalf("expected both problems reported, got %v", err)
	}
}

func TestValidateDirRequiresDir(t *testing.T) {
	if err := ValidateDir(""); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}
