package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "stackctl.db"))
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestImportMissingPath(t *testing.T) {
	out, err := execute(t, "import", "--path", filepath.Join(t.TempDir(), "absent.zip"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "imported 0 questions") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestTagsOnEmptyCorpus(t *testing.T) {
	out, err := execute(t, "tags", "--limit", "5")
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if !strings.HasPrefix(out, "TAG") {
		t.Errorf("expected header, got %q", out)
	}
}

func TestTagsInvalidLimit(t *testing.T) {
	defer func() { tagsLimit = 50 }()
	if _, err := execute(t, "tags", "--limit", "0"); err == nil {
		t.Error("expected error for limit 0")
	}
}

func TestDeleteQuestion(t *testing.T) {
	if _, err := execute(t, "delete-question", "abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}

	_, err := execute(t, "delete-question", "42")
	if err == nil || !strings.Contains(err.Error(), "question 42 not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}
