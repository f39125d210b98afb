package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureGitignore_CreatesFile(t *testing.T) {
	tmp := t.TempDir()

	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(tmp, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}

	s := string(b)
	for _, w := range []string{"# heron", "runs/", ".heron/"} {
		if !strings.Contains(s, w) {
			t.Fatalf("expected .gitignore to contain %q, got:\n%s", w, s)
		}
	}
}

func TestEnsureGitignore_AppendsMissingEntries(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, ".gitignore")

	existing := "node_modules/\n# heron\nruns/"
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}

	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	s := string(b)

	if !strings.Contains(s, "node_modules/") {
		t.Fatalf("expected existing content preserved, got:\n%s", s)
	}
	if strings.Count(s, "# heron") != 1 {
		t.Fatalf("expected 1 header, got:\n%s", s)
	}
	if strings.Count(s, "runs/") != 1 {
		t.Fatalf("expected runs/ not duplicated, got:\n%s", s)
	}
	if !strings.Contains(s, ".heron/") {
		t.Fatalf("expected .heron/ appended, got:\n%s", s)
	}
}

func TestEnsureGitignore_NoChangeWhenComplete(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, ".gitignore")

	existing := "# heron\nruns/\n.heron/\n"
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}
	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, _ := os.ReadFile(path)
	if string(b) != existing {
		t.Fatalf("expected file untouched, got:\n%s", string(b))
	}
}
