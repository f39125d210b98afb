package runstore

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/heron/internal/domain"
)

func newTestStore(t *testing.T, opts ...Option) (*JSONStore, string) {
	t.Helper()
	tmp := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.Paths.RunsDir = "runs"
	return NewJSONStore(tmp, cfg, opts...), tmp
}

func demoRun(start time.Time) domain.RunArtifact {
	right, _ := domain.Calculator{}.Compute("right", domain.NewTriangle(3, 4, 5))
	flat, _ := domain.Calculator{}.Compute("flat", domain.NewTriangle(1, 1, 5))
	return domain.RunArtifact{
		Source:    domain.SourceBatch,
		BatchName: "Demo Batch",
		BatchPath: "batches/demo.yaml",
		StartedAt: start,
		EndedAt:   start.Add(time.Second),
		Results:   []domain.Calculation{right, flat},
	}
}

func TestSaveRun_CreatesJSONFile(t *testing.T) {
	store, tmp := newTestStore(t)

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id, err := store.SaveRun(demoRun(start))
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	wantFile := filepath.Join(tmp, "runs", "20260203T101112Z_demo-batch.json")
	b, err := os.ReadFile(wantFile)
	if err != nil {
		t.Fatalf("expected file at %s, err=%v (id=%s)", wantFile, err, id)
	}

	var decoded domain.RunArtifact
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.BatchName != "Demo Batch" {
		t.Fatalf("expected batch name, got=%q", decoded.BatchName)
	}
	if len(decoded.Results) != 2 {
		t.Fatalf("expected 2 results, got=%d", len(decoded.Results))
	}
	if decoded.Results[0].Area != 6.0 {
		t.Fatalf("expected area=6, got=%v", decoded.Results[0].Area)
	}
	if !math.IsNaN(decoded.Results[1].Area) {
		t.Fatalf("expected NaN area to round-trip, got=%v", decoded.Results[1].Area)
	}
}

func TestSaveRun_SlugFallsBackToSource(t *testing.T) {
	store, tmp := newTestStore(t)

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	run := domain.RunArtifact{Source: domain.SourceCLI, StartedAt: start}
	if _, err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmp, "runs", "20260203T101112Z_cli.json")); err != nil {
		t.Fatalf("expected cli-slugged file: %v", err)
	}
}

func TestSaveRun_UsesClockWhenStartMissing(t *testing.T) {
	now := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	store, _ := newTestStore(t, WithNow(func() time.Time { return now }))

	id, err := store.SaveRun(domain.RunArtifact{Source: domain.SourceTUI})
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if id != "20260506T070809Z_tui" {
		t.Fatalf("unexpected id %q", id)
	}
}

func TestSaveRun_UsesUniqueFilenameOnCollision(t *testing.T) {
	store, tmp := newTestStore(t)

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id1, err := store.SaveRun(demoRun(start))
	if err != nil {
		t.Fatalf("SaveRun #1 error: %v", err)
	}
	id2, err := store.SaveRun(demoRun(start))
	if err != nil {
		t.Fatalf("SaveRun #2 error: %v", err)
	}
	if id2 != id1+"_2" {
		t.Fatalf("expected second id %q, got %q", id1+"_2", id2)
	}
	for _, id := range []string{id1, id2} {
		if _, err := os.Stat(filepath.Join(tmp, "runs", id+".json")); err != nil {
			t.Fatalf("expected file for %s: %v", id, err)
		}
	}
}

func TestSaveRun_LogsIndexFailure(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	store, tmp := newTestStore(t, WithIndex(true), WithLogger(log))

	// A directory where the index file belongs makes every append fail.
	if err := os.MkdirAll(filepath.Join(tmp, "runs", indexFile), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	id, err := store.SaveRun(demoRun(time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("expected the run to be saved, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "runs", id+".json")); err != nil {
		t.Fatalf("expected run file on disk: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "runstore.index_append_failed") || !strings.Contains(out, id) {
		t.Fatalf("expected index failure to be logged with the run id, got %q", out)
	}
}

func TestSaveRun_IndexWritten(t *testing.T) {
	var buf bytes.Buffer
	store, tmp := newTestStore(t, WithIndex(true), WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	if _, err := store.SaveRun(demoRun(time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "runs", indexFile)); err != nil {
		t.Fatalf("expected index file: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no warnings, got %q", buf.String())
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	store, _ := newTestStore(t, WithIndex(true))

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	if _, err := store.SaveRun(demoRun(older)); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if _, err := store.SaveRun(demoRun(newer)); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	runs, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if !runs[0].StartedAt.Equal(newer) {
		t.Fatalf("expected newest first, got %v", runs[0].StartedAt)
	}
	if runs[0].Count != 2 || runs[0].Failures != 1 {
		t.Fatalf("expected count=2 failures=1, got %+v", runs[0])
	}
}

func TestListRuns_NoIndex(t *testing.T) {
	store, _ := newTestStore(t)

	runs, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns error: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}
}

func TestListRuns_SkipsMalformedLines(t *testing.T) {
	store, tmp := newTestStore(t, WithIndex(true))
	if _, err := store.SaveRun(demoRun(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	f, err := os.OpenFile(filepath.Join(tmp, "runs", "index.jsonl"), os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	_, _ = f.WriteString("{broken\n\n")
	_ = f.Close()

	runs, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Demo Batch", "demo-batch"},
		{"  roof__trusses..v2 ", "roof-trusses-v2"},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := slugify(c.in); got != c.want {
			t.Errorf("slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
