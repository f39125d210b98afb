package runstore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/ports"
)

const defaultRunsDir = "runs"
const indexFile = "index.jsonl"

type JSONStore struct {
	rootDir     string
	runsDirName string
	writeIndex  bool
	now         func() time.Time
	log         *slog.Logger
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithLogger receives warnings that do not fail a save, such as a run whose
// index line could not be appended.
func WithLogger(log *slog.Logger) Option {
	return func(s *JSONStore) {
		if log != nil {
			s.log = log
		}
	}
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.Paths.RunsDir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:     root,
		runsDirName: runsDir,
		writeIndex:  false,
		now:         time.Now,
		log:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ArtifactStore = (*JSONStore)(nil)

func (s *JSONStore) dir() string {
	return filepath.Join(s.rootDir, s.runsDirName)
}

func (s *JSONStore) SaveRun(run domain.RunArtifact) (string, error) {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := run.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := run
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}

	namePart := run.BatchName
	if strings.TrimSpace(namePart) == "" && run.BatchPath != "" {
		namePart = strings.TrimSuffix(filepath.Base(run.BatchPath), filepath.Ext(run.BatchPath))
	}
	if strings.TrimSpace(namePart) == "" {
		namePart = string(run.Source)
	}
	slug := slugify(namePart)
	if slug == "" {
		slug = "run"
	}

	base := fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug)
	id := base
	path := filepath.Join(dir, id+".json")
	for n := 2; fileExists(path); n++ {
		id = fmt.Sprintf("%s_%d", base, n)
		path = filepath.Join(dir, id+".json")
	}

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		// The run file is already in place; a missing index line only hides
		// it from history, so the save still succeeds.
		err := s.appendIndex(dir, domain.RunIndexEntry{
			ID:        id,
			File:      filepath.Base(path),
			Source:    toSave.Source,
			BatchName: toSave.BatchName,
			Count:     len(toSave.Results),
			Failures:  toSave.Failures(),
			StartedAt: toSave.StartedAt,
		})
		if err != nil {
			s.log.Warn("runstore.index_append_failed", "run_id", id, "path", filepath.Join(dir, indexFile), "err", err)
		}
	}

	return id, nil
}

func (s *JSONStore) appendIndex(dir string, entry domain.RunIndexEntry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, indexFile)
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ListRuns reads the run index, newest first. A missing index yields no runs.
// Malformed lines are skipped.
func (s *JSONStore) ListRuns() ([]domain.RunIndexEntry, error) {
	indexPath := filepath.Join(s.dir(), indexFile)
	f, err := os.Open(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.RunIndexEntry{}, nil
		}
		return nil, &domain.OpError{
			Op:   "runstore.list",
			Kind: domain.KindExecution,
			Path: indexPath,
			Err:  err,
		}
	}
	defer f.Close()

	var out []domain.RunIndexEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var e domain.RunIndexEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.OpError{
			Op:   "runstore.list",
			Kind: domain.KindExecution,
			Path: indexPath,
			Err:  err,
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
