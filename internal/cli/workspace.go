package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/infra/logger"
	"github.com/aalvaropc/heron/internal/infra/runstore"
	"github.com/aalvaropc/heron/internal/infra/workspacefinder"
	"github.com/aalvaropc/heron/internal/infra/yamlbatch"
	"github.com/aalvaropc/heron/internal/ports"
)

var locator ports.WorkspaceLocator = workspacefinder.NewFinder()

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	workspace string
	debug     bool
}

type workspaceCtx struct {
	root  string // empty when running outside a workspace
	found bool
	cfg   domain.Config

	batches ports.BatchLoader
	store   ports.ArtifactStore // nil when history is disabled

	log     *slog.Logger
	cleanup func() error
}

func (ws *workspaceCtx) close() {
	if ws != nil && ws.cleanup != nil {
		_ = ws.cleanup()
	}
}

// openWorkspace resolves the workspace (explicit flag or upward search),
// loads heron.yaml over defaults and starts logging. Outside a workspace the
// defaults apply and nothing is written to disk unless --debug is set.
func openWorkspace(g *globalFlags) (*workspaceCtx, error) {
	root, found, err := resolveWorkspaceRoot(g.workspace)
	if err != nil {
		return nil, err
	}

	ws := &workspaceCtx{
		root:  root,
		found: found,
		cfg:   domain.DefaultConfig(),
	}

	if found {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return nil, err
		}
		ws.cfg = cfg
	}

	logRoot := root
	if !found {
		logRoot = ""
		if g.debug {
			logRoot, _ = os.Getwd()
		}
	}
	if logRoot != "" {
		cleanup, _ := logger.Setup(logger.Config{Root: logRoot, Debug: g.debug})
		ws.cleanup = cleanup
	}
	ws.log = logger.L()

	ws.batches = yamlbatch.NewLoader(yamlbatch.WithBatchesDir(ws.cfg.Paths.BatchesDir))
	if found && ws.cfg.History.Enabled {
		ws.store = runstore.NewJSONStore(root, ws.cfg, runstore.WithIndex(true), runstore.WithLogger(ws.log))
	}

	return ws, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (root string, found bool, err error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", false, fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, true, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get working directory: %w", err)
	}

	r, ferr := locator.FindRoot(wd)
	if ferr != nil {
		if domain.IsKind(ferr, domain.KindNotFound) {
			return wd, false, nil
		}
		return "", false, ferr
	}
	return r, true, nil
}

// resolveBatchPath accepts a path, a file name under the batches dir, a
// bare name ("demo" -> demo.yaml/demo.yml) or a batch's name field.
func resolveBatchPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", domain.InvalidInput("cli.batch", "batch file is required (use --file or -f)")
	}

	if looksLikePath(in) || (!ws.found && hasYAMLExt(in)) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	batchesDir := filepath.Join(ws.root, ws.cfg.Paths.BatchesDir)

	if hasYAMLExt(in) {
		p := filepath.Join(batchesDir, in)
		if fileExists(p) {
			return p, nil
		}
		if p2 := filepath.Join(ws.root, in); fileExists(p2) {
			return p2, nil
		}
	}

	p1 := filepath.Join(batchesDir, in+".yaml")
	if fileExists(p1) {
		return p1, nil
	}
	p2 := filepath.Join(batchesDir, in+".yml")
	if fileExists(p2) {
		return p2, nil
	}

	// As a last resort: match by batch "name" field.
	refs, err := ws.batches.ListBatches(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", &domain.OpError{
		Op:   "cli.resolve_batch",
		Kind: domain.KindNotFound,
		Path: batchesDir,
		Err:  fmt.Errorf("batch %q not found: %w", in, domain.ErrNotFound),
	}
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
