package fsworkspace

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/ports"
)

// Directories every workspace starts with, relative to its root.
var layoutDirs = []string{
	"batches",
	"runs",
	filepath.Join(".heron", "logs"),
}

// Lines kept out of version control: saved runs and logs.
const gitignoreHeader = "# heron"

var gitignoreEntries = []string{"runs/", ".heron/"}

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init creates the workspace layout under spec.Root and copies heron.yaml
// plus the example batch. Existing files are kept unless force is set.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	for _, rel := range layoutDirs {
		d := filepath.Join(root, rel)
		if err := os.MkdirAll(d, 0o755); err != nil {
			return &domain.OpError{Op: "fsworkspace.mkdir", Kind: domain.KindExecution, Path: d, Err: err}
		}
	}

	if err := ensureGitignore(root); err != nil {
		return &domain.OpError{Op: "fsworkspace.gitignore", Kind: domain.KindExecution, Path: root, Err: err}
	}

	if err := copyTemplates(root, force); err != nil {
		return &domain.OpError{Op: "fsworkspace.templates", Kind: domain.KindExecution, Path: root, Err: err}
	}
	return nil
}

func copyTemplates(root string, force bool) error {
	const base = "templates"

	return fs.WalkDir(templatesFS, base, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel := strings.TrimPrefix(p, base+"/")
		dst := filepath.Join(root, filepath.FromSlash(rel))
		if !force && exists(dst) {
			return nil
		}

		b, err := fs.ReadFile(templatesFS, path.Clean(p))
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		return os.WriteFile(dst, b, 0o644)
	})
}

// ensureGitignore adds the heron block to .gitignore, appending only the
// entries that are not already listed.
func ensureGitignore(root string) error {
	p := filepath.Join(root, ".gitignore")

	b, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		block := append([]string{gitignoreHeader}, gitignoreEntries...)
		return os.WriteFile(p, []byte(strings.Join(block, "\n")+"\n"), 0o644)
	}
	if err != nil {
		return err
	}

	existing := string(b)
	listed := lineSet(existing)

	var add []string
	if !listed[gitignoreHeader] {
		add = append(add, gitignoreHeader)
	}
	for _, e := range gitignoreEntries {
		if !listed[e] {
			add = append(add, e)
		}
	}
	if len(add) == 0 || (len(add) == 1 && add[0] == gitignoreHeader) {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	for _, line := range add {
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return os.WriteFile(p, []byte(out.String()), 0o644)
}

func lineSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			set[t] = true
		}
	}
	return set
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
