package workspacefinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/ports"
)

// ConfigFileName marks a heron workspace root.
const ConfigFileName = "heron.yaml"

// Finder walks up from a directory looking for the workspace marker file.
type Finder struct {
	ConfigFile string // defaults to "heron.yaml"
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFileName}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

// FindRoot returns the closest ancestor of startDir (inclusive) holding the
// marker file. A file path starts the search at its directory.
func (f *Finder) FindRoot(startDir string) (string, error) {
	const op = "workspacefinder.findroot"

	if startDir == "" {
		return "", &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: errors.New("startDir is empty")}
	}

	dir, err := searchStart(startDir)
	if err != nil {
		return "", &domain.OpError{Op: op, Kind: domain.KindExecution, Path: startDir, Err: err}
	}

	marker := f.ConfigFile
	if marker == "" {
		marker = ConfigFileName
	}

	for d := dir; ; d = filepath.Dir(d) {
		if isFile(filepath.Join(d, marker)) {
			return d, nil
		}
		if filepath.Dir(d) == d {
			break
		}
	}

	return "", &domain.OpError{
		Op:   op,
		Kind: domain.KindNotFound,
		Path: dir,
		Err:  fmt.Errorf("no %s in %s or its parents: %w", marker, dir, domain.ErrNotFound),
	}
}

func searchStart(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	return filepath.Clean(abs), nil
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
