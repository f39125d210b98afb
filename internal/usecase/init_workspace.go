package usecase

import (
	"path/filepath"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
	settings
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer, opts ...Option) *InitWorkspace {
	return &InitWorkspace{initializer: initializer, settings: newSettings(opts)}
}

func (uc *InitWorkspace) Execute(root string, force bool) error {
	root = filepath.Clean(root)
	if err := uc.initializer.Init(domain.WorkspaceSpec{Root: root}, force); err != nil {
		uc.log.Error("workspace.init_failed", "root", root, "err", err)
		return err
	}
	uc.log.Info("workspace.initialized", "root", root, "force", force)
	return nil
}
