package ports

import "github.com/aalvaropc/heron/internal/domain"

// WorkspaceInitializer scaffolds a new workspace on disk.
type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
