package ports

import "github.com/aalvaropc/heron/internal/domain"

// ArtifactStore persists calculation runs.
type ArtifactStore interface {
	SaveRun(run domain.RunArtifact) (id string, err error)
	ListRuns() ([]domain.RunIndexEntry, error)
}
