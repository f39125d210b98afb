package ports

import "github.com/aalvaropc/heron/internal/domain"

// BatchLoader loads triangle batches from a source (e.g., filesystem).
type BatchLoader interface {
	LoadBatch(path string) (domain.Batch, error)
	ListBatches(root string) ([]domain.BatchRef, error)
}
