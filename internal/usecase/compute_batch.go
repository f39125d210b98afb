package usecase

import (
	"context"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/ports"
)

type ComputeBatch struct {
	batches ports.BatchLoader
	calc    domain.Calculator
	store   ports.ArtifactStore
	settings
}

func NewComputeBatch(bl ports.BatchLoader, calc domain.Calculator, store ports.ArtifactStore, opts ...Option) *ComputeBatch {
	return &ComputeBatch{
		batches:  bl,
		calc:     calc,
		store:    store,
		settings: newSettings(opts),
	}
}

// Execute loads the batch at path and computes every item in file order.
// Strict-mode rejections are recorded on the item and do not stop the batch.
// On cancellation the partial run is returned with ctx.Err() and not saved.
func (uc *ComputeBatch) Execute(ctx context.Context, path string) (domain.RunArtifact, string, error) {
	b, err := uc.batches.LoadBatch(path)
	if err != nil {
		return domain.RunArtifact{}, "", err
	}

	run := domain.RunArtifact{
		Source:    domain.SourceBatch,
		BatchName: b.Name,
		BatchPath: path,
		StartedAt: uc.now(),
		Results:   make([]domain.Calculation, 0, len(b.Items)),
	}

	uc.log.Info("batch.loaded", "path", path, "name", b.Name, "items", len(b.Items))

	for _, it := range b.Items {
		if err := ctx.Err(); err != nil {
			run.EndedAt = uc.now()
			return run, "", err
		}

		calc, calcErr := uc.calc.Compute(it.Name, it.Triangle)
		if calcErr != nil {
			uc.log.Info("calc.rejected", "item", it.Name, "err", calcErr)
		}
		run.Results = append(run.Results, calc)
	}

	run.EndedAt = uc.now()
	uc.log.Info("batch.computed", "name", b.Name, "items", len(run.Results), "failures", run.Failures())

	if uc.store == nil {
		return run, "", nil
	}

	id, err := uc.store.SaveRun(run)
	if err != nil {
		uc.log.Error("runstore.save_failed", "err", err)
		return run, "", err
	}
	return run, id, nil
}
