package usecase

import (
	"context"
	"strconv"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/ports"
)

type ComputeTriangle struct {
	calc   domain.Calculator
	store  ports.ArtifactStore
	source domain.RunSource
	settings
}

// NewComputeTriangle builds the single-triangle use case. store may be nil
// (history disabled).
func NewComputeTriangle(calc domain.Calculator, store ports.ArtifactStore, opts ...Option) *ComputeTriangle {
	return &ComputeTriangle{
		calc:     calc,
		store:    store,
		source:   domain.SourceCLI,
		settings: newSettings(opts),
	}
}

// WithSource returns a copy that records runs under src.
func (uc *ComputeTriangle) WithSource(src domain.RunSource) *ComputeTriangle {
	cp := *uc
	cp.source = src
	return &cp
}

// Execute computes perimeter and area for t and saves the run when a store
// is configured. A strict-mode rejection is returned as an error together
// with the partial calculation; it is still saved.
func (uc *ComputeTriangle) Execute(ctx context.Context, name string, t domain.Triangle) (domain.Calculation, string, error) {
	if err := ctx.Err(); err != nil {
		return domain.Calculation{}, "", err
	}

	started := uc.now()
	calc, calcErr := uc.calc.Compute(name, t)

	uc.log.Debug("calc.computed",
		"triangle", t.String(),
		"perimeter", calc.Perimeter,
		"area", strconv.FormatFloat(calc.Area, 'g', -1, 64),
		"mode", string(calc.Mode),
		"valid", calc.Valid,
	)
	if calcErr != nil {
		uc.log.Info("calc.rejected", "triangle", t.String(), "err", calcErr)
	}

	if uc.store == nil {
		return calc, "", calcErr
	}

	id, err := uc.store.SaveRun(domain.RunArtifact{
		Source:    uc.source,
		StartedAt: started,
		EndedAt:   uc.now(),
		Results:   []domain.Calculation{calc},
	})
	if err != nil {
		uc.log.Error("runstore.save_failed", "err", err)
		return calc, "", err
	}

	return calc, id, calcErr
}
