package usecase

import (
	"context"

	"github.com/aalvaropc/heron/internal/domain"
	ucextract "github.com/aalvaropc/heron/internal/usecase/extract"
)

type ImportJSON struct {
	compute *ComputeTriangle
	settings
}

func NewImportJSON(compute *ComputeTriangle, opts ...Option) *ImportJSON {
	return &ImportJSON{
		compute:  compute.WithSource(domain.SourceJSON),
		settings: newSettings(opts),
	}
}

// Execute pulls the three sides out of doc with JSONPath rules and computes
// the triangle. Extraction results are returned even when extraction fails.
func (uc *ImportJSON) Execute(ctx context.Context, name string, doc []byte, rules ucextract.Rules) (domain.Calculation, []ucextract.Result, string, error) {
	tri, results, err := ucextract.Apply(doc, rules)
	if err != nil {
		uc.log.Info("json.extract_failed", "err", err)
		return domain.Calculation{}, results, "", err
	}

	calc, id, err := uc.compute.Execute(ctx, name, tri)
	return calc, results, id, err
}
