package yamlbatch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aalvaropc/heron/internal/domain"
	"github.com/aalvaropc/heron/internal/ports"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	batchesDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{batchesDir: "batches"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithBatchesDir(dir string) Option {
	return func(l *Loader) { l.batchesDir = dir }
}

var _ ports.BatchLoader = (*Loader)(nil)

func (l *Loader) LoadBatch(path string) (domain.Batch, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if os.IsNotExist(err) {
			kind = domain.KindNotFound
		}
		return domain.Batch{}, &domain.OpError{
			Op:   "yamlbatch.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var yb yamlBatch
	if err := yaml.Unmarshal(b, &yb); err != nil {
		return domain.Batch{}, &domain.OpError{
			Op:   "yamlbatch.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, yb)
}

func (l *Loader) ListBatches(root string) ([]domain.BatchRef, error) {
	dir := filepath.Join(root, l.batchesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlbatch.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.BatchRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := readBatchName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.BatchRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readBatchName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

type yamlBatch struct {
	Name  string     `yaml:"name"`
	Items []yamlItem `yaml:"items"`
}

// yamlItem accepts either `sides: [ab, bc, ca]` or the three named fields.
type yamlItem struct {
	Name   string `yaml:"name"`
	Sides  []int  `yaml:"sides"`
	SideAB *int   `yaml:"side_ab"`
	SideBC *int   `yaml:"side_bc"`
	SideCA *int   `yaml:"side_ca"`
}

func mapAndValidate(path string, yb yamlBatch) (domain.Batch, error) {
	name := strings.TrimSpace(yb.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(yb.Items) == 0 {
		return domain.Batch{}, invalidField(path, "items", "at least one item is required")
	}

	out := domain.Batch{
		Name:  name,
		Items: make([]domain.BatchItem, 0, len(yb.Items)),
	}

	for i, it := range yb.Items {
		fieldPrefix := fmt.Sprintf("items[%d]", i)

		tri, err := mapSides(it)
		if err != nil {
			return domain.Batch{}, invalidField(path, fieldPrefix+".sides", err.Error())
		}

		itemName := strings.TrimSpace(it.Name)
		if itemName == "" {
			itemName = fmt.Sprintf("item-%d", i+1)
		}

		out.Items = append(out.Items, domain.BatchItem{Name: itemName, Triangle: tri})
	}

	return out, nil
}

func mapSides(it yamlItem) (domain.Triangle, error) {
	named := it.SideAB != nil || it.SideBC != nil || it.SideCA != nil

	switch {
	case len(it.Sides) > 0 && named:
		return domain.Triangle{}, fmt.Errorf("use either sides or side_ab/side_bc/side_ca, not both")
	case len(it.Sides) > 0:
		if len(it.Sides) != 3 {
			return domain.Triangle{}, fmt.Errorf("expected 3 sides, got %d", len(it.Sides))
		}
		return boundedTriangle(it.Sides[0], it.Sides[1], it.Sides[2])
	case named:
		if it.SideAB == nil || it.SideBC == nil || it.SideCA == nil {
			return domain.Triangle{}, fmt.Errorf("side_ab, side_bc and side_ca are all required")
		}
		return boundedTriangle(*it.SideAB, *it.SideBC, *it.SideCA)
	default:
		return domain.Triangle{}, fmt.Errorf("sides are required")
	}
}

func boundedTriangle(ab, bc, ca int) (domain.Triangle, error) {
	t := domain.NewTriangle(ab, bc, ca)
	for _, n := range t.Sides() {
		if !domain.SideInRange(n) {
			return domain.Triangle{}, fmt.Errorf("side %d is out of range (max magnitude %d)", n, domain.MaxSide)
		}
	}
	return t, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlbatch.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
