package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/heron/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads heron.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Heron.Calc.Strict != nil {
		cfg.Calc.Strict = *y.Heron.Calc.Strict
	}
	if y.Heron.Calc.SemiPerimeter != "" {
		mode, err := domain.ParseMode(y.Heron.Calc.SemiPerimeter)
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("field heron.calc.semi_perimeter: %w", err),
			}
		}
		cfg.Calc.Mode = mode
	}
	if f := strings.TrimSpace(y.Heron.Output.Format); f != "" {
		cfg.Output.Format = f
	}
	if y.Heron.History.Enabled != nil {
		cfg.History.Enabled = *y.Heron.History.Enabled
	}
	if y.Heron.Paths.BatchesDir != "" {
		cfg.Paths.BatchesDir = y.Heron.Paths.BatchesDir
	}
	if y.Heron.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = y.Heron.Paths.RunsDir
	}

	return cfg, nil
}

type yamlConfig struct {
	Heron struct {
		Calc struct {
			Strict        *bool  `yaml:"strict"`
			SemiPerimeter string `yaml:"semi_perimeter"`
		} `yaml:"calc"`

		Output struct {
			Format string `yaml:"format"`
		} `yaml:"output"`

		History struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"history"`

		Paths struct {
			BatchesDir string `yaml:"batches_dir"`
			RunsDir    string `yaml:"runs_dir"`
		} `yaml:"paths"`
	} `yaml:"heron"`
}
