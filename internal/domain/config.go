package domain

// Config represents the heron configuration loaded from heron.yaml.
type Config struct {
	Calc    CalcConfig
	Output  OutputConfig
	History HistoryConfig
	Paths   PathsConfig
}

type CalcConfig struct {
	Strict bool
	Mode   SemiPerimeterMode
}

type OutputConfig struct {
	Format string
}

type HistoryConfig struct {
	Enabled bool
}

type PathsConfig struct {
	BatchesDir string
	RunsDir    string
}

// DefaultConfig provides sane defaults if heron.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Calc: CalcConfig{
			Strict: false,
			Mode:   ModeTruncate,
		},
		Output:  OutputConfig{Format: "pretty"},
		History: HistoryConfig{Enabled: true},
		Paths: PathsConfig{
			BatchesDir: "batches",
			RunsDir:    "runs",
		},
	}
}

// Calculator builds a Calculator from the calc section.
func (c Config) Calculator() Calculator {
	return Calculator{Strict: c.Calc.Strict, Mode: c.Calc.Mode}
}
