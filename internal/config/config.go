package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jmrivas/phasecrit/internal/sector"
	"github.com/jmrivas/phasecrit/internal/solver"
	"github.com/jmrivas/phasecrit/internal/sweep"
)

type Config struct {
	Axes     []AxisConfig    `yaml:"axes"`
	Initials []InitialConfig `yaml:"initials"`
	Solver   SolverConfig    `yaml:"solver"`
	Policy   PolicyConfig    `yaml:"policy"`
	Workers  int             `yaml:"workers"`
	Paths    Paths           `yaml:"paths"`
}

type AxisConfig struct {
	Name   string    `yaml:"name"`
	Values []float64 `yaml:"values"`
}

type InitialConfig struct {
	Phi    float64 `yaml:"phi"`
	PhiDot float64 `yaml:"phidot"`
}

type SolverConfig struct {
	AStart float64 `yaml:"a_start"`
	AEnd   float64 `yaml:"a_end"`
	Points int     `yaml:"points"`
	Tol    float64 `yaml:"tol"`
	H0     float64 `yaml:"h0"`
}

type PolicyConfig struct {
	Kind       string  `yaml:"kind"` // threeway | twoway
	TailFrac   float64 `yaml:"tail_frac"`
	MinSamples int     `yaml:"min_samples"`
	Period     float64 `yaml:"period"`
	StdTol     float64 `yaml:"std_tol"`
	RefA       float64 `yaml:"ref_a"`
	BandA      float64 `yaml:"band_a"`
	RefB       float64 `yaml:"ref_b"`
	BandB      float64 `yaml:"band_b"`
	MeanCutoff float64 `yaml:"mean_cutoff"`
}

// Paths makes every output location explicit; there is no ambient results
// directory.
type Paths struct {
	ResultsDir     string `yaml:"results_dir"`
	ArchiveBackend string `yaml:"archive_backend"` // none | dir | sqlite
	ArchivePath    string `yaml:"archive_path"`
}

func DefaultConfig() *Config {
	tw := sector.DefaultThreeWay()
	return &Config{
		Axes: []AxisConfig{
			{Name: "m_phi", Values: []float64{0.2, 0.5, 1.0, 2.0, 3.0}},
			{Name: "k_rot", Values: []float64{0.0, 0.1, 0.2, 0.5}},
			{Name: "q", Values: []float64{1.0}},
		},
		Initials: []InitialConfig{
			{Phi: 0.01},
			{Phi: math.Pi * 0.5},
			{Phi: math.Pi * 0.9},
		},
		Solver: SolverConfig{
			AStart: 1e-3,
			AEnd:   10.0,
			Points: 2000,
			Tol:    1e-7,
			H0:     1.0,
		},
		Policy: PolicyConfig{
			Kind:       "threeway",
			TailFrac:   tw.TailFrac,
			MinSamples: tw.MinSamples,
			Period:     tw.Period,
			StdTol:     tw.StdTol,
			RefA:       tw.RefA,
			BandA:      tw.BandA,
			RefB:       tw.RefB,
			BandB:      tw.BandB,
		},
		Workers: 1,
		Paths: Paths{
			ResultsDir:     "results_phase_sectors",
			ArchiveBackend: "dir",
			ArchivePath:    "results_phase_sectors/trajectories",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate fails fast on caller mistakes, before any integration work.
func (c *Config) Validate() error {
	if len(c.Axes) == 0 {
		return fmt.Errorf("config: no parameter axes")
	}
	for _, ax := range c.Axes {
		if ax.Name == "" {
			return fmt.Errorf("config: axis without a name")
		}
		if len(ax.Values) == 0 {
			return fmt.Errorf("config: axis %q has no values", ax.Name)
		}
	}
	if len(c.Initials) == 0 {
		return fmt.Errorf("config: no initial-condition presets")
	}
	if c.Solver.Points < 2 {
		return fmt.Errorf("config: solver points must be at least 2, got %d", c.Solver.Points)
	}
	if c.Solver.AStart <= 0 || c.Solver.AEnd <= c.Solver.AStart {
		return fmt.Errorf("config: invalid scale-factor window [%g, %g]", c.Solver.AStart, c.Solver.AEnd)
	}
	if c.Solver.Tol <= 0 {
		return fmt.Errorf("config: solver tolerance must be positive")
	}
	switch c.Policy.Kind {
	case "threeway", "twoway":
	default:
		return fmt.Errorf("config: unknown policy kind %q", c.Policy.Kind)
	}
	switch c.Paths.ArchiveBackend {
	case "", "none", "dir", "sqlite":
	default:
		return fmt.Errorf("config: unknown archive backend %q", c.Paths.ArchiveBackend)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be non-negative")
	}
	return nil
}

// BuildPolicy constructs the configured classification policy.
func (c *Config) BuildPolicy() (sector.Policy, error) {
	switch c.Policy.Kind {
	case "threeway":
		return sector.ThreeWay{
			TailFrac:   c.Policy.TailFrac,
			MinSamples: c.Policy.MinSamples,
			Period:     c.Policy.Period,
			StdTol:     c.Policy.StdTol,
			RefA:       c.Policy.RefA,
			BandA:      c.Policy.BandA,
			RefB:       c.Policy.RefB,
			BandB:      c.Policy.BandB,
		}, nil
	case "twoway":
		return sector.TwoWay{
			TailFrac:   c.Policy.TailFrac,
			MinSamples: c.Policy.MinSamples,
			MeanCutoff: c.Policy.MeanCutoff,
			StdTol:     c.Policy.StdTol,
		}, nil
	}
	return nil, fmt.Errorf("config: unknown policy kind %q", c.Policy.Kind)
}

// BuildAxes converts the configured axes for the sweep driver.
func (c *Config) BuildAxes() []sweep.Axis {
	axes := make([]sweep.Axis, len(c.Axes))
	for i, ax := range c.Axes {
		axes[i] = sweep.Axis{Name: ax.Name, Values: ax.Values}
	}
	return axes
}

func (c *Config) BuildInitials() []sweep.Initial {
	inits := make([]sweep.Initial, len(c.Initials))
	for i, in := range c.Initials {
		inits[i] = sweep.Initial{Phi: in.Phi, PhiDot: in.PhiDot}
	}
	return inits
}

// BuildIntegrator wires the in-process solver as the sweep's integrator.
func (c *Config) BuildIntegrator() *sweep.SolverIntegrator {
	opts := solver.DefaultOptions()
	opts.Points = c.Solver.Points
	opts.Tol = c.Solver.Tol
	return &sweep.SolverIntegrator{
		Domain: solver.Domain{Start: c.Solver.AStart, End: c.Solver.AEnd},
		Opts:   opts,
		H0:     c.Solver.H0,
	}
}
