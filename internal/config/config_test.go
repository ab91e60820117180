package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("listed preset %q should resolve", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q must validate: %v", name, err)
		}
		if _, err := cfg.BuildPolicy(); err != nil {
			t.Errorf("preset %q must build its policy: %v", name, err)
		}
	}

	if GetPreset("nope") != nil {
		t.Error("unknown preset should return nil")
	}
}

func TestValidateCatchesMistakes(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no axes", func(c *Config) { c.Axes = nil }},
		{"unnamed axis", func(c *Config) { c.Axes[0].Name = "" }},
		{"empty axis", func(c *Config) { c.Axes[0].Values = nil }},
		{"no initials", func(c *Config) { c.Initials = nil }},
		{"one point", func(c *Config) { c.Solver.Points = 1 }},
		{"zero start", func(c *Config) { c.Solver.AStart = 0 }},
		{"inverted window", func(c *Config) { c.Solver.AEnd = c.Solver.AStart }},
		{"zero tol", func(c *Config) { c.Solver.Tol = 0 }},
		{"bad policy", func(c *Config) { c.Policy.Kind = "fourway" }},
		{"bad backend", func(c *Config) { c.Paths.ArchiveBackend = "s3" }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.yaml")

	cfg := GetPreset("microfine")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Policy.Kind != "threeway" || loaded.Policy.StdTol != 0.05 {
		t.Errorf("policy should round-trip, got %+v", loaded.Policy)
	}
	if loaded.Solver.Points != 1500 {
		t.Errorf("solver points should round-trip, got %d", loaded.Solver.Points)
	}
	if loaded.Paths.ArchiveBackend != "sqlite" {
		t.Errorf("archive backend should round-trip, got %q", loaded.Paths.ArchiveBackend)
	}
	if len(loaded.Axes) != len(cfg.Axes) {
		t.Errorf("axes should round-trip, got %d", len(loaded.Axes))
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")

	// Only the worker count is specified; everything else keeps defaults.
	if err := os.WriteFile(path, []byte("workers: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Workers)
	}
	if cfg.Solver.Points != 2000 {
		t.Errorf("unspecified fields should keep defaults, got %d points", cfg.Solver.Points)
	}
}

func TestBuildPolicy(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.BuildPolicy()
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "threeway" {
		t.Errorf("expected threeway policy, got %s", p.Name())
	}

	cfg.Policy.Kind = "twoway"
	cfg.Policy.MeanCutoff = 0.5
	p, err = cfg.BuildPolicy()
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "twoway" {
		t.Errorf("expected twoway policy, got %s", p.Name())
	}
}

func TestBuildSweepInputs(t *testing.T) {
	cfg := DefaultConfig()

	axes := cfg.BuildAxes()
	if len(axes) != 3 || axes[0].Name != "m_phi" {
		t.Errorf("unexpected axes: %+v", axes)
	}

	inits := cfg.BuildInitials()
	if len(inits) != 3 {
		t.Fatalf("expected 3 initial presets, got %d", len(inits))
	}
	if math.Abs(inits[1].Phi-math.Pi*0.5) > 1e-12 {
		t.Errorf("unexpected second preset: %+v", inits[1])
	}

	integ := cfg.BuildIntegrator()
	if integ.Domain.Start != 1e-3 || integ.Domain.End != 10.0 {
		t.Errorf("unexpected integration window: %+v", integ.Domain)
	}
	if integ.Opts.Points != 2000 || integ.Opts.Tol != 1e-7 {
		t.Errorf("unexpected solver options: %+v", integ.Opts)
	}
}
