package config

import (
	"math"
	"sort"
)

// Presets capture the standing scan campaigns so their thresholds and grids
// live in exactly one place.
var Presets = map[string]func() *Config{
	// Coarse (m_phi, k_rot) grid with the Δφ_ini sweep that exposes all
	// three sectors.
	"coarse": DefaultConfig,

	// Fine scan of the A/C frontier in the two transition regions found by
	// the coarse map, Δφ_ini on the physical branch.
	"fine-ac": func() *Config {
		cfg := DefaultConfig()
		cfg.Axes = []AxisConfig{
			{Name: "m_phi", Values: []float64{
				0.40, 0.45, 0.50, 0.55, 0.60,
				1.80, 1.90, 2.00, 2.10, 2.20,
			}},
			{Name: "k_rot", Values: linspace(0.0, 0.60, 80)},
			{Name: "q", Values: []float64{1.0}},
		}
		cfg.Initials = []InitialConfig{{Phi: 0.01}}
		cfg.Policy = PolicyConfig{
			Kind:       "twoway",
			TailFrac:   0.10,
			MinSamples: 50,
			MeanCutoff: 0.5,
			StdTol:     0.1,
		}
		return cfg
	},

	// Ultra-high-resolution zoom around the known critical point
	// (m_phi, k_rot) ≈ (0.400, 0.3835), antipodal Δφ_ini for maximum
	// sensitivity of the transition.
	"microfine": func() *Config {
		cfg := DefaultConfig()
		cfg.Axes = []AxisConfig{
			{Name: "m_phi", Values: steps(0.395, 0.405, 0.0002)},
			{Name: "k_rot", Values: steps(0.380, 0.390, 0.0002)},
			{Name: "q", Values: []float64{1.0}},
		}
		cfg.Initials = []InitialConfig{{Phi: 2.827433388}}
		cfg.Solver.Points = 1500
		cfg.Policy = PolicyConfig{
			Kind:       "threeway",
			TailFrac:   0.15,
			MinSamples: 50,
			Period:     0, // unwrapped phase at this zoom level
			StdTol:     0.05,
			RefA:       0.0,
			BandA:      2.5,
			RefB:       math.Pi,
			BandB:      0.25,
		}
		cfg.Paths.ArchiveBackend = "sqlite"
		cfg.Paths.ArchivePath = "results_phase_sectors/trajectories.db"
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func linspace(min, max float64, n int) []float64 {
	if n < 2 {
		return []float64{min}
	}
	vals := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range vals {
		vals[i] = min + float64(i)*step
	}
	vals[n-1] = max
	return vals
}

func steps(min, max, step float64) []float64 {
	vals := make([]float64, 0)
	for v := min; v <= max+step/2; v += step {
		vals = append(vals, v)
	}
	return vals
}
