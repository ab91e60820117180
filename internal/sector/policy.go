package sector

import "math"

// Policy classifies a trajectory's dependent sequence into a sector.
// Implementations are pure functions of their configuration; thresholds and
// reference points live here, never inline at call sites.
type Policy interface {
	Name() string
	Classify(values []float64) Label
	// TailOf exposes the tail statistics the policy classifies on, for
	// diagnostics recorded alongside the label.
	TailOf(values []float64) Stats
}

// ThreeWay is the full A/B/C classification: converged near RefA, converged
// near the secondary attractor RefB, or non-convergent. All comparisons are
// strict, so a value exactly at a tolerance resolves to the less-converged
// outcome.
type ThreeWay struct {
	TailFrac   float64
	MinSamples int
	Period     float64
	StdTol     float64
	RefA       float64
	BandA      float64
	RefB       float64
	BandB      float64
}

// DefaultThreeWay mirrors the production coarse-scan configuration: last 10%
// of samples reduced mod 2π, convergence tolerance 0.08, sector A anywhere
// below the antipodal band, sector B within 0.25 of π.
func DefaultThreeWay() ThreeWay {
	return ThreeWay{
		TailFrac:   0.10,
		MinSamples: 50,
		Period:     2 * math.Pi,
		StdTol:     0.08,
		RefA:       0.0,
		BandA:      math.Pi - 0.25,
		RefB:       math.Pi,
		BandB:      0.25,
	}
}

func (p ThreeWay) Name() string { return "threeway" }

func (p ThreeWay) TailOf(values []float64) Stats {
	return TailStats(values, p.TailFrac, p.Period)
}

func (p ThreeWay) Classify(values []float64) Label {
	if len(values) < p.MinSamples {
		return C
	}

	st := p.TailOf(values)

	if st.Std < p.StdTol && math.Abs(st.Mean-p.RefA) < p.BandA {
		return A
	}
	if st.Std < p.StdTol && math.Abs(st.Mean-p.RefB) < p.BandB {
		return B
	}
	return C
}

// TwoWay is the coarser synchrony/escape split used by threshold-style
// boundary sweeps: A when the tail settled below MeanCutoff, C otherwise.
// Strictly coarser than ThreeWay and configured independently.
type TwoWay struct {
	TailFrac   float64
	MinSamples int
	MeanCutoff float64
	StdTol     float64
}

func DefaultTwoWay() TwoWay {
	return TwoWay{
		TailFrac:   0.10,
		MinSamples: 50,
		MeanCutoff: 0.5,
		StdTol:     0.1,
	}
}

func (p TwoWay) Name() string { return "twoway" }

func (p TwoWay) TailOf(values []float64) Stats {
	return TailStats(values, p.TailFrac, 0)
}

func (p TwoWay) Classify(values []float64) Label {
	if len(values) < p.MinSamples {
		return C
	}

	st := p.TailOf(values)

	if st.Mean < p.MeanCutoff && st.Std < p.StdTol {
		return A
	}
	return C
}
