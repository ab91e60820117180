package sector

import (
	"math"
	"testing"
)

func constant(n int, v float64) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = v
	}
	return vals
}

func TestTailStats(t *testing.T) {
	// Head is garbage, tail is constant 1.0.
	vals := make([]float64, 100)
	for i := 0; i < 90; i++ {
		vals[i] = 42.0
	}
	for i := 90; i < 100; i++ {
		vals[i] = 1.0
	}

	st := TailStats(vals, 0.10, 0)
	if st.Mean != 1.0 {
		t.Errorf("tail mean should be 1.0, got %f", st.Mean)
	}
	if st.Std != 0.0 {
		t.Errorf("tail std should be 0, got %f", st.Std)
	}
}

func TestTailStatsWrapping(t *testing.T) {
	// 2π+0.1 wraps to 0.1 under mod 2π.
	vals := constant(100, 2*math.Pi+0.1)

	st := TailStats(vals, 0.10, 2*math.Pi)
	if math.Abs(st.Mean-0.1) > 1e-12 {
		t.Errorf("wrapped mean should be 0.1, got %f", st.Mean)
	}

	unwrapped := TailStats(vals, 0.10, 0)
	if math.Abs(unwrapped.Mean-(2*math.Pi+0.1)) > 1e-12 {
		t.Errorf("unwrapped mean should stay raw, got %f", unwrapped.Mean)
	}
}

func TestTailStatsNegativeWrap(t *testing.T) {
	// Negative phases wrap into [0, period).
	st := TailStats(constant(100, -0.1), 0.10, 2*math.Pi)
	if math.Abs(st.Mean-(2*math.Pi-0.1)) > 1e-12 {
		t.Errorf("negative value should wrap to %f, got %f", 2*math.Pi-0.1, st.Mean)
	}
}

func TestTailStatsEmpty(t *testing.T) {
	st := TailStats(nil, 0.10, 0)
	if !math.IsNaN(st.Mean) || !math.IsNaN(st.Std) {
		t.Errorf("empty input should produce NaN stats, got %+v", st)
	}
}

func TestThreeWaySectorA(t *testing.T) {
	p := DefaultThreeWay()
	if got := p.Classify(constant(1000, 0.01)); got != A {
		t.Errorf("settled near zero should be A, got %s", got)
	}
	// Anywhere below the antipodal band is still A.
	if got := p.Classify(constant(1000, 2.0)); got != A {
		t.Errorf("settled at 2.0 (below band) should be A, got %s", got)
	}
}

func TestThreeWaySectorB(t *testing.T) {
	p := DefaultThreeWay()
	if got := p.Classify(constant(1000, math.Pi)); got != B {
		t.Errorf("settled at π should be B, got %s", got)
	}
	if got := p.Classify(constant(1000, math.Pi+0.2)); got != B {
		t.Errorf("settled at π+0.2 should be B, got %s", got)
	}
}

func TestThreeWaySectorC(t *testing.T) {
	p := DefaultThreeWay()

	// Oscillating tail: large std.
	vals := make([]float64, 1000)
	for i := range vals {
		vals[i] = math.Sin(float64(i))
	}
	if got := p.Classify(vals); got != C {
		t.Errorf("oscillating tail should be C, got %s", got)
	}

	// Settled, but outside both bands.
	if got := p.Classify(constant(1000, math.Pi+0.5)); got != C {
		t.Errorf("settled outside both bands should be C, got %s", got)
	}
}

func TestThreeWayStrictTolerances(t *testing.T) {
	p := DefaultThreeWay()

	// Std exactly at tolerance resolves to the non-convergent outcome.
	vals := make([]float64, 1000)
	for i := range vals {
		if i%2 == 0 {
			vals[i] = 0.5 + p.StdTol
		} else {
			vals[i] = 0.5 - p.StdTol
		}
	}
	st := p.TailOf(vals)
	if st.Std != p.StdTol {
		t.Fatalf("test setup: std should equal the tolerance, got %g", st.Std)
	}
	if got := p.Classify(vals); got != C {
		t.Errorf("std exactly at tolerance should be C, got %s", got)
	}
}

func TestThreeWayShortTrajectory(t *testing.T) {
	p := DefaultThreeWay()
	if got := p.Classify(constant(p.MinSamples-1, 0.01)); got != C {
		t.Errorf("too few samples should be C, got %s", got)
	}
}

func TestThreeWayNaN(t *testing.T) {
	p := DefaultThreeWay()
	vals := constant(1000, 0.01)
	vals[995] = math.NaN()
	if got := p.Classify(vals); got != C {
		t.Errorf("NaN in tail should fail to sector C, got %s", got)
	}
}

func TestTwoWay(t *testing.T) {
	p := DefaultTwoWay()

	if got := p.Classify(constant(1000, 0.1)); got != A {
		t.Errorf("settled below cutoff should be A, got %s", got)
	}
	if got := p.Classify(constant(1000, 0.9)); got != C {
		t.Errorf("settled above cutoff should be C, got %s", got)
	}
	if got := p.Classify(constant(p.MinSamples-1, 0.1)); got != C {
		t.Errorf("too few samples should be C, got %s", got)
	}

	// Mean exactly at cutoff is not A.
	if got := p.Classify(constant(1000, p.MeanCutoff)); got != C {
		t.Errorf("mean exactly at cutoff should be C, got %s", got)
	}
}

func TestLabelValid(t *testing.T) {
	for _, l := range []Label{A, B, C} {
		if !l.Valid() {
			t.Errorf("%s should be valid", l)
		}
	}
	if Label("").Valid() || Label("X").Valid() {
		t.Error("empty and unknown labels should be invalid")
	}
}
