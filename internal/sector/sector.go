package sector

import "math"

// Label tags the qualitative asymptotic regime of a trajectory.
type Label string

const (
	// A: converged to the synchronized phase below the antipodal band.
	A Label = "A"
	// B: converged to the antipodal attractor near π.
	B Label = "B"
	// C: drifting, oscillatory or otherwise non-convergent.
	C Label = "C"
)

func (l Label) Valid() bool {
	return l == A || l == B || l == C
}

// Stats are the tail summary statistics of a trajectory.
type Stats struct {
	Mean float64
	Std  float64
}

// TailStats computes mean and population standard deviation over the final
// frac of values, optionally reduced modulo period (period <= 0 disables
// wrapping). NaN values propagate into the result; callers comparing with
// strict inequalities then fall through to the non-convergent label.
func TailStats(values []float64, frac, period float64) Stats {
	n := len(values)
	if n == 0 {
		return Stats{Mean: math.NaN(), Std: math.NaN()}
	}

	start := int(float64(n) * (1.0 - frac))
	if start < 0 {
		start = 0
	}
	if start >= n {
		start = n - 1
	}
	tail := values[start:]

	sum := 0.0
	wrapped := make([]float64, len(tail))
	for i, v := range tail {
		if period > 0 {
			v = math.Mod(v, period)
			if v < 0 {
				v += period
			}
		}
		wrapped[i] = v
		sum += v
	}
	mean := sum / float64(len(wrapped))

	varSum := 0.0
	for _, v := range wrapped {
		d := v - mean
		varSum += d * d
	}

	return Stats{
		Mean: mean,
		Std:  math.Sqrt(varSum / float64(len(wrapped))),
	}
}
