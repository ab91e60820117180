package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous ODE system evolved over the scale factor a,
// dX/da = f(X, a).
type System interface {
	Derive(x State, a float64) State
	StateDim() int
}

type Stepper interface {
	Step(sys System, x State, a, da float64) State
}

type AdaptiveStepper interface {
	Stepper

	// StepAdaptive attempts one step of size da. On success it returns the
	// new state and a suggested size for the next step. When the local error
	// estimate exceeds tol it returns ErrAccuracy together with a reduced
	// step size to retry with; the returned state must then be discarded.
	StepAdaptive(sys System, x State, a, da, tol float64) (State, float64, error)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type StepError struct {
	A       float64
	Step    int
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (a=%.6g): %s", e.Step, e.A, e.Message)
}
