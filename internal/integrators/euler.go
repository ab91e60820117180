package integrators

import "github.com/jmrivas/phasecrit/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, a, da float64) dynamo.State {
	dx := sys.Derive(x, a)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + da*dx[i]
	}
	return result
}
