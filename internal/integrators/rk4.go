package integrators

import "github.com/jmrivas/phasecrit/internal/dynamo"

type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, a, da float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x, a))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + da*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, a+da*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + da*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, a+da*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + da*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, a+da))

	result := make(dynamo.State, n)
	da6 := da / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + da6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
