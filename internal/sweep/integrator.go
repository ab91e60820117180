package sweep

import (
	"context"
	"fmt"

	"github.com/jmrivas/phasecrit/internal/physics"
	"github.com/jmrivas/phasecrit/internal/solver"
)

// SolverIntegrator adapts the in-process Siamese model and adaptive solver
// to the Integrator seam. One instance is safe for concurrent use; each
// call builds its own model.
type SolverIntegrator struct {
	Domain solver.Domain
	Opts   solver.Options
	H0     float64
}

func (s *SolverIntegrator) Integrate(ctx context.Context, params map[string]float64, init Initial) (*solver.Trajectory, error) {
	sys := physics.NewSiamese()
	if s.H0 > 0 {
		sys.H0 = s.H0
	}
	for _, name := range []string{"m_phi", "k_rot", "q"} {
		if v, ok := params[name]; ok {
			if err := sys.SetParam(name, v); err != nil {
				return nil, fmt.Errorf("sweep: %w", err)
			}
		}
	}

	return solver.Evolve(ctx, sys, init.Phi, init.PhiDot, s.Domain, s.Opts)
}
