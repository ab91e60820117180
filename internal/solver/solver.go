package solver

import (
	"context"
	"fmt"

	"github.com/jmrivas/phasecrit/internal/dynamo"
	"github.com/jmrivas/phasecrit/internal/integrators"
)

// Domain is the scale-factor window to integrate over.
type Domain struct {
	Start float64
	End   float64
}

type Options struct {
	// Points is the number of evenly spaced evaluation coordinates in the
	// returned trajectory.
	Points int
	// Tol is the relative local-error tolerance for the adaptive march.
	Tol float64
	// InitStep seeds the adaptive step size.
	InitStep float64
	// MaxSteps bounds the number of accepted steps before giving up.
	MaxSteps int
}

func DefaultOptions() Options {
	return Options{
		Points:   2000,
		Tol:      1e-7,
		InitStep: 1e-5,
		MaxSteps: 5_000_000,
	}
}

// Trajectory is one integrated evolution of Δφ(a), evaluated on a fixed
// grid of scale-factor coordinates. Immutable once returned.
type Trajectory struct {
	A      []float64
	Phi    []float64
	PhiDot []float64
	Params map[string]float64
}

// Evolve integrates sys from (phi0, phidot0) over dom, marching with an
// adaptive RK45 and interpolating dense output onto opts.Points evenly
// spaced coordinates. Deterministic given identical inputs. On numerical
// failure it returns an error, never a degenerate trajectory.
func Evolve(ctx context.Context, sys dynamo.System, phi0, phidot0 float64, dom Domain, opts Options) (*Trajectory, error) {
	if opts.Points < 2 {
		return nil, fmt.Errorf("solver: need at least 2 evaluation points, got %d", opts.Points)
	}
	if dom.Start <= 0 || dom.End <= dom.Start {
		return nil, fmt.Errorf("solver: invalid domain [%g, %g]", dom.Start, dom.End)
	}
	if opts.Tol <= 0 {
		return nil, fmt.Errorf("solver: tolerance must be positive, got %g", opts.Tol)
	}

	span := dom.End - dom.Start
	minStep := span * 1e-14

	traj := &Trajectory{
		A:      make([]float64, opts.Points),
		Phi:    make([]float64, opts.Points),
		PhiDot: make([]float64, opts.Points),
	}
	for i := range traj.A {
		traj.A[i] = dom.Start + span*float64(i)/float64(opts.Points-1)
	}
	traj.A[opts.Points-1] = dom.End

	if cfg, ok := sys.(dynamo.Configurable); ok {
		traj.Params = cfg.GetParams()
	}

	stepper := integrators.NewRK45()

	x := dynamo.State{phi0, phidot0}
	a := dom.Start
	da := opts.InitStep
	if da <= 0 || da > span {
		da = span / float64(opts.Points)
	}

	traj.Phi[0] = phi0
	traj.PhiDot[0] = phidot0
	next := 1 // next evaluation coordinate to fill

	for step := 0; next < opts.Points; step++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if step >= opts.MaxSteps {
			return nil, &dynamo.SolveError{Step: step, A: a, State: x, Wrapped: dynamo.ErrStepTooSmall}
		}

		last := false
		if a+da >= dom.End {
			da = dom.End - a
			last = true
		}

		newX, daNext, err := stepper.StepAdaptive(sys, x, a, da, opts.Tol)
		if err != nil {
			// Trial step rejected; retry with the suggested size.
			if daNext < minStep {
				return nil, &dynamo.SolveError{Step: step, A: a, State: x, Wrapped: dynamo.ErrStepTooSmall}
			}
			da = daNext
			continue
		}

		if !newX.IsValid() {
			return nil, &dynamo.SolveError{Step: step, A: a, State: newX, Wrapped: dynamo.ErrUnstable}
		}

		aNew := a + da
		if last {
			// Land exactly on the domain end despite rounding.
			aNew = dom.End
		}

		// Fill evaluation points covered by the accepted step.
		for next < opts.Points && traj.A[next] <= aNew {
			frac := (traj.A[next] - a) / da
			traj.Phi[next] = x[0] + frac*(newX[0]-x[0])
			traj.PhiDot[next] = x[1] + frac*(newX[1]-x[1])
			next++
		}

		x = newX
		a = aNew
		da = daNext
	}

	return traj, nil
}
