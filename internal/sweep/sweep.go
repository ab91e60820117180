package sweep

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jmrivas/phasecrit/internal/records"
	"github.com/jmrivas/phasecrit/internal/sector"
	"github.com/jmrivas/phasecrit/internal/solver"
	"github.com/jmrivas/phasecrit/internal/store"
)

// Axis is one swept parameter: a name and the finite list of values to
// enumerate.
type Axis struct {
	Name   string
	Values []float64
}

// Initial is one initial-condition preset for the phase variable.
type Initial struct {
	Phi    float64
	PhiDot float64
}

// Integrator is the external collaborator that produces one trajectory per
// grid point. Deterministic given identical inputs; failure means the point
// could not be integrated, never a degenerate sequence.
type Integrator interface {
	Integrate(ctx context.Context, params map[string]float64, init Initial) (*solver.Trajectory, error)
}

// Failure reports one grid point that could not be integrated. Failures
// never abort the sweep.
type Failure struct {
	Coords map[string]float64
	Err    error
}

// Result is the output of one sweep run. Results from separate runs over
// disjoint or overlapping grids concatenate freely; duplicates are averaged
// downstream, not rejected.
type Result struct {
	RunID    string
	Records  []records.Record
	Failures []Failure
}

// Driver enumerates the Cartesian grid, integrates each point and
// classifies the outcome.
type Driver struct {
	Integ   Integrator
	Policy  sector.Policy
	Archive store.Archive // optional; nil disables persistence
	Workers int           // <= 1 runs sequentially

	// Observer, when set, is called after each grid point (serialized).
	Observer func(done, total int, rec *records.Record, failed bool)
}

type point struct {
	coords map[string]float64
	init   Initial
}

type slot struct {
	rec  *records.Record
	fail *Failure
}

// Run produces one record (or failure) per element of axes × inits, in
// deterministic enumeration order regardless of Workers.
func (d *Driver) Run(ctx context.Context, axes []Axis, inits []Initial) (*Result, error) {
	if d.Integ == nil || d.Policy == nil {
		return nil, fmt.Errorf("sweep: driver needs an integrator and a policy")
	}
	if len(axes) == 0 {
		return nil, fmt.Errorf("sweep: no parameter axes")
	}
	for _, ax := range axes {
		if len(ax.Values) == 0 {
			return nil, fmt.Errorf("sweep: axis %q has no values", ax.Name)
		}
	}
	if len(inits) == 0 {
		return nil, fmt.Errorf("sweep: no initial-condition presets")
	}

	points := enumerate(axes, inits)
	slots := make([]slot, len(points))

	var obsMu sync.Mutex
	var done int
	notify := func(rec *records.Record, failed bool) {
		if d.Observer == nil {
			return
		}
		obsMu.Lock()
		done++
		d.Observer(done, len(points), rec, failed)
		obsMu.Unlock()
	}

	eval := func(i int) {
		rec, fail := d.evalPoint(ctx, points[i])
		slots[i] = slot{rec: rec, fail: fail}
		notify(rec, fail != nil)
	}

	if d.Workers <= 1 {
		for i := range points {
			if err := ctx.Err(); err != nil {
				return d.collect(slots[:i]), err
			}
			eval(i)
		}
	} else {
		sem := make(chan struct{}, d.Workers)
		var wg sync.WaitGroup
		for i := range points {
			wg.Add(1)
			sem <- struct{}{}
			go func(idx int) {
				defer wg.Done()
				defer func() { <-sem }()
				if ctx.Err() != nil {
					return
				}
				eval(idx)
			}(i)
		}
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return d.collect(slots), err
		}
	}

	return d.collect(slots), nil
}

func (d *Driver) collect(slots []slot) *Result {
	res := &Result{RunID: uuid.NewString()}
	for _, s := range slots {
		if s.rec != nil {
			res.Records = append(res.Records, *s.rec)
		}
		if s.fail != nil {
			res.Failures = append(res.Failures, *s.fail)
		}
	}
	return res
}

func (d *Driver) evalPoint(ctx context.Context, p point) (*records.Record, *Failure) {
	traj, err := d.Integ.Integrate(ctx, p.coords, p.init)
	if err != nil {
		return nil, &Failure{Coords: p.coords, Err: err}
	}

	label := d.Policy.Classify(traj.Phi)
	st := d.Policy.TailOf(traj.Phi)

	rec := &records.Record{
		Coords:   p.coords,
		Sector:   label,
		TailMean: st.Mean,
		TailStd:  st.Std,
	}

	if d.Archive != nil {
		key, err := d.Archive.Put(traj, p.init.Phi, label)
		if err != nil {
			// Persistence trouble must not lose the classification.
			return rec, &Failure{Coords: p.coords, Err: fmt.Errorf("archive: %w", err)}
		}
		rec.TrajKey = key.Slug()
	}

	return rec, nil
}

// enumerate builds the Cartesian product of axes × inits, last axis fastest,
// initial presets innermost. The initial phase appears as the coordinate
// "delta_phi_ini".
func enumerate(axes []Axis, inits []Initial) []point {
	total := len(inits)
	for _, ax := range axes {
		total *= len(ax.Values)
	}

	points := make([]point, 0, total)
	idx := make([]int, len(axes))
	for {
		for _, init := range inits {
			coords := make(map[string]float64, len(axes)+1)
			for i, ax := range axes {
				coords[ax.Name] = ax.Values[idx[i]]
			}
			coords["delta_phi_ini"] = init.Phi
			points = append(points, point{coords: coords, init: init})
		}

		// Odometer increment, last axis fastest.
		k := len(axes) - 1
		for k >= 0 {
			idx[k]++
			if idx[k] < len(axes[k].Values) {
				break
			}
			idx[k] = 0
			k--
		}
		if k < 0 {
			break
		}
	}
	return points
}
