package records

import (
	"math"
	"sort"

	"github.com/jmrivas/phasecrit/internal/sector"
)

// Record is the atomic unit of sweep output: one classified grid point.
// Coords identifies the grid point; the response is either a precomputed
// probability, derived from counts, or absent (categorical-only records).
type Record struct {
	Coords   map[string]float64
	Sector   sector.Label
	Response *float64
	NA       float64
	NTotal   float64
	TailMean float64
	TailStd  float64
	TrajKey  string
}

// ResponseValue returns the continuous response for this record: the
// explicit response column when present, otherwise N_A/N_total when counts
// were recorded. NaN never qualifies.
func (r Record) ResponseValue() (float64, bool) {
	if r.Response != nil && !math.IsNaN(*r.Response) {
		return *r.Response, true
	}
	if r.NTotal > 0 {
		v := r.NA / r.NTotal
		if !math.IsNaN(v) {
			return v, true
		}
	}
	return 0, false
}

func (r Record) Coord(name string) (float64, bool) {
	v, ok := r.Coords[name]
	return v, ok
}

// GroupMean aggregates records by their exact value of the named coordinate
// and returns, sorted ascending by coordinate: the coordinate values, the
// mean response per group and the sample standard deviation per group
// (unbiased, N-1 denominator; 0 for singleton groups). Records without a
// usable response are excluded, never coerced.
func GroupMean(recs []Record, axis string) (coords, means, stds []float64) {
	groups := make(map[float64][]float64)
	for _, r := range recs {
		c, ok := r.Coord(axis)
		if !ok {
			continue
		}
		v, ok := r.ResponseValue()
		if !ok {
			continue
		}
		groups[c] = append(groups[c], v)
	}

	coords = make([]float64, 0, len(groups))
	for c := range groups {
		coords = append(coords, c)
	}
	sort.Float64s(coords)

	means = make([]float64, len(coords))
	stds = make([]float64, len(coords))
	for i, c := range coords {
		vals := groups[c]
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		mean := sum / float64(len(vals))
		means[i] = mean

		if len(vals) > 1 {
			varSum := 0.0
			for _, v := range vals {
				d := v - mean
				varSum += d * d
			}
			stds[i] = math.Sqrt(varSum / float64(len(vals)-1))
		}
	}
	return coords, means, stds
}

// LabelsAlong returns the records' labels ordered by the named coordinate,
// together with the sorted coordinates, restricted to records carrying a
// valid sector label and that coordinate.
func LabelsAlong(recs []Record, axis string) (coords []float64, labels []sector.Label) {
	type pair struct {
		c float64
		l sector.Label
	}
	pairs := make([]pair, 0, len(recs))
	for _, r := range recs {
		c, ok := r.Coord(axis)
		if !ok || !r.Sector.Valid() {
			continue
		}
		pairs = append(pairs, pair{c, r.Sector})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].c < pairs[j].c })

	coords = make([]float64, len(pairs))
	labels = make([]sector.Label, len(pairs))
	for i, p := range pairs {
		coords[i] = p.c
		labels[i] = p.l
	}
	return coords, labels
}

// Filter returns the records whose value of the named coordinate equals v
// exactly. Coordinates originate from enumerated grids, so exact comparison
// is the contract.
func Filter(recs []Record, axis string, v float64) []Record {
	out := make([]Record, 0)
	for _, r := range recs {
		if c, ok := r.Coord(axis); ok && c == v {
			out = append(out, r)
		}
	}
	return out
}

// DistinctValues returns the sorted distinct values of the named coordinate.
func DistinctValues(recs []Record, axis string) []float64 {
	seen := make(map[float64]bool)
	for _, r := range recs {
		if c, ok := r.Coord(axis); ok {
			seen[c] = true
		}
	}
	vals := make([]float64, 0, len(seen))
	for v := range seen {
		vals = append(vals, v)
	}
	sort.Float64s(vals)
	return vals
}
