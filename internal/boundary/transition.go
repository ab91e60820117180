package boundary

import "github.com/jmrivas/phasecrit/internal/sector"

// TransitionMidpoint locates the single ordered transition from sector
// `from` to sector `to` along one axis: the highest-index sample still
// labeled `from` and the lowest-index sample labeled `to`. When either side
// is absent, or the regions interleave (`to` appearing at or before the last
// `from`), there is no clean boundary for this row and the function reports
// so rather than guessing. The estimate is the midpoint of the bracketing
// coordinates.
func TransitionMidpoint(coords []float64, labels []sector.Label, from, to sector.Label) (float64, bool) {
	n := len(coords)
	if len(labels) < n {
		n = len(labels)
	}

	lastFrom := -1
	firstTo := -1
	for i := 0; i < n; i++ {
		switch labels[i] {
		case from:
			lastFrom = i
		case to:
			if firstTo < 0 {
				firstTo = i
			}
		}
	}

	if lastFrom < 0 || firstTo < 0 {
		return 0, false
	}
	if firstTo <= lastFrom {
		return 0, false
	}
	return 0.5 * (coords[lastFrom] + coords[firstTo]), true
}

// PairMidpoints flags a boundary point at the midpoint of every adjacent
// pair whose two labels are exactly the unordered pair {x, y}. A third label
// on either side excludes the pair. A row may contribute zero, one or many
// points.
func PairMidpoints(coords []float64, labels []sector.Label, x, y sector.Label) []float64 {
	n := len(coords)
	if len(labels) < n {
		n = len(labels)
	}

	out := make([]float64, 0)
	if x == y {
		return out
	}
	for i := 0; i+1 < n; i++ {
		l1, l2 := labels[i], labels[i+1]
		if (l1 == x && l2 == y) || (l1 == y && l2 == x) {
			out = append(out, 0.5*(coords[i]+coords[i+1]))
		}
	}
	return out
}

// ChangePoints flags the midpoint of every adjacent pair whose labels
// differ, regardless of which sectors are involved. Used for fine-grained
// line-by-line boundary tracing.
func ChangePoints(coords []float64, labels []sector.Label) []float64 {
	n := len(coords)
	if len(labels) < n {
		n = len(labels)
	}

	out := make([]float64, 0)
	for i := 0; i+1 < n; i++ {
		if labels[i] != labels[i+1] {
			out = append(out, 0.5*(coords[i]+coords[i+1]))
		}
	}
	return out
}
