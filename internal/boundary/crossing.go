package boundary

// FindCrossing scans consecutive pairs of an aggregated, ascending-sorted
// response curve for the first strict sign change of response-target and
// returns the linearly interpolated coordinate of the crossing. A sample
// exactly on the target is not a strict sign change and is not reported as a
// crossing. A pair with identical responses cannot be interpolated and is
// skipped. No crossing in range returns (0, false), a valid outcome meaning
// no transition was observed.
func FindCrossing(coords, resp []float64, target float64) (float64, bool) {
	n := len(coords)
	if len(resp) < n {
		n = len(resp)
	}

	for i := 0; i+1 < n; i++ {
		d1 := resp[i] - target
		d2 := resp[i+1] - target
		if d1*d2 >= 0 {
			continue
		}
		if resp[i+1] == resp[i] {
			continue
		}
		frac := (target - resp[i]) / (resp[i+1] - resp[i])
		return coords[i] + frac*(coords[i+1]-coords[i]), true
	}
	return 0, false
}

// FindCrossings returns every resolvable crossing in the scanned range, in
// coordinate order. Callers with non-monotonic response curves use this;
// FindCrossing remains the single-transition default.
func FindCrossings(coords, resp []float64, target float64) []float64 {
	n := len(coords)
	if len(resp) < n {
		n = len(resp)
	}

	out := make([]float64, 0)
	for i := 0; i+1 < n; i++ {
		d1 := resp[i] - target
		d2 := resp[i+1] - target
		if d1*d2 >= 0 || resp[i+1] == resp[i] {
			continue
		}
		frac := (target - resp[i]) / (resp[i+1] - resp[i])
		out = append(out, coords[i]+frac*(coords[i+1]-coords[i]))
	}
	return out
}
