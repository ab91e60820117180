package gridmap

import (
	"errors"

	"github.com/jmrivas/phasecrit/internal/records"
	"github.com/jmrivas/phasecrit/internal/sector"
)

// ErrNoRecords indicates grid assembly was asked to build from an empty or
// unusable record set — a caller mistake, not a data artifact.
var ErrNoRecords = errors.New("gridmap: no records with both coordinates")

// Cell accumulates the continuous responses observed at one grid cell.
// N == 0 marks a cell with no data; it never reads as zero.
type Cell struct {
	Sum float64
	N   int
}

func (c Cell) Mean() (float64, bool) {
	if c.N == 0 {
		return 0, false
	}
	return c.Sum / float64(c.N), true
}

// ValueGrid is a rectangular grid of mean continuous responses, indexed
// [yi][xi] over the sorted distinct coordinate values of each axis.
type ValueGrid struct {
	XAxis, YAxis string
	XS, YS       []float64
	Cells        [][]Cell
}

// BuildValueGrid assembles the grid from records carrying both coordinates
// and a usable response. Coordinates match cells exactly — they originate
// from an enumerated grid, not measured data. Duplicate records at a cell
// are averaged.
func BuildValueGrid(recs []records.Record, xAxis, yAxis string) (*ValueGrid, error) {
	usable := make([]records.Record, 0, len(recs))
	for _, r := range recs {
		if _, ok := r.Coord(xAxis); !ok {
			continue
		}
		if _, ok := r.Coord(yAxis); !ok {
			continue
		}
		if _, ok := r.ResponseValue(); !ok {
			continue
		}
		usable = append(usable, r)
	}
	if len(usable) == 0 {
		return nil, ErrNoRecords
	}

	g := &ValueGrid{
		XAxis: xAxis,
		YAxis: yAxis,
		XS:    records.DistinctValues(usable, xAxis),
		YS:    records.DistinctValues(usable, yAxis),
	}
	g.Cells = make([][]Cell, len(g.YS))
	for i := range g.Cells {
		g.Cells[i] = make([]Cell, len(g.XS))
	}

	xi := indexOf(g.XS)
	yi := indexOf(g.YS)
	for _, r := range usable {
		x, _ := r.Coord(xAxis)
		y, _ := r.Coord(yAxis)
		v, _ := r.ResponseValue()
		cell := &g.Cells[yi[y]][xi[x]]
		cell.Sum += v
		cell.N++
	}
	return g, nil
}

// Conflict records disagreeing categorical duplicates at one cell. The
// first-seen label is kept; the disagreement is surfaced, never silently
// resolved.
type Conflict struct {
	X, Y    float64
	Kept    sector.Label
	Dropped sector.Label
}

// LabelGrid is a rectangular grid of sector labels; the empty label marks a
// cell with no data.
type LabelGrid struct {
	XAxis, YAxis string
	XS, YS       []float64
	Cells        [][]sector.Label
	Conflicts    []Conflict
}

func BuildLabelGrid(recs []records.Record, xAxis, yAxis string) (*LabelGrid, error) {
	usable := make([]records.Record, 0, len(recs))
	for _, r := range recs {
		if _, ok := r.Coord(xAxis); !ok {
			continue
		}
		if _, ok := r.Coord(yAxis); !ok {
			continue
		}
		if !r.Sector.Valid() {
			continue
		}
		usable = append(usable, r)
	}
	if len(usable) == 0 {
		return nil, ErrNoRecords
	}

	g := &LabelGrid{
		XAxis: xAxis,
		YAxis: yAxis,
		XS:    records.DistinctValues(usable, xAxis),
		YS:    records.DistinctValues(usable, yAxis),
	}
	g.Cells = make([][]sector.Label, len(g.YS))
	for i := range g.Cells {
		g.Cells[i] = make([]sector.Label, len(g.XS))
	}

	xi := indexOf(g.XS)
	yi := indexOf(g.YS)
	for _, r := range usable {
		x, _ := r.Coord(xAxis)
		y, _ := r.Coord(yAxis)
		cur := g.Cells[yi[y]][xi[x]]
		switch {
		case cur == "":
			g.Cells[yi[y]][xi[x]] = r.Sector
		case cur != r.Sector:
			g.Conflicts = append(g.Conflicts, Conflict{X: x, Y: y, Kept: cur, Dropped: r.Sector})
		}
	}
	return g, nil
}

func indexOf(vals []float64) map[float64]int {
	m := make(map[float64]int, len(vals))
	for i, v := range vals {
		m[v] = i
	}
	return m
}
