package viz

import (
	"strings"
	"testing"

	"github.com/jmrivas/phasecrit/internal/gridmap"
	"github.com/jmrivas/phasecrit/internal/records"
	"github.com/jmrivas/phasecrit/internal/sector"
	"github.com/jmrivas/phasecrit/internal/store"
)

func fp(v float64) *float64 { return &v }

func TestPlotResponse(t *testing.T) {
	s := records.CritSummary{
		Axis:   "m_phi",
		Coords: []float64{0.38, 0.40, 0.42},
		Means:  []float64{1.0, 0.5, 0.0},
		Target: 0.5,
		Crit:   fp(0.40),
	}

	out := PlotResponse(s, 5)
	if !strings.Contains(out, "crossing at 0.4") {
		t.Errorf("caption should name the crossing, got %q", out)
	}

	s.Crit = nil
	out = PlotResponse(s, 5)
	if !strings.Contains(out, "no crossing") {
		t.Errorf("caption should report the absent crossing, got %q", out)
	}

	empty := PlotResponse(records.CritSummary{}, 5)
	if empty == "" {
		t.Error("empty summary should still render a notice")
	}
}

func TestPlotTrajectory(t *testing.T) {
	e := &store.Entry{
		A:      []float64{0.001, 5.0, 10.0},
		Phi:    []float64{0.9, 0.1, 0.01},
		Sector: sector.A,
	}

	out := PlotTrajectory(e, 5, 80)
	if !strings.Contains(out, "sector A") {
		t.Errorf("caption should carry the sector, got %q", out)
	}

	// Long series decimate instead of overflowing the terminal.
	long := &store.Entry{
		A:      make([]float64, 2000),
		Phi:    make([]float64, 2000),
		Sector: sector.C,
	}
	for i := range long.A {
		long.A[i] = float64(i)
		long.Phi[i] = float64(i % 7)
	}
	if out := PlotTrajectory(long, 5, 100); out == "" {
		t.Error("decimated plot should render")
	}
}

func TestRenderSectorMap(t *testing.T) {
	recs := []records.Record{
		{Coords: map[string]float64{"k_rot": 0.1, "m_phi": 0.4}, Sector: sector.A},
		{Coords: map[string]float64{"k_rot": 0.2, "m_phi": 0.4}, Sector: sector.C},
		{Coords: map[string]float64{"k_rot": 0.1, "m_phi": 0.5}, Sector: sector.B},
	}
	g, err := gridmap.BuildLabelGrid(recs, "k_rot", "m_phi")
	if err != nil {
		t.Fatal(err)
	}

	out := RenderSectorMap(g)
	for _, want := range []string{"A", "B", "C", "·", "k_rot"} {
		if !strings.Contains(out, want) {
			t.Errorf("map should contain %q:\n%s", want, out)
		}
	}
}

func TestRenderCrit(t *testing.T) {
	s := records.CritSummary{Axis: "k_rot", Coords: []float64{0.38}, Target: 0.5}
	out := RenderCrit(s)
	if !strings.Contains(out, "no crossing in scanned range") {
		t.Errorf("missing crossing should be stated, got %q", out)
	}

	s.Crit = fp(0.3835)
	out = RenderCrit(s)
	if !strings.Contains(out, "0.3835") {
		t.Errorf("crossing value should be shown, got %q", out)
	}
}
