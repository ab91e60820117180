package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/jmrivas/phasecrit/internal/gridmap"
	"github.com/jmrivas/phasecrit/internal/records"
	"github.com/jmrivas/phasecrit/internal/store"
)

// PlotResponse renders the aggregated response curve with the target line
// context in the caption.
func PlotResponse(s records.CritSummary, height int) string {
	if len(s.Means) == 0 {
		return Subtle.Render("no aggregated response to plot")
	}

	caption := fmt.Sprintf("%s ∈ [%g, %g], target %.3g",
		s.Axis, s.Coords[0], s.Coords[len(s.Coords)-1], s.Target)
	if s.Crit != nil {
		caption += fmt.Sprintf(", crossing at %.6g", *s.Crit)
	} else {
		caption += ", no crossing"
	}

	return asciigraph.Plot(s.Means,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// PlotTrajectory renders an archived Δφ(a) evolution.
func PlotTrajectory(e *store.Entry, height, width int) string {
	if len(e.Phi) == 0 {
		return Subtle.Render("empty trajectory")
	}

	series := e.Phi
	if width > 0 && len(series) > width {
		// Decimate to the terminal width; the asymptotic shape survives.
		stride := len(series) / width
		ds := make([]float64, 0, width)
		for i := 0; i < len(series); i += stride {
			ds = append(ds, series[i])
		}
		series = ds
	}

	caption := fmt.Sprintf("Δφ(a), a ∈ [%g, %g], sector %s",
		e.A[0], e.A[len(e.A)-1], e.Sector)

	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// RenderSectorMap draws a label grid with the y axis ascending upwards,
// missing cells as dots.
func RenderSectorMap(g *gridmap.LabelGrid) string {
	var b strings.Builder

	b.WriteString(Header.Render(fmt.Sprintf("sector map: %s × %s", g.XAxis, g.YAxis)))
	b.WriteString("\n")

	for yi := len(g.YS) - 1; yi >= 0; yi-- {
		b.WriteString(Subtle.Render(fmt.Sprintf("%8.4g │ ", g.YS[yi])))
		for xi := range g.XS {
			l := g.Cells[yi][xi]
			if l == "" {
				b.WriteString(missingCell.Render("·"))
			} else {
				b.WriteString(SectorStyle(l).Render(string(l)))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString(Subtle.Render(fmt.Sprintf("%8s └ %s: %.4g … %.4g (%d columns)",
		"", g.XAxis, g.XS[0], g.XS[len(g.XS)-1], len(g.XS))))
	b.WriteString("\n")

	if len(g.Conflicts) > 0 {
		b.WriteString(Warn.Render(fmt.Sprintf("%d conflicting duplicate cells", len(g.Conflicts))))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderCrit formats the outcome of a continuous boundary extraction.
func RenderCrit(s records.CritSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", Subtle.Render("axis:"), s.Axis))
	b.WriteString(fmt.Sprintf("%s  %d\n", Subtle.Render("groups:"), len(s.Coords)))
	b.WriteString(fmt.Sprintf("%s  %.3g\n", Subtle.Render("target:"), s.Target))
	if s.Crit != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", Subtle.Render("critical:"), Value.Render(fmt.Sprintf("%.6f", *s.Crit))))
	} else {
		b.WriteString(fmt.Sprintf("%s  %s\n", Subtle.Render("critical:"), Warn.Render("no crossing in scanned range")))
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}
