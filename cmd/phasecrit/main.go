package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmrivas/phasecrit/internal/boundary"
	"github.com/jmrivas/phasecrit/internal/config"
	"github.com/jmrivas/phasecrit/internal/gridmap"
	"github.com/jmrivas/phasecrit/internal/records"
	"github.com/jmrivas/phasecrit/internal/sector"
	"github.com/jmrivas/phasecrit/internal/store"
	"github.com/jmrivas/phasecrit/internal/sweep"
	"github.com/jmrivas/phasecrit/internal/tui"
	"github.com/jmrivas/phasecrit/internal/viz"
)

var (
	configFile  string
	preset      string
	scanResults string
	live        bool
	workers     int

	resultsDir string

	axisName  string
	target    float64
	outFile   string
	groupAxis  string
	alongAxis  string
	pairsAlong string
	fromLabel string
	toLabel   string
	xAxis     string
	yAxis     string
	mapMode   string
	where     []string

	archivePath    string
	archiveBackend string
	keyM, keyK     float64
	keyQ, keyD     float64

	critHeight int
	showHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "phasecrit",
		Short: "phase-sector scans and critical boundaries for the Siamese phase-difference equation",
	}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "run a parameter sweep and classify each grid point",
		RunE:  runScan,
	}
	scanCmd.Flags().StringVar(&configFile, "config", "", "sweep config file (yaml)")
	scanCmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
	scanCmd.Flags().StringVar(&scanResults, "results", "", "override results directory")
	scanCmd.Flags().BoolVar(&live, "live", false, "live progress view")
	scanCmd.Flags().IntVar(&workers, "workers", 0, "override worker count")

	critCmd := &cobra.Command{
		Use:   "crit",
		Short: "locate the coordinate where the mean response crosses a target",
		RunE:  runCrit,
	}
	critCmd.Flags().StringVar(&resultsDir, "results", "results_phase_sectors", "directory of record CSVs")
	critCmd.Flags().StringVar(&axisName, "axis", "m_phi", "grouping coordinate")
	critCmd.Flags().Float64Var(&target, "target", 0.5, "target response value")
	critCmd.Flags().StringVar(&outFile, "out", "", "summary JSON path (default <results>/crit_summary.json)")
	critCmd.Flags().IntVar(&critHeight, "height", 10, "plot height")

	mapCmd := &cobra.Command{
		Use:   "map",
		Short: "assemble and render the 2D sector or response grid",
		RunE:  runMap,
	}
	mapCmd.Flags().StringVar(&resultsDir, "results", "results_phase_sectors", "directory of record CSVs")
	mapCmd.Flags().StringVar(&xAxis, "x", "k_rot", "x axis coordinate")
	mapCmd.Flags().StringVar(&yAxis, "y", "m_phi", "y axis coordinate")
	mapCmd.Flags().StringVar(&mapMode, "mode", "sector", "sector or response")
	mapCmd.Flags().StringArrayVar(&where, "where", nil, "restrict to records with coordinate=value (repeatable)")

	boundaryCmd := &cobra.Command{
		Use:   "boundary",
		Short: "extract the ordered sector transition row by row",
		RunE:  runBoundary,
	}
	boundaryCmd.Flags().StringVar(&resultsDir, "results", "results_phase_sectors", "directory of record CSVs")
	boundaryCmd.Flags().StringVar(&groupAxis, "group", "m_phi", "row coordinate")
	boundaryCmd.Flags().StringVar(&alongAxis, "along", "k_rot", "scan coordinate")
	boundaryCmd.Flags().StringVar(&fromLabel, "from", "A", "sector before the transition")
	boundaryCmd.Flags().StringVar(&toLabel, "to", "C", "sector after the transition")
	boundaryCmd.Flags().StringVar(&outFile, "out", "", "boundary CSV path")

	pairsCmd := &cobra.Command{
		Use:   "pairs",
		Short: "flag every adjacent pair matching exactly the target sectors",
		RunE:  runPairs,
	}
	pairsCmd.Flags().StringVar(&resultsDir, "results", "results_phase_sectors", "directory of record CSVs")
	pairsCmd.Flags().StringVar(&groupAxis, "group", "m_phi", "row coordinate")
	pairsCmd.Flags().StringVar(&pairsAlong, "along", "delta_phi_ini", "scan coordinate")
	pairsCmd.Flags().StringVar(&fromLabel, "x", "A", "first sector of the pair")
	pairsCmd.Flags().StringVar(&toLabel, "y", "C", "second sector of the pair")
	pairsCmd.Flags().StringVar(&outFile, "out", "", "boundary CSV path")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "flag every sector change along the scan coordinate",
		RunE:  runTrace,
	}
	traceCmd.Flags().StringVar(&resultsDir, "results", "results_phase_sectors", "directory of record CSVs")
	traceCmd.Flags().StringVar(&groupAxis, "group", "m_phi", "row coordinate")
	traceCmd.Flags().StringVar(&alongAxis, "along", "k_rot", "scan coordinate")
	traceCmd.Flags().StringVar(&outFile, "out", "", "boundary CSV path")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "plot one archived trajectory",
		RunE:  runShow,
	}
	showCmd.Flags().StringVar(&archivePath, "archive", "results_phase_sectors/trajectories", "archive location")
	showCmd.Flags().StringVar(&archiveBackend, "backend", "dir", "dir or sqlite")
	showCmd.Flags().Float64Var(&keyM, "m", 0, "m_phi of the grid point")
	showCmd.Flags().Float64Var(&keyK, "k", 0, "k_rot of the grid point")
	showCmd.Flags().Float64Var(&keyQ, "q", 1.0, "q of the grid point")
	showCmd.Flags().Float64Var(&keyD, "d", 0, "initial phase of the grid point")
	showCmd.Flags().IntVar(&showHeight, "height", 12, "plot height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived trajectories",
		RunE:  runList,
	}
	listCmd.Flags().StringVar(&archivePath, "archive", "results_phase_sectors/trajectories", "archive location")
	listCmd.Flags().StringVar(&archiveBackend, "backend", "dir", "dir or sqlite")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scan presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(scanCmd, critCmd, mapCmd, boundaryCmd, pairsCmd, traceCmd, showCmd, listCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (see `phasecrit presets`)", preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if scanResults != "" {
		cfg.Paths.ResultsDir = scanResults
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return cfg, cfg.Validate()
}

func openArchive(backend, path string) (store.Archive, error) {
	switch backend {
	case "", "none":
		return nil, nil
	case "dir":
		return store.NewDir(path)
	case "sqlite":
		return store.OpenSQLite(path)
	}
	return nil, fmt.Errorf("unknown archive backend %q", backend)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	policy, err := cfg.BuildPolicy()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Paths.ResultsDir, 0755); err != nil {
		return err
	}

	archive, err := openArchive(cfg.Paths.ArchiveBackend, cfg.Paths.ArchivePath)
	if err != nil {
		return err
	}
	if archive != nil {
		defer archive.Close()
	}

	driver := &sweep.Driver{
		Integ:   cfg.BuildIntegrator(),
		Policy:  policy,
		Archive: archive,
		Workers: cfg.Workers,
	}

	axes := cfg.BuildAxes()
	inits := cfg.BuildInitials()

	var result *sweep.Result
	if live {
		updates := make(chan tui.Progress, 64)
		failures := 0
		driver.Observer = func(done, total int, rec *records.Record, failed bool) {
			if failed {
				failures++
			}
			p := tui.Progress{Done: done, Total: total, Failures: failures}
			if rec != nil {
				p.Label = rec.Sector
				p.MPhi = rec.Coords["m_phi"]
				p.KRot = rec.Coords["k_rot"]
			}
			select {
			case updates <- p:
			default:
			}
		}

		errCh := make(chan error, 1)
		go func() {
			var runErr error
			result, runErr = driver.Run(context.Background(), axes, inits)
			close(updates)
			errCh <- runErr
		}()

		if _, err := tea.NewProgram(tui.New(updates)).Run(); err != nil {
			return err
		}
		if err := <-errCh; err != nil {
			return err
		}
	} else {
		result, err = driver.Run(context.Background(), axes, inits)
		if err != nil {
			return err
		}
	}

	axisOrder := make([]string, 0, len(axes)+1)
	for _, ax := range axes {
		axisOrder = append(axisOrder, ax.Name)
	}
	axisOrder = append(axisOrder, "delta_phi_ini")

	csvPath := filepath.Join(cfg.Paths.ResultsDir, "phase_sectors_summary.csv")
	if err := records.WriteFile(csvPath, axisOrder, result.Records); err != nil {
		return err
	}

	meta := records.RunMeta{
		ID:        result.RunID,
		Policy:    policy.Name(),
		CreatedAt: time.Now().UTC(),
		Points:    len(result.Records),
		Failures:  len(result.Failures),
	}
	if err := records.WriteMeta(filepath.Join(cfg.Paths.ResultsDir, "run_meta.json"), meta); err != nil {
		return err
	}

	fmt.Println(viz.Header.Render("scan complete"))
	fmt.Printf("  %s %s\n", viz.Subtle.Render("records:"), viz.Value.Render(strconv.Itoa(len(result.Records))))
	if len(result.Failures) > 0 {
		fmt.Printf("  %s %s\n", viz.Subtle.Render("failed points:"), viz.Warn.Render(strconv.Itoa(len(result.Failures))))
		for _, f := range result.Failures {
			fmt.Printf("    m_phi=%.4g k_rot=%.4g: %v\n", f.Coords["m_phi"], f.Coords["k_rot"], f.Err)
		}
	}
	fmt.Printf("  %s %s\n", viz.Subtle.Render("summary:"), csvPath)
	return nil
}

func runCrit(cmd *cobra.Command, args []string) error {
	if target < 0 || target > 1 {
		return fmt.Errorf("target %g outside [0, 1]", target)
	}

	recs, err := records.ReadDir(resultsDir, []string{axisName})
	if err != nil {
		return err
	}

	coords, means, stds := records.GroupMean(recs, axisName)
	if len(coords) == 0 {
		return fmt.Errorf("no records with a %s coordinate and a response in %s", axisName, resultsDir)
	}

	summary := records.CritSummary{
		Axis:   axisName,
		Coords: coords,
		Means:  means,
		Stds:   stds,
		Target: target,
	}
	if crit, ok := boundary.FindCrossing(coords, means, target); ok {
		summary.Crit = &crit
	}

	out := outFile
	if out == "" {
		out = filepath.Join(resultsDir, "crit_summary.json")
	}
	if err := records.WriteSummary(out, summary); err != nil {
		return err
	}

	fmt.Println(viz.RenderCrit(summary))
	fmt.Println(viz.PlotResponse(summary, critHeight))
	fmt.Printf("%s %s\n", viz.Subtle.Render("summary:"), out)
	return nil
}

func parseWhere(clauses []string) (map[string]float64, error) {
	out := make(map[string]float64, len(clauses))
	for _, c := range clauses {
		parts := strings.SplitN(c, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad --where clause %q, want coordinate=value", c)
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad --where value in %q: %w", c, err)
		}
		out[parts[0]] = v
	}
	return out, nil
}

func runMap(cmd *cobra.Command, args []string) error {
	recs, err := records.ReadDir(resultsDir, []string{xAxis, yAxis})
	if err != nil {
		return err
	}

	filters, err := parseWhere(where)
	if err != nil {
		return err
	}
	for name, v := range filters {
		recs = records.Filter(recs, name, v)
	}

	switch mapMode {
	case "sector":
		g, err := gridmap.BuildLabelGrid(recs, xAxis, yAxis)
		if err != nil {
			return err
		}
		fmt.Print(viz.RenderSectorMap(g))
		for _, c := range g.Conflicts {
			fmt.Println(viz.Warn.Render(fmt.Sprintf(
				"conflict at (%g, %g): kept %s, dropped %s", c.X, c.Y, c.Kept, c.Dropped)))
		}
	case "response":
		g, err := gridmap.BuildValueGrid(recs, xAxis, yAxis)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "%s\\%s", yAxis, xAxis)
		for _, x := range g.XS {
			fmt.Fprintf(w, "\t%.4g", x)
		}
		fmt.Fprintln(w)
		for yi := len(g.YS) - 1; yi >= 0; yi-- {
			fmt.Fprintf(w, "%.4g", g.YS[yi])
			for xi := range g.XS {
				if mean, ok := g.Cells[yi][xi].Mean(); ok {
					fmt.Fprintf(w, "\t%.3f", mean)
				} else {
					fmt.Fprintf(w, "\t—")
				}
			}
			fmt.Fprintln(w)
		}
		w.Flush()
	default:
		return fmt.Errorf("unknown map mode %q", mapMode)
	}
	return nil
}

func labelArg(s string) (sector.Label, error) {
	l := sector.Label(strings.ToUpper(s))
	if !l.Valid() {
		return "", fmt.Errorf("unknown sector %q", s)
	}
	return l, nil
}

func rowPoints(recs []records.Record, group, along string,
	extract func(coords []float64, labels []sector.Label) []float64) [][2]float64 {

	points := make([][2]float64, 0)
	for _, g := range records.DistinctValues(recs, group) {
		row := records.Filter(recs, group, g)
		coords, labels := records.LabelsAlong(row, along)
		for _, p := range extract(coords, labels) {
			points = append(points, [2]float64{g, p})
		}
	}
	return points
}

func writeAndReport(points [][2]float64, groupCol, critCol string) error {
	if outFile != "" {
		if err := records.WriteBoundary(outFile, groupCol, critCol, points); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", viz.Subtle.Render("boundary file:"), outFile)
	}
	return nil
}

func runBoundary(cmd *cobra.Command, args []string) error {
	from, err := labelArg(fromLabel)
	if err != nil {
		return err
	}
	to, err := labelArg(toLabel)
	if err != nil {
		return err
	}

	recs, err := records.ReadDir(resultsDir, []string{groupAxis, alongAxis})
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("no records with %s and %s coordinates in %s", groupAxis, alongAxis, resultsDir)
	}

	points := make([][2]float64, 0)
	for _, g := range records.DistinctValues(recs, groupAxis) {
		row := records.Filter(recs, groupAxis, g)
		coords, labels := records.LabelsAlong(row, alongAxis)
		crit, ok := boundary.TransitionMidpoint(coords, labels, from, to)
		if !ok {
			fmt.Printf("  %s=%g: %s\n", groupAxis, g, viz.Subtle.Render("no boundary for this row"))
			continue
		}
		fmt.Printf("  %s=%g: %s at %s=%s\n", groupAxis, g,
			viz.Value.Render(fmt.Sprintf("%s/%s", from, to)), alongAxis, viz.Value.Render(fmt.Sprintf("%.6f", crit)))
		points = append(points, [2]float64{g, crit})
	}

	fmt.Printf("%s %d boundary points\n", viz.Subtle.Render("found:"), len(points))
	return writeAndReport(points, groupAxis, alongAxis+"_crit")
}

func runPairs(cmd *cobra.Command, args []string) error {
	x, err := labelArg(fromLabel)
	if err != nil {
		return err
	}
	y, err := labelArg(toLabel)
	if err != nil {
		return err
	}

	recs, err := records.ReadDir(resultsDir, []string{groupAxis, pairsAlong})
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("no records with %s and %s coordinates in %s", groupAxis, pairsAlong, resultsDir)
	}

	points := rowPoints(recs, groupAxis, pairsAlong, func(coords []float64, labels []sector.Label) []float64 {
		return boundary.PairMidpoints(coords, labels, x, y)
	})

	fmt.Printf("%s %d boundary points\n", viz.Subtle.Render("found:"), len(points))
	return writeAndReport(points, groupAxis, pairsAlong+"_crit")
}

func runTrace(cmd *cobra.Command, args []string) error {
	recs, err := records.ReadDir(resultsDir, []string{groupAxis, alongAxis})
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("no records with %s and %s coordinates in %s", groupAxis, alongAxis, resultsDir)
	}

	points := rowPoints(recs, groupAxis, alongAxis, boundary.ChangePoints)

	fmt.Printf("%s %d change points\n", viz.Subtle.Render("found:"), len(points))
	return writeAndReport(points, groupAxis, alongAxis+"_crit")
}

func runShow(cmd *cobra.Command, args []string) error {
	archive, err := openArchive(archiveBackend, archivePath)
	if err != nil {
		return err
	}
	if archive == nil {
		return fmt.Errorf("show needs an archive backend")
	}
	defer archive.Close()

	entry, err := archive.Get(store.Key{MPhi: keyM, KRot: keyK, Q: keyQ, PhiIni: keyD})
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotTrajectory(entry, showHeight, 100))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	archive, err := openArchive(archiveBackend, archivePath)
	if err != nil {
		return err
	}
	if archive == nil {
		return fmt.Errorf("list needs an archive backend")
	}
	defer archive.Close()

	keys, err := archive.Keys()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "m_phi\tk_rot\tq\tphi_ini\tslug")
	for _, k := range keys {
		fmt.Fprintf(w, "%g\t%g\t%g\t%g\t%s\n", k.MPhi, k.KRot, k.Q, k.PhiIni, k.Slug())
	}
	return w.Flush()
}
