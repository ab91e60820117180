package records

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/jmrivas/phasecrit/internal/sector"
)

// Well-known optional columns. Anything else in the header is treated as a
// coordinate column.
const (
	colSector   = "sector"
	colResponse = "P_A"
	colNA       = "N_A"
	colNTotal   = "N_total"
	colTailMean = "phi_mean_tail"
	colTailStd  = "phi_std_tail"
	colTrajKey  = "traj_file"
)

func isReserved(name string) bool {
	switch name {
	case colSector, colResponse, colNA, colNTotal, colTailMean, colTailStd, colTrajKey:
		return true
	}
	return false
}

// ReadFile loads sweep records from one CSV file. Rows missing any of the
// required coordinate columns, or with unparsable values there, are skipped
// silently: they belong to a different analysis, not to corrupt input.
// Optional columns coerce-or-skip per field.
func ReadFile(path string, required []string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("records: reading %s: %w", path, err)
	}
	if len(rows) < 2 {
		return []Record{}, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, req := range required {
		if _, ok := col[req]; !ok {
			// The whole file lacks a mandatory coordinate; nothing in it
			// is relevant to this analysis.
			return []Record{}, nil
		}
	}

	field := func(row []string, name string) (string, bool) {
		i, ok := col[name]
		if !ok || i >= len(row) || row[i] == "" {
			return "", false
		}
		return row[i], true
	}

	out := make([]Record, 0, len(rows)-1)
rowLoop:
	for _, row := range rows[1:] {
		rec := Record{Coords: make(map[string]float64)}

		for _, req := range required {
			s, ok := field(row, req)
			if !ok {
				continue rowLoop
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				continue rowLoop
			}
			rec.Coords[req] = v
		}

		// Remaining coordinate columns are optional; keep what parses.
		for name, i := range col {
			if isReserved(name) {
				continue
			}
			if _, have := rec.Coords[name]; have {
				continue
			}
			if i >= len(row) || row[i] == "" {
				continue
			}
			if v, err := strconv.ParseFloat(row[i], 64); err == nil {
				rec.Coords[name] = v
			}
		}

		if s, ok := field(row, colSector); ok {
			if l := sector.Label(s); l.Valid() {
				rec.Sector = l
			}
		}
		if s, ok := field(row, colResponse); ok {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				rec.Response = &v
			}
		}
		if s, ok := field(row, colNA); ok {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				rec.NA = v
			}
		}
		if s, ok := field(row, colNTotal); ok {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				rec.NTotal = v
			}
		}
		if s, ok := field(row, colTailMean); ok {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				rec.TailMean = v
			}
		}
		if s, ok := field(row, colTailStd); ok {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				rec.TailStd = v
			}
		}
		if s, ok := field(row, colTrajKey); ok {
			rec.TrajKey = s
		}

		out = append(out, rec)
	}

	return out, nil
}

// ReadDir merges records from every *.csv file in dir, in name order.
// Files without the required coordinates contribute nothing; duplicates
// across files are kept and averaged downstream.
func ReadDir(dir string, required []string) ([]Record, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	all := make([]Record, 0)
	for _, path := range matches {
		recs, err := ReadFile(path, required)
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)
	}
	return all, nil
}

// WriteFile writes sweep records with the given coordinate column order.
// Coordinates are formatted to round-trip exactly, so downstream grid
// assembly can match cells by equality.
func WriteFile(path string, axes []string, recs []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append(append([]string{}, axes...),
		colSector, colTailMean, colTailStd, colTrajKey)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, rec := range recs {
		row := make([]string, 0, len(header))
		for _, ax := range axes {
			v, ok := rec.Coord(ax)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		row = append(row,
			string(rec.Sector),
			strconv.FormatFloat(rec.TailMean, 'g', -1, 64),
			strconv.FormatFloat(rec.TailStd, 'g', -1, 64),
			rec.TrajKey,
		)
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// WriteBoundary writes one row per extracted boundary point.
func WriteBoundary(path string, groupCol, critCol string, points [][2]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{groupCol, critCol}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p[0], 'g', -1, 64),
			strconv.FormatFloat(p[1], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
