package gridmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmrivas/phasecrit/internal/records"
	"github.com/jmrivas/phasecrit/internal/sector"
)

func fp(v float64) *float64 { return &v }

func rec(x, y float64, l sector.Label, resp *float64) records.Record {
	return records.Record{
		Coords:   map[string]float64{"k_rot": x, "m_phi": y},
		Sector:   l,
		Response: resp,
	}
}

func TestBuildValueGrid(t *testing.T) {
	recs := []records.Record{
		rec(0.1, 0.4, sector.A, fp(1.0)),
		rec(0.2, 0.4, sector.C, fp(0.0)),
		rec(0.1, 0.5, sector.A, fp(0.8)),
		// Duplicate cell: averaged with the first.
		rec(0.1, 0.4, sector.A, fp(0.0)),
	}

	g, err := BuildValueGrid(recs, "k_rot", "m_phi")
	require.NoError(t, err)

	assert.Equal(t, []float64{0.1, 0.2}, g.XS)
	assert.Equal(t, []float64{0.4, 0.5}, g.YS)

	v, ok := g.Cells[0][0].Mean()
	require.True(t, ok)
	assert.Equal(t, 0.5, v) // (1.0 + 0.0) / 2

	v, ok = g.Cells[0][1].Mean()
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	// (0.2, 0.5) was never scanned: missing, not zero.
	_, ok = g.Cells[1][1].Mean()
	assert.False(t, ok)
}

func TestBuildValueGridSkipsUnusable(t *testing.T) {
	recs := []records.Record{
		// No response.
		rec(0.1, 0.4, sector.A, nil),
		// Missing the y coordinate.
		{Coords: map[string]float64{"k_rot": 0.1}, Response: fp(1.0)},
	}
	_, err := BuildValueGrid(recs, "k_rot", "m_phi")
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestBuildLabelGrid(t *testing.T) {
	recs := []records.Record{
		rec(0.1, 0.4, sector.A, nil),
		rec(0.2, 0.4, sector.C, nil),
		rec(0.1, 0.5, sector.B, nil),
	}

	g, err := BuildLabelGrid(recs, "k_rot", "m_phi")
	require.NoError(t, err)

	assert.Equal(t, sector.A, g.Cells[0][0])
	assert.Equal(t, sector.C, g.Cells[0][1])
	assert.Equal(t, sector.B, g.Cells[1][0])
	assert.Equal(t, sector.Label(""), g.Cells[1][1], "unscanned cell stays empty")
	assert.Empty(t, g.Conflicts)
}

func TestBuildLabelGridConflicts(t *testing.T) {
	recs := []records.Record{
		rec(0.1, 0.4, sector.A, nil),
		rec(0.1, 0.4, sector.C, nil), // disagrees
		rec(0.1, 0.4, sector.A, nil), // agrees, no conflict
	}

	g, err := BuildLabelGrid(recs, "k_rot", "m_phi")
	require.NoError(t, err)

	// First-seen label kept, disagreement surfaced.
	assert.Equal(t, sector.A, g.Cells[0][0])
	require.Len(t, g.Conflicts, 1)
	assert.Equal(t, sector.A, g.Conflicts[0].Kept)
	assert.Equal(t, sector.C, g.Conflicts[0].Dropped)
}

func TestBuildLabelGridEmpty(t *testing.T) {
	_, err := BuildLabelGrid(nil, "k_rot", "m_phi")
	assert.ErrorIs(t, err, ErrNoRecords)
}
