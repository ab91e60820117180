package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmrivas/phasecrit/internal/sector"
	"github.com/jmrivas/phasecrit/internal/solver"
)

// ErrNotFound indicates no archived trajectory exists for the key.
var ErrNotFound = errors.New("store: trajectory not found")

// Key identifies a grid point by its parameter tuple. Identity is the tuple
// itself; the filesystem-safe encoding is a derived name, not the identity.
type Key struct {
	MPhi   float64 `json:"m_phi"`
	KRot   float64 `json:"k_rot"`
	Q      float64 `json:"q"`
	PhiIni float64 `json:"phi_ini"`
}

// KeyFor derives the archive key from a trajectory's parameters and its
// initial phase.
func KeyFor(params map[string]float64, phiIni float64) Key {
	return Key{
		MPhi:   params["m_phi"],
		KRot:   params["k_rot"],
		Q:      params["q"],
		PhiIni: phiIni,
	}
}

var slugger = strings.NewReplacer(".", "p", "-", "n", "+", "")

// Slug encodes the key into a filesystem-safe name, e.g.
// m0p4000_k0p3836_q1p00_d2p8274.
func (k Key) Slug() string {
	raw := fmt.Sprintf("m%.4f_k%.4f_q%.2f_d%.4f", k.MPhi, k.KRot, k.Q, k.PhiIni)
	return slugger.Replace(raw)
}

// Entry is an archived trajectory blob: everything needed to re-classify or
// plot the grid point without re-integrating.
type Entry struct {
	Key    Key                `json:"key"`
	A      []float64          `json:"a"`
	Phi    []float64          `json:"phi"`
	PhiDot []float64          `json:"phidot"`
	Params map[string]float64 `json:"params"`
	Sector sector.Label       `json:"sector"`
}

// Archive persists trajectories keyed by parameter tuple. Implementations
// must serialize concurrent Puts.
type Archive interface {
	Put(t *solver.Trajectory, phiIni float64, label sector.Label) (Key, error)
	Get(k Key) (*Entry, error)
	Keys() ([]Key, error)
	Close() error
}

func entryFor(t *solver.Trajectory, phiIni float64, label sector.Label) *Entry {
	return &Entry{
		Key:    KeyFor(t.Params, phiIni),
		A:      t.A,
		Phi:    t.Phi,
		PhiDot: t.PhiDot,
		Params: t.Params,
		Sector: label,
	}
}
