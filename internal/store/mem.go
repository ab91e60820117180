package store

import (
	"sync"

	"github.com/jmrivas/phasecrit/internal/sector"
	"github.com/jmrivas/phasecrit/internal/solver"
)

// Mem is an in-memory archive for tests and short-lived analysis.
type Mem struct {
	mu      sync.Mutex
	entries map[Key]*Entry
}

func NewMem() *Mem {
	return &Mem{entries: make(map[Key]*Entry)}
}

func (m *Mem) Put(t *solver.Trajectory, phiIni float64, label sector.Label) (Key, error) {
	e := entryFor(t, phiIni, label)
	m.mu.Lock()
	m.entries[e.Key] = e
	m.mu.Unlock()
	return e.Key, nil
}

func (m *Mem) Get(k Key) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[k]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (m *Mem) Keys() ([]Key, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]Key, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *Mem) Close() error { return nil }
