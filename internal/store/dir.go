package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmrivas/phasecrit/internal/sector"
	"github.com/jmrivas/phasecrit/internal/solver"
)

// Dir archives each trajectory as one JSON blob named by the key's slug.
type Dir struct {
	mu   sync.Mutex
	base string
}

func NewDir(base string) (*Dir, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, err
	}
	return &Dir{base: base}, nil
}

func (d *Dir) path(k Key) string {
	return filepath.Join(d.base, "traj_"+k.Slug()+".json")
}

func (d *Dir) Put(t *solver.Trajectory, phiIni float64, label sector.Label) (Key, error) {
	e := entryFor(t, phiIni, label)

	d.mu.Lock()
	defer d.mu.Unlock()

	f, err := os.Create(d.path(e.Key))
	if err != nil {
		return Key{}, err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(e); err != nil {
		return Key{}, err
	}
	return e.Key, nil
}

func (d *Dir) Get(k Key) (*Entry, error) {
	data, err := os.ReadFile(d.path(k))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (d *Dir) Keys() ([]Key, error) {
	entries, err := os.ReadDir(d.base)
	if err != nil {
		return nil, err
	}

	keys := make([]Key, 0, len(entries))
	for _, ent := range entries {
		name := ent.Name()
		if ent.IsDir() || !strings.HasPrefix(name, "traj_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(d.base, name))
		if err != nil {
			continue
		}
		// Exact key floats live in the blob, not the slug.
		var e struct {
			Key Key `json:"key"`
		}
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		keys = append(keys, e.Key)
	}
	return keys, nil
}

func (d *Dir) Close() error { return nil }
