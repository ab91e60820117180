package store

import (
	"database/sql"
	"encoding/json"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jmrivas/phasecrit/internal/sector"
	"github.com/jmrivas/phasecrit/internal/solver"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS trajectories (
	m_phi   REAL NOT NULL,
	k_rot   REAL NOT NULL,
	q       REAL NOT NULL,
	phi_ini REAL NOT NULL,
	sector  TEXT NOT NULL,
	blob    TEXT NOT NULL,
	PRIMARY KEY (m_phi, k_rot, q, phi_ini)
);`

// SQLite archives trajectories in a single embedded database file. Suited
// to the fine scans, where tens of thousands of blobs would swamp a
// directory listing.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Put(t *solver.Trajectory, phiIni float64, label sector.Label) (Key, error) {
	e := entryFor(t, phiIni, label)

	blob, err := json.Marshal(e)
	if err != nil {
		return Key{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO trajectories (m_phi, k_rot, q, phi_ini, sector, blob) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Key.MPhi, e.Key.KRot, e.Key.Q, e.Key.PhiIni, string(e.Sector), string(blob),
	)
	if err != nil {
		return Key{}, err
	}
	return e.Key, nil
}

func (s *SQLite) Get(k Key) (*Entry, error) {
	var blob string
	err := s.db.QueryRow(
		`SELECT blob FROM trajectories WHERE m_phi = ? AND k_rot = ? AND q = ? AND phi_ini = ?`,
		k.MPhi, k.KRot, k.Q, k.PhiIni,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var e Entry
	if err := json.Unmarshal([]byte(blob), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLite) Keys() ([]Key, error) {
	rows, err := s.db.Query(`SELECT m_phi, k_rot, q, phi_ini FROM trajectories ORDER BY m_phi, k_rot, q, phi_ini`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]Key, 0)
	for rows.Next() {
		var k Key
		if err := rows.Scan(&k.MPhi, &k.KRot, &k.Q, &k.PhiIni); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
