package records

import (
	"encoding/json"
	"os"
	"time"
)

// RunMeta is the JSON sidecar written next to a sweep's record file.
type RunMeta struct {
	ID        string    `json:"id"`
	Policy    string    `json:"policy"`
	CreatedAt time.Time `json:"created_at"`
	Points    int       `json:"points"`
	Failures  int       `json:"failures"`
}

func WriteMeta(path string, meta RunMeta) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func ReadMeta(path string) (*RunMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var meta RunMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// CritSummary captures a continuous boundary extraction completely enough to
// reconstruct the response figure without recomputation. Crit is nil when no
// crossing was found in the scanned range — a valid outcome, not an error.
type CritSummary struct {
	Axis   string    `json:"axis"`
	Coords []float64 `json:"coords"`
	Means  []float64 `json:"means"`
	Stds   []float64 `json:"stds"`
	Target float64   `json:"target"`
	Crit   *float64  `json:"crit"`
}

func WriteSummary(path string, s CritSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func ReadSummary(path string) (*CritSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s CritSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
