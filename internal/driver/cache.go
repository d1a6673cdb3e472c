package driver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const stampFile = "stamp.json"

// Stamp records the outcome of the last successful build so a later
// invocation can report what is already on disk without rebuilding.
type Stamp struct {
	Mode      string    `json:"mode"`
	AppID     string    `json:"app_id"`
	Version   string    `json:"version"`
	Artifact  string    `json:"artifact"`
	Size      int64     `json:"size"`
	BuildTime time.Time `json:"build_time"`
	RunID     string    `json:"run_id"`
}

// loadStamp reads the build stamp from the state directory. A missing stamp
// returns (nil, nil).
func loadStamp(dir string) (*Stamp, error) {
	data, err := os.ReadFile(filepath.Join(dir, stampFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Stamp
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// saveStamp writes the build stamp to the state directory, creating it if
// needed.
func saveStamp(dir string, s *Stamp) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, stampFile), data, 0o644)
}
