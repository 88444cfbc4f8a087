package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// DefaultProfileName is the calibration cache file placed in the user's
// home directory.
const DefaultProfileName = ".primebench_calibration.json"

// Profile captures the outcome of a calibration sweep. A cached profile is
// only trusted on the hardware it was produced on.
type Profile struct {
	Workers   int       `json:"workers"`
	NumCPU    int       `json:"num_cpu"`
	GoVersion string    `json:"go_version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewProfile builds a profile for the current machine.
func NewProfile(workers int) Profile {
	return Profile{
		Workers:   workers,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
		Timestamp: time.Now(),
	}
}

// MatchesHardware reports whether the profile was produced on hardware
// equivalent to the current machine.
func (p Profile) MatchesHardware() bool {
	return p.NumCPU == runtime.NumCPU()
}

// DefaultProfilePath returns the default cache location, or an error when
// no home directory can be resolved.
func DefaultProfilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, DefaultProfileName), nil
}

// SaveProfile writes the profile as JSON to the given path, creating parent
// directories as needed.
func SaveProfile(p Profile, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// LoadProfile reads a profile from the given path. A missing file is
// reported via os.IsNotExist on the returned error.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decoding profile %s: %w", path, err)
	}
	return p, nil
}
