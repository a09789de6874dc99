package obslog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Service status values as they appear in the observation log.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// maxLineBytes bounds a single observation record. An observation covering
// a few hundred services fits comfortably; anything larger is corrupt.
const maxLineBytes = 1 << 20

// Check is the health result for one service within an observation.
type Check struct {
	Service string `json:"service"`
	Status  string `json:"status"`

	// Error carries the failure detail. Only meaningful when Status is
	// "error"; ignored otherwise.
	Error string `json:"error,omitempty"`
}

// Observation is one timestamped snapshot of all monitored services.
type Observation struct {
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Read loads every observation from the log at path. The log is append-only
// newline-delimited JSON, one Observation per line; blank lines are skipped.
// Records may appear in any order — callers sort before replaying.
//
// Any malformed or invalid line aborts the read with an error naming the
// line number.
func Read(path string) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obslog: open %q: %w", path, err)
	}
	defer f.Close()

	var observations []Observation

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}

		var obs Observation
		if err := json.Unmarshal(raw, &obs); err != nil {
			return nil, fmt.Errorf("obslog: %s:%d: decode record: %w", path, line, err)
		}
		if err := validate(obs); err != nil {
			return nil, fmt.Errorf("obslog: %s:%d: %w", path, line, err)
		}
		observations = append(observations, obs)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obslog: read %q: %w", path, err)
	}

	return observations, nil
}

// validate checks structural constraints on a single decoded observation.
func validate(obs Observation) error {
	if obs.Timestamp.IsZero() {
		return fmt.Errorf("record has no timestamp")
	}
	seen := make(map[string]struct{}, len(obs.Checks))
	for i, c := range obs.Checks {
		if c.Service == "" {
			return fmt.Errorf("checks[%d]: service name is empty", i)
		}
		if c.Status != StatusOK && c.Status != StatusError {
			return fmt.Errorf("checks[%d] %q: unknown status %q", i, c.Service, c.Status)
		}
		if _, dup := seen[c.Service]; dup {
			return fmt.Errorf("checks[%d]: duplicate service %q", i, c.Service)
		}
		seen[c.Service] = struct{}{}
	}
	return nil
}
