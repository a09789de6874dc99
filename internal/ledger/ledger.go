package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Ledger maps a service name to the time its ongoing outage was last
// alerted. An entry exists only while the outage it covers is ongoing;
// the decision engine removes entries for recovered services so a fresh
// outage of the same service alerts again.
type Ledger map[string]time.Time

// On disk the ledger is a single JSON object of service name to
// milliseconds since epoch.

// MarshalJSON encodes the ledger in its on-disk form.
func (l Ledger) MarshalJSON() ([]byte, error) {
	raw := make(map[string]int64, len(l))
	for svc, t := range l {
		raw[svc] = t.UnixMilli()
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes the on-disk form.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var raw map[string]int64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Ledger, len(raw))
	for svc, ms := range raw {
		out[svc] = time.UnixMilli(ms)
	}
	*l = out
	return nil
}

// Load reads the ledger at path. An absent file is not an error — it
// yields an empty ledger. Any other failure returns an empty ledger
// alongside the error; callers log it and carry on.
func Load(path string) (Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Ledger{}, nil
		}
		return Ledger{}, fmt.Errorf("ledger: read %q: %w", path, err)
	}

	var l Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return Ledger{}, fmt.Errorf("ledger: parse %q: %w", path, err)
	}
	return l, nil
}

// Save writes the ledger to path atomically: the new content lands in a
// temp file in the same directory and replaces the old file via rename,
// so a crash mid-write never leaves a half-written ledger behind.
func (l Ledger) Save(path string) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("ledger: encode: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ledger: create dir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*")
	if err != nil {
		return fmt.Errorf("ledger: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("ledger: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ledger: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("ledger: replace %q: %w", path, err)
	}
	return nil
}
