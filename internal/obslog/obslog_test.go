package obslog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checks.ndjson")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestRead_Basic(t *testing.T) {
	path := writeLog(t, `{"timestamp":"2026-08-25T12:00:00Z","checks":[{"service":"api","status":"ok"},{"service":"db","status":"error","error":"refused"}]}
{"timestamp":"2026-08-25T12:01:00Z","checks":[{"service":"api","status":"ok"}]}
`)
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Read: got %d observations, want 2", len(got))
	}

	want := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	if !got[0].Timestamp.Equal(want) {
		t.Errorf("Timestamp: got %v, want %v", got[0].Timestamp, want)
	}
	if len(got[0].Checks) != 2 {
		t.Fatalf("Checks: got %d, want 2", len(got[0].Checks))
	}
	if c := got[0].Checks[1]; c.Service != "db" || c.Status != StatusError || c.Error != "refused" {
		t.Errorf("Checks[1]: got %+v", c)
	}
}

func TestRead_SkipsBlankLines(t *testing.T) {
	path := writeLog(t, `{"timestamp":"2026-08-25T12:00:00Z","checks":[]}

{"timestamp":"2026-08-25T12:01:00Z","checks":[]}
`)
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Read: got %d observations, want 2", len(got))
	}
}

func TestRead_MalformedLineIsFatal(t *testing.T) {
	path := writeLog(t, `{"timestamp":"2026-08-25T12:00:00Z","checks":[]}
{broken
`)
	_, err := Read(path)
	if err == nil {
		t.Fatal("Read: expected error for malformed line")
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Errorf("error should name line 2: %v", err)
	}
}

func TestRead_MissingTimestamp(t *testing.T) {
	path := writeLog(t, `{"checks":[{"service":"api","status":"ok"}]}
`)
	if _, err := Read(path); err == nil {
		t.Fatal("Read: expected error for record without timestamp")
	}
}

func TestRead_UnknownStatus(t *testing.T) {
	path := writeLog(t, `{"timestamp":"2026-08-25T12:00:00Z","checks":[{"service":"api","status":"degraded"}]}
`)
	if _, err := Read(path); err == nil {
		t.Fatal("Read: expected error for unknown status")
	}
}

func TestRead_EmptyServiceName(t *testing.T) {
	path := writeLog(t, `{"timestamp":"2026-08-25T12:00:00Z","checks":[{"service":"","status":"ok"}]}
`)
	if _, err := Read(path); err == nil {
		t.Fatal("Read: expected error for empty service name")
	}
}

func TestRead_DuplicateService(t *testing.T) {
	path := writeLog(t, `{"timestamp":"2026-08-25T12:00:00Z","checks":[{"service":"api","status":"ok"},{"service":"api","status":"error","error":"x"}]}
`)
	if _, err := Read(path); err == nil {
		t.Fatal("Read: expected error for duplicate service within one observation")
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.ndjson")); err == nil {
		t.Fatal("Read: expected error for missing file")
	}
}

func TestRead_EmptyFile(t *testing.T) {
	got, err := Read(writeLog(t, ""))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Read: got %d observations, want 0", len(got))
	}
}
