package metrics

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// Summary is what one run reports.
type Summary struct {
	// OngoingOutages is the number of services currently in outage.
	OngoingOutages int

	// AlertsSent is the number of services alerted this run. Zero when
	// nothing crossed the threshold or delivery failed.
	AlertsSent int

	// RanAt is when the run evaluated the observation log.
	RanAt time.Time
}

// Write renders s in Prometheus text exposition format and writes it to
// path atomically, so the textfile collector never reads a partial file.
func Write(path string, s Summary) error {
	families := []*dto.MetricFamily{
		gauge("status_ongoing_outages",
			"Number of services currently in outage.",
			float64(s.OngoingOutages)),
		gauge("status_alerts_sent",
			"Number of services alerted by the most recent run.",
			float64(s.AlertsSent)),
		gauge("status_last_run_timestamp_seconds",
			"Unix time of the most recent completed run.",
			float64(s.RanAt.Unix())),
	}

	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".prom-*")
	if err != nil {
		return fmt.Errorf("metrics: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("metrics: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("metrics: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("metrics: replace %q: %w", path, err)
	}
	return nil
}

// gauge builds a single-sample gauge family.
func gauge(name, help string, value float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{
			{Gauge: &dto.Gauge{Value: proto.Float64(value)}},
		},
	}
}
