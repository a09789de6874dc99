package outage

import (
	"sort"
	"time"

	"github.com/dhvll/status/internal/obslog"
)

// unknownError replaces an absent or empty error message on outage onset.
const unknownError = "Unknown error"

// Outage is one ongoing outage for a single service.
type Outage struct {
	Service   string
	StartTime time.Time
	Duration  time.Duration

	// Error is the failure detail from the observation that started the
	// outage. Later observations in the same failure run never replace it:
	// the onset message describes what broke, follow-ups are usually
	// cascade noise.
	Error string

	// IsOngoing is true for every outage Reconstruct returns; resolved
	// outages are dropped during replay.
	IsOngoing bool
}

// Reconstruct replays observations in chronological order and returns the
// currently ongoing outage per service, keyed by service name.
//
// Observations may arrive in any order; Reconstruct sorts a copy before
// replaying, so shuffled input yields identical output. A service appears
// in the result iff its latest status is "error". StartTime is the instant
// of the observation that transitioned the service into error, and each
// Duration is now minus StartTime.
//
// now is passed explicitly so callers (and tests) control the clock.
func Reconstruct(observations []obslog.Observation, now time.Time) map[string]Outage {
	sorted := make([]obslog.Observation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	lastStatus := make(map[string]string)
	outages := make(map[string]Outage)

	for _, obs := range sorted {
		for _, c := range obs.Checks {
			switch c.Status {
			case obslog.StatusError:
				if lastStatus[c.Service] == obslog.StatusError {
					// Continuation: start time and first error message stand.
					continue
				}
				msg := c.Error
				if msg == "" {
					msg = unknownError
				}
				outages[c.Service] = Outage{
					Service:   c.Service,
					StartTime: obs.Timestamp,
					Error:     msg,
					IsOngoing: true,
				}
				lastStatus[c.Service] = obslog.StatusError

			case obslog.StatusOK:
				if lastStatus[c.Service] == obslog.StatusError {
					delete(outages, c.Service)
				}
				lastStatus[c.Service] = obslog.StatusOK
			}
		}
	}

	for svc, o := range outages {
		o.Duration = now.Sub(o.StartTime)
		outages[svc] = o
	}
	return outages
}
