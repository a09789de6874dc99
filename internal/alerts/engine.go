package alerts

import (
	"sort"
	"time"

	"github.com/dhvll/status/internal/ledger"
	"github.com/dhvll/status/internal/outage"
)

// Decision is the outcome of evaluating the ledger against the current
// outage set.
type Decision struct {
	// Ledger is the cleaned ledger: entries for services no longer in
	// outage are removed, everything else is untouched. Not yet stamped
	// with this run's alerts — the caller does that after delivery is
	// confirmed.
	Ledger ledger.Ledger

	// ToAlert holds the outages to report this run: over threshold and
	// not already in the cleaned ledger. Sorted by service name.
	ToAlert []outage.Outage
}

// Decide computes which outages to alert on. It never mutates its inputs.
//
// An outage is reported when it has lasted at least threshold and its
// service has no ledger entry, meaning the ongoing incident has not been
// alerted yet. A ledger entry for a recovered service is dropped, so a
// later fresh outage of the same service alerts again.
func Decide(l ledger.Ledger, outages map[string]outage.Outage, threshold time.Duration) Decision {
	cleaned := make(ledger.Ledger, len(l))
	for svc, at := range l {
		if _, ongoing := outages[svc]; ongoing {
			cleaned[svc] = at
		}
	}

	var toAlert []outage.Outage
	for svc, o := range outages {
		if o.Duration < threshold {
			continue
		}
		if _, alerted := cleaned[svc]; alerted {
			continue
		}
		toAlert = append(toAlert, o)
	}
	sort.Slice(toAlert, func(i, j int) bool {
		return toAlert[i].Service < toAlert[j].Service
	})

	return Decision{Ledger: cleaned, ToAlert: toAlert}
}
