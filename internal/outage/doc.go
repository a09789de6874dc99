// Package outage reconstructs per-service outage intervals from the raw
// observation stream. Reconstruction is a pure chronological replay: it
// rebuilds every service's status transitions from scratch on each run and
// reports only outages that are still ongoing at evaluation time.
package outage
