// Package obslog reads the newline-delimited JSON observation log produced
// by the health checkers. Each line is one timestamped snapshot of every
// monitored service. A malformed line fails the whole read: reconstructing
// outages from a partial observation set risks false outage and recovery
// signals.
package obslog
