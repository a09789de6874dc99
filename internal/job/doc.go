// Package job wires one alerting run end to end: read the observation
// log, reconstruct ongoing outages, decide against the dedupe ledger,
// dispatch the webhook, and commit the ledger exactly once. Watch mode
// repeats the run whenever the observation log changes.
package job
