// Package alerts decides which ongoing outages warrant a new alert and
// delivers the resulting message to a Slack, Teams, or generic HTTP
// webhook. The decision is a pure function over the dedupe ledger and
// the reconstructed outage set; delivery is the only side effect and is
// confirmed before the caller commits the ledger.
package alerts
