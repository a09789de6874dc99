// Package ledger persists the alert deduplication record: which ongoing
// outages have already been reported, and when. The ledger is the only
// state that survives between runs. I/O failures degrade rather than
// abort — the worst case is a duplicate alert, which beats losing the
// whole alerting run.
package ledger
