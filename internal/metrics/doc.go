// Package metrics writes a Prometheus textfile-collector summary of each
// run. Batch jobs have no endpoint to scrape, so the run's outcome lands
// in a .prom file that node_exporter's textfile collector picks up.
package metrics
