// Package engine orchestrates one machine's analysis cycle: baseline
// learning over the scan history, per-scan detection (anomalies,
// regressions, failure extrapolation, usage classification), and the
// composite health report the server publishes.
package engine
