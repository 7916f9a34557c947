// Package collect pulls scans from a Prometheus text-format metrics
// endpoint. Configured metric families are summed across their label sets
// and routed either into category samples (severity scores the analytics
// engine compares against the baseline) or raw indicator readings (inputs
// to failure extrapolation).
//
// Collection is the only piece of this system that touches the OS metric
// surface, and it does so indirectly: whatever exporter serves the
// endpoint (node_exporter, windows_exporter, a custom textfile) owns the
// actual counters.
package collect
