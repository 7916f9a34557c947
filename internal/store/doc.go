// Package store owns the two persistence concerns around the analytics
// engine: durable baselines (one JSON document per machine, replaced
// atomically and wholesale on rebuild) and the in-memory latest-report
// store with TTL eviction that the HTTP surface reads from.
package store
