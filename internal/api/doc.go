// Package api serves the read-only REST surface over the latest analysis
// reports and learned baselines: /api/v1/health, /api/v1/machines and its
// per-machine sub-resources.
package api
