// Package config loads and watches the pulsehealth configuration file.
//
// Load(path) reads the YAML file, applies defaults (1m collection, z 3.0,
// 20% drift, 14-day learning over ≥5 scans, 12-scan window, port 8080,
// 10m report TTL), then validates required fields and enums. Thresholds
// that make no sense (non-positive intervals, negative weights, unknown
// auth or webhook modes) are rejected here, at the boundary, so the
// analytics constructors only ever see sane values.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. It handles the rename→create
// pattern used by atomic-save editors by re-adding the watch afterwards.
package config
