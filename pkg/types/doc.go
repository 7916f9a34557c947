// Package types defines the shared value records exchanged between the
// analytics engine, its stores, and the HTTP/WebSocket surface. These are
// plain serializable records — the analytics core computes them, the API
// layer marshals them as-is.
package types
