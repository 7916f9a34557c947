// Package history persists the scan record the analytics engine learns
// from: an append-only JSON-lines file, one scan per line, oldest first.
// The baseline builder folds over the whole file; the regression window
// and indicator series are cut from its tail.
package history
