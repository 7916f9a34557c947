package analytics

import "errors"

// ErrInsufficientData marks a normal, non-exceptional refusal: the input
// does not carry enough samples, history, or time span to compute a result.
// Callers should degrade to "no opinion", not abort.
var ErrInsufficientData = errors.New("insufficient data")

// ErrConfig marks a nonsensical caller-supplied threshold or weight,
// rejected at construction time.
var ErrConfig = errors.New("configuration out of range")
