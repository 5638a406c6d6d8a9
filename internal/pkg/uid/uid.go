// Package uid provides ID generators behind small interfaces so callers can
// swap implementations in tests.
package uid

// NumberID generates unique numeric identifiers.
type NumberID interface {
	// Generate returns a new unique int64 ID.
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	// Generate returns a new unique string ID.
	Generate() string
}
