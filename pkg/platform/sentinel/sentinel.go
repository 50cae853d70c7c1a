package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers
// return these (optionally wrapped) so services can translate them into
// domain errors:
//   - ErrNotFound: entity does not exist in store, or its TTL has lapsed
//   - ErrConflict: entity with the same identity already stored
//   - ErrUnavailable: backend or queue temporarily unable to accept work
//
// Field validation failures are not infrastructure facts; they live in the
// request package.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
