package model

import "errors"

// Sentinel errors shared by stores, services and transports. Wrap them with
// fmt.Errorf("...: %w", ErrX) and classify with errors.Is.
var (
	// ErrValidation reports malformed or mutually exclusive input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound reports that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a duplicate identifier.
	ErrConflict = errors.New("conflict")
	// ErrResolution reports a geocoding provider failure or an empty result.
	ErrResolution = errors.New("location resolution failed")
	// ErrPersistence reports a store-layer failure.
	ErrPersistence = errors.New("persistence failure")
)
