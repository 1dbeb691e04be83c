package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a source path does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a source that fails stage validation:
	// wrong extension, a path outside the stage's input directory, an
	// unsupported document format, or a malformed record schema.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtraction indicates document content could not be extracted:
	// a malformed archive, unparsable XML, or a failed page extraction.
	ErrExtraction = errors.New("extraction failed")

	// ErrDependencyMissing indicates an optional capability the stage
	// requires has no implementation configured.
	ErrDependencyMissing = errors.New("dependency missing")

	// ErrConfiguration indicates required configuration is absent,
	// such as a missing API credential.
	ErrConfiguration = errors.New("configuration error")
)
