package mutate

import "errors"

var (
	// ErrNotFound reports an identifier or container that does not resolve.
	// The accompanying form is always the input form.
	ErrNotFound = errors.New("mutate: element not found")
	// ErrDuplicateIdentifier reports a rename to an identifier used by
	// another element.
	ErrDuplicateIdentifier = errors.New("mutate: identifier already in use")
	ErrInvalidIdentifier   = errors.New("mutate: identifier is required")
	// ErrInvalidKind reports an operation that does not apply to the
	// element it targets, or an unknown element kind.
	ErrInvalidKind     = errors.New("mutate: operation does not apply to element kind")
	ErrIndexOutOfRange = errors.New("mutate: index out of range")
)
