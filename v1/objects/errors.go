package objects

import "errors"

// Common object codec errors
var (
	// ErrNilObject is returned when encoding a nil object.
	ErrNilObject = errors.New("objects: nil object")

	// ErrMissingCollection is returned when an object has no collection
	// name.
	ErrMissingCollection = errors.New("objects: missing collection")

	// ErrInvalidEnvelope is returned when a wire envelope field has an
	// unexpected shape.
	ErrInvalidEnvelope = errors.New("objects: invalid envelope")
)

// IsInvalidEnvelopeError checks if the error came from a malformed wire
// envelope.
func IsInvalidEnvelopeError(err error) bool {
	return errors.Is(err, ErrInvalidEnvelope)
}
