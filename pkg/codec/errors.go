package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingArgument is wrapped by ValidationError.
	ErrMissingArgument = errors.New("missing mandatory argument")

	ErrKeyNotFound   = errors.New("key not found")
	ErrInvalidLength = errors.New("invalid value length")
	ErrTypeMismatch  = errors.New("type mismatch")
	ErrMalformed     = errors.New("malformed encoding")
	ErrInvalidTag    = errors.New("invalid type tag")
)

// ValidationError reports a mandatory argument that was never set.
type ValidationError struct {
	Key string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingArgument, e.Key)
}

func (e *ValidationError) Unwrap() error { return ErrMissingArgument }

// DecodingError reports a value that cannot be read as the requested type.
// Err is one of ErrKeyNotFound, ErrInvalidLength, ErrTypeMismatch or ErrMalformed.
type DecodingError struct {
	Key string
	Tag TypeTag
	Err error
}

func (e *DecodingError) Error() string {
	if !e.Tag.Valid() {
		return fmt.Sprintf("decode: %v", e.Err)
	}
	if e.Key == "" {
		return fmt.Sprintf("decode %s: %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("decode %s %q: %v", e.Tag, e.Key, e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

func decodeErr(key string, tag TypeTag, err error) error {
	return &DecodingError{Key: key, Tag: tag, Err: err}
}

func lengthErr(key string, tag TypeTag, want, got int) error {
	return decodeErr(key, tag, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidLength, want, got))
}
