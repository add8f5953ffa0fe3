package request

import "errors"

var (
	// ErrNoKeyPair is returned when a request is signed without a key pair.
	ErrNoKeyPair = errors.New("no key pair")
	// ErrNotSigned is returned when the signed form of an unsigned request is asked for.
	ErrNotSigned = errors.New("request is not signed")
	// ErrSigningFailed wraps errors returned by a Signer.
	ErrSigningFailed = errors.New("signing failed")
	// ErrInvalidSignature is returned by VerifySignature when the signature does not match.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrMalformedRequest is returned when a signed buffer cannot be parsed.
	ErrMalformedRequest = errors.New("malformed request")
)
