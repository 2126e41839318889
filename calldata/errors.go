package calldata

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedSignature = errors.New("malformed function signature")
	ErrEncodingMismatch   = errors.New("arguments do not match declared parameters")
)

// EncodingError is returned by every failing encoder call. It wraps one of the sentinel errors above.
type EncodingError struct {
	Signature string
	Err       error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode call to %q: %v", e.Signature, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

func malformed(signature string, format string, args ...any) error {
	return &EncodingError{
		Signature: signature,
		Err:       fmt.Errorf("%w: %s", ErrMalformedSignature, fmt.Sprintf(format, args...)),
	}
}

func mismatch(signature string, format string, args ...any) error {
	return &EncodingError{
		Signature: signature,
		Err:       fmt.Errorf("%w: %s", ErrEncodingMismatch, fmt.Sprintf(format, args...)),
	}
}
