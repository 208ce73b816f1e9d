package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core flows. Handlers map these to HTTP statuses;
// services wrap them with context via fmt.Errorf and %w.
var (
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed or missing required input.
	ErrValidation = errors.New("validation failed")

	// ErrPaymentVerification indicates a payment signature mismatch.
	// The booking stays in its prior state; the caller may retry with a
	// corrected signature.
	ErrPaymentVerification = errors.New("payment verification failed")

	// ErrForbidden indicates the authenticated user may not access the resource.
	ErrForbidden = errors.New("forbidden")
)

// GatewayError indicates the payment processor call failed or was rejected.
// Kept distinct from ErrPaymentVerification so clients can tell
// "service unavailable" from "payment could not be verified".
type GatewayError struct {
	Op         string // gateway operation, e.g. "create_order"
	StatusCode int    // HTTP status from the processor, 0 if unreachable
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("payment gateway %s failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NotFound wraps ErrNotFound with the entity name.
func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

// Validation wraps ErrValidation with a reason.
func Validation(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrValidation)
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is (or wraps) ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
