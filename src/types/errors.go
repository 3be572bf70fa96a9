package types

import (
	"errors"
	"fmt"
)

// Domain errors returned by the reservation engine and mapped to HTTP
// statuses at the handler boundary. None of these are fatal; every
// failure is scoped to a single request.
var (
	ErrNotFound         = errors.New("experience not found")
	ErrInvalidSlot      = errors.New("slot not available")
	ErrCapacityExceeded = errors.New("not enough spots available")
	ErrConflict         = errors.New("booking reference conflict")
)

// PromoRejectionError carries the human-readable reason a promo code was
// refused. The validation endpoint returns the reason verbatim; the booking
// path treats any rejection as a zero discount.
type PromoRejectionError struct {
	Reason string
}

func (e *PromoRejectionError) Error() string {
	return e.Reason
}

func PromoRejection(format string, args ...any) *PromoRejectionError {
	return &PromoRejectionError{Reason: fmt.Sprintf(format, args...)}
}
