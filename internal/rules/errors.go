package rules

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable indicates that the entry store (or holiday table) could
// not be reached or timed out. A failed conflict check must surface this
// instead of reporting "no conflicts".
var ErrStoreUnavailable = errors.New("entry store unavailable")

// Violation is a business-rule rejection. The reason is safe to show to the
// caller, who can fix the input and retry.
type Violation struct {
	Reason string
}

func (v *Violation) Error() string {
	return v.Reason
}

func Violationf(format string, args ...any) *Violation {
	return &Violation{Reason: fmt.Sprintf(format, args...)}
}

// AsViolation unwraps err into a *Violation if it is one.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// StoreFailure wraps a store-level error so callers can distinguish it from a
// validation outcome with errors.Is(err, ErrStoreUnavailable).
func StoreFailure(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
