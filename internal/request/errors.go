package request

import (
	"errors"
	"fmt"

	dErrors "creditref/pkg/domain-errors"
)

// ValidationError reports a field rule rejecting its input. It is only
// returned in strict mode; the field keeps its previous value either way.
type ValidationError struct {
	Kind   PartialKind
	Field  Field
	Input  []any
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: rejected %v: %v", e.Kind, e.Field, e.Input, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// ErrorCode implements domainerrors.Coder.
func (e *ValidationError) ErrorCode() dErrors.Code {
	return dErrors.CodeValidation
}

// AsValidationError extracts a *ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// IsConstructionError reports whether err is a structural failure raised by a
// constructor or factory. These are returned regardless of mode.
func IsConstructionError(err error) bool {
	return dErrors.HasCode(err, dErrors.CodeInvariantViolation)
}

func constructionError(message string) error {
	return dErrors.New(dErrors.CodeInvariantViolation, message)
}
