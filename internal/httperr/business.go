package httperr

import "errors"

// Stable business error codes surfaced to callers. Every transactional
// operation maps its failure to one of these before it reaches a handler.
const (
	CodeValidationError        = "validation_error"
	CodeSlotConflict           = "slot_conflict"
	CodeNotFound               = "not_found"
	CodeInvalidTransition      = "invalid_transition"
	CodeMalformedTemporalInput = "malformed_temporal_input"
	CodeStorageFailure         = "storage_failure"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code from a business error, or "" when the
// error is not one.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
