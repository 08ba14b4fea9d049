package appointment

import "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// ===============================
// Transitions
// ===============================

// pending -> {confirmed, canceled}
// confirmed -> {completed, canceled}
// completed and canceled are terminal.

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

// CanCancel allows any non-terminal state. Canceling an already canceled
// appointment is treated as idempotent by the caller, not rejected here.
func CanCancel(current Status) error {
	if current == StatusCompleted {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
