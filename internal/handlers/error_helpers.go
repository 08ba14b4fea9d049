package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
)

// writeError maps a usecase failure onto the HTTP surface. Anything that
// is not a recognized business code already triggered a rollback and
// surfaces as a generic storage failure.
func writeError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case httperr.CodeValidationError:
		httperr.BadRequest(c, httperr.CodeValidationError, "Missing or invalid booking fields.")
	case httperr.CodeMalformedTemporalInput:
		httperr.BadRequest(c, httperr.CodeMalformedTemporalInput, "Unrecognized date or time format.")
	case httperr.CodeSlotConflict:
		httperr.Conflict(c, httperr.CodeSlotConflict, "The requested time overlaps an existing booking.")
	case httperr.CodeNotFound:
		httperr.NotFound(c, httperr.CodeNotFound, "Resource not found.")
	case httperr.CodeInvalidTransition:
		httperr.Conflict(c, httperr.CodeInvalidTransition, "The appointment state does not allow this action.")
	default:
		httperr.Internal(c, httperr.CodeStorageFailure, "Could not complete the operation.")
	}
}
