package blockedslot

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/audit"
	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timeparse"
)

type CreateBlockedSlotInput struct {
	MechanicID      uint
	Date            string
	StartTime       string
	DurationMinutes int
}

type CreateBlockedSlotOutput struct {
	BlockedID uint `json:"blocked_id"`
}

// CreateBlockedSlot places a provisional hold on a mechanic's calendar:
// one blocking row per grid unit, owned by no appointment. The hold
// either gets claimed by a booking or is reclaimed by the expiry sweep.
type CreateBlockedSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBlockedSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBlockedSlot {
	return &CreateBlockedSlot{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBlockedSlot) Execute(
	ctx context.Context,
	in CreateBlockedSlotInput,
) (*CreateBlockedSlotOutput, error) {

	if in.DurationMinutes <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidationError)
	}

	if _, err := uc.repo.GetMechanicByID(ctx, in.MechanicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	start, err := timeparse.Instant(in.Date, in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeMalformedTemporalInput)
	}

	rows := domain.HoldRows(in.MechanicID, start, in.DurationMinutes)
	if err := uc.repo.CreateBlockedSlots(ctx, rows); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "blocked_slot_created",
		Entity:   "blocked_time_slot",
		EntityID: &rows[0].ID,
	})

	return &CreateBlockedSlotOutput{BlockedID: rows[0].ID}, nil
}
