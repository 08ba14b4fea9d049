package appointment

import (
	"context"
	"time"

	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timeparse"
)

type CheckSlotInput struct {
	MechanicID      uint
	Date            string
	StartTime       string
	DurationMinutes int
}

type CheckSlotOutput struct {
	Available         bool  `json:"available"`
	AppointmentsCount int64 `json:"appointments_count"`
	BlockedCount      int64 `json:"blocked_count"`
}

// CheckSlot is the advisory face of the conflict detector: the same
// counting the booking transaction runs under lock, minus the lock.
type CheckSlot struct {
	repo domain.Repository
}

func NewCheckSlot(repo domain.Repository) *CheckSlot {
	return &CheckSlot{repo: repo}
}

func (uc *CheckSlot) Execute(
	ctx context.Context,
	in CheckSlotInput,
) (*CheckSlotOutput, error) {

	if in.DurationMinutes <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidationError)
	}

	start, err := timeparse.Instant(in.Date, in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeMalformedTemporalInput)
	}
	end := start.Add(time.Duration(in.DurationMinutes) * time.Minute)

	cc, err := uc.repo.CountConflicts(ctx, in.MechanicID, start, end, 0)
	if err != nil {
		return nil, err
	}

	return &CheckSlotOutput{
		Available:         cc.Available(),
		AppointmentsCount: cc.Appointments,
		BlockedCount:      cc.Blocked,
	}, nil
}
