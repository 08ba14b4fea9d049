package blockedslot

import (
	"context"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/audit"
	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
)

type DeleteBlockedSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBlockedSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteBlockedSlot {
	return &DeleteBlockedSlot{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteBlockedSlot) Execute(ctx context.Context, id uint) error {
	if err := uc.repo.DeleteBlockedSlot(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "blocked_slot_deleted",
		Entity:   "blocked_time_slot",
		EntityID: &id,
	})

	return nil
}
