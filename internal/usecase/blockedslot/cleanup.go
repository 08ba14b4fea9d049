package blockedslot

import (
	"context"
	"time"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/audit"
	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timezone"
)

// Holds older than this that never got attached to an appointment are
// abandoned booking flows; the sweep returns their capacity.
const ProvisionalGracePeriod = 10 * time.Minute

type CleanupExpiredBlocksOutput struct {
	DeletedCount int64 `json:"deleted_count"`
}

type CleanupExpiredBlocks struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCleanupExpiredBlocks(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CleanupExpiredBlocks {
	return &CleanupExpiredBlocks{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CleanupExpiredBlocks) Execute(
	ctx context.Context,
) (*CleanupExpiredBlocksOutput, error) {

	cutoff := timezone.Now().Add(-ProvisionalGracePeriod)

	deleted, err := uc.repo.DeleteExpiredProvisionalBlocks(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	if deleted > 0 {
		uc.audit.Dispatch(audit.Event{
			Action:   "blocked_slots_expired",
			Entity:   "blocked_time_slot",
			Metadata: map[string]int64{"deleted_count": deleted},
		})
	}

	return &CleanupExpiredBlocksOutput{DeletedCount: deleted}, nil
}
