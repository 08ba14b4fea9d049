package appointment

import (
	"context"
	"sort"
	"time"

	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timeparse"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute renders the bookable grid for one date: every mechanic with a
// working window contributes its slots, and a slot is booked when an
// appointment or a blocked row sits exactly on its start. A date with no
// windows yields an empty list, not an error.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
	mechanicID *uint,
) ([]domain.SlotEntry, error) {

	day, err := timeparse.Date(date)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeMalformedTemporalInput)
	}
	dateKey := day.Format(timeparse.DateLayout)

	var windows []models.WorkingHours
	if mechanicID != nil {
		windows, err = uc.repo.ListWorkingHoursForMechanic(ctx, *mechanicID, dateKey)
	} else {
		windows, err = uc.repo.ListWorkingHoursForDate(ctx, dateKey)
	}
	if err != nil {
		return nil, err
	}

	dayStart := day
	dayEnd := day.Add(24 * time.Hour)

	entries := []domain.SlotEntry{}

	for _, wh := range windows {
		if wh.OnLeave || wh.StartTime == "" || wh.EndTime == "" {
			continue
		}

		windowStart, err := timeparse.Instant(dateKey, wh.StartTime)
		if err != nil {
			continue
		}
		windowEnd, err := timeparse.Instant(dateKey, wh.EndTime)
		if err != nil {
			continue
		}

		grid := domain.SlotGrid(
			windowStart,
			windowEnd,
			domain.DefaultSlotMinutes*time.Minute,
		)
		if len(grid) == 0 {
			continue
		}

		apps, err := uc.repo.ListAppointmentsForDay(
			ctx, wh.MechanicID, dayStart, dayEnd,
		)
		if err != nil {
			return nil, err
		}

		blocks, err := uc.repo.ListBlockedSlotsForDay(
			ctx, wh.MechanicID, dayStart, dayEnd,
		)
		if err != nil {
			return nil, err
		}

		occupied := make(map[int64]bool, len(apps)+len(blocks))
		for _, ap := range apps {
			occupied[ap.StartTime.Unix()] = true
		}
		for _, b := range blocks {
			occupied[b.SlotTime.Unix()] = true
		}

		for _, slot := range grid {
			status := domain.SlotAvailable
			if occupied[slot.Unix()] {
				status = domain.SlotBooked
			}
			entries = append(entries, domain.SlotEntry{
				Time:         slot.In(timezone.Location()).Format(timeparse.ClockLayout),
				MechanicID:   wh.MechanicID,
				MechanicName: wh.Mechanic.Name,
				Status:       status,
			})
		}
	}

	// Ascending by slot time; stable sort keeps mechanic enumeration
	// order for equal times.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time < entries[j].Time
	})

	return entries, nil
}
