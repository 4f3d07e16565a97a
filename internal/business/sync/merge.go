package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
	"google.golang.org/api/calendar/v3"
)

// shouldAccept decides whether a remote record gets committed. Non-confirmed
// records never do; for an already known import id the record must be
// strictly newer than the stored copy. Returns the remote update instant in
// unix millis for accepted records.
func (s *Service) shouldAccept(ctx context.Context, item *calendar.Event, importIDs map[string]struct{}) (bool, int64, error) {
	if item.Status != statusConfirmed {
		return false, 0, nil
	}

	updated, err := time.Parse(time.RFC3339, item.Updated)
	if err != nil {
		return false, 0, fmt.Errorf("parse updated %q: %w", item.Updated, err)
	}
	lastUpdate := updated.UnixMilli()

	if _, ok := importIDs[item.ICalUID]; ok {
		oldEvent, err := s.events.GetEventByImportID(ctx, s.db, item.ICalUID)
		if err != nil && !errors.Is(err, model.ErrNoRecord) {
			return false, 0, fmt.Errorf("get event by import id: %w", err)
		}
		if err == nil && oldEvent.LastUpdated >= lastUpdate {
			return false, 0, nil
		}
	}

	return true, lastUpdate, nil
}
