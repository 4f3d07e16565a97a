package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
	"google.golang.org/api/calendar/v3"
)

// Run executes one full resync pass. Events committed before a failure stay
// committed; there is no rollback and no retry of the current page. A
// recoverable auth failure is handed to the reauth handler before returning.
func (s *Service) Run(ctx context.Context) error {
	if !s.begin() {
		return ErrSyncInProgress
	}

	var accepted, skipped int
	if err := s.run(ctx, &accepted, &skipped); err != nil {
		s.finish(StateCancelled, err, accepted, skipped)

		var reauthErr *model.ReauthRequiredError
		if errors.As(err, &reauthErr) {
			s.logger.Infow("sync cancelled, reauthorization required")
			s.reauth.RequestAuthorization(reauthErr.AuthURL)
		} else {
			s.logger.Errorw("sync failed", "err", err)
		}

		return err
	}

	s.finish(StateCompleted, nil, accepted, skipped)
	s.logger.Infow("sync completed", "accepted", accepted, "skipped", skipped)
	return nil
}

func (s *Service) run(ctx context.Context, accepted, skipped *int) error {
	eventTypes, err := s.eventTypes.ListEventTypes(ctx, s.db)
	if err != nil {
		return fmt.Errorf("list event types: %w", err)
	}

	importIDs, err := s.events.GetImportIDs(ctx, s.db)
	if err != nil {
		return fmt.Errorf("get import ids: %w", err)
	}

	pageToken := ""
	for {
		page, err := s.feed.ListPage(ctx, s.calendarID, pageToken)
		if err != nil {
			return fmt.Errorf("fetch page: %w", err)
		}

		for _, item := range page.Items {
			ok, err := s.processItem(ctx, item, importIDs, &eventTypes)
			if err != nil {
				return err
			}

			if ok {
				*accepted++
			} else {
				*skipped++
			}
		}

		if page.NextPageToken == "" {
			return nil
		}
		pageToken = page.NextPageToken
	}
}

func (s *Service) processItem(
	ctx context.Context,
	item *calendar.Event,
	importIDs map[string]struct{},
	eventTypes *[]*model.EventType,
) (bool, error) {
	accept, lastUpdate, err := s.shouldAccept(ctx, item, importIDs)
	if err != nil {
		return false, err
	}
	if !accept {
		return false, nil
	}

	// Claimed before the next item is looked at, so a feed repeating an id
	// within one run cannot commit it twice.
	importIDs[item.ICalUID] = struct{}{}

	fields, err := s.normalize(item)
	if err != nil {
		return false, err
	}

	eventTypeID, err := s.resolveEventType(ctx, item.ColorId, eventTypes)
	if err != nil {
		return false, err
	}

	event := &model.Event{
		StartTS:        fields.startTS,
		EndTS:          fields.endTS,
		Title:          item.Summary,
		Description:    item.Description,
		Reminder1:      fields.reminders[0],
		Reminder2:      fields.reminders[1],
		Reminder3:      fields.reminders[2],
		RepeatInterval: fields.repeat.Interval,
		ImportID:       item.ICalUID,
		Flags:          fields.flags,
		RepeatLimit:    fields.repeat.Limit,
		RepeatRule:     fields.repeat.Rule,
		EventTypeID:    eventTypeID,
		LastUpdated:    lastUpdate,
	}

	if _, err := s.events.UpsertEvent(ctx, s.db, event); err != nil {
		return false, fmt.Errorf("upsert event %q: %w", event.ImportID, err)
	}

	return true, nil
}
