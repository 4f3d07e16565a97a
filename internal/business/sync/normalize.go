package sync

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
	"google.golang.org/api/calendar/v3"
)

type normalizedFields struct {
	startTS   int64
	endTS     int64
	flags     int
	reminders [3]int
	repeat    model.RepeatRule
}

// boundary is an event edge: either a whole day or a concrete instant.
type boundary struct {
	allDay bool
	ts     int64
}

// parseBoundary maps the remote "date or dateTime" pair into the two-case
// boundary. All-day dates are anchored at hour 1 local time so that the
// resulting instant stays on the right calendar day across DST shifts.
func parseBoundary(dt *calendar.EventDateTime) (boundary, error) {
	switch {
	case dt == nil:
		return boundary{}, errors.New("missing event boundary")
	case dt.Date != "":
		day, err := time.ParseInLocation("2006-01-02", dt.Date, time.Local)
		if err != nil {
			return boundary{}, fmt.Errorf("parse date %q: %w", dt.Date, err)
		}
		return boundary{allDay: true, ts: day.Add(time.Hour).Unix()}, nil
	case dt.DateTime != "":
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return boundary{}, fmt.Errorf("parse dateTime %q: %w", dt.DateTime, err)
		}
		return boundary{ts: t.Unix()}, nil
	default:
		return boundary{}, errors.New("event boundary has neither date nor dateTime")
	}
}

// normalize converts raw remote fields into local value semantics. Only
// called on records merge decision already accepted.
func (s *Service) normalize(item *calendar.Event) (*normalizedFields, error) {
	start, err := parseBoundary(item.Start)
	if err != nil {
		return nil, fmt.Errorf("event %q start: %w", item.ICalUID, err)
	}

	end, err := parseBoundary(item.End)
	if err != nil {
		return nil, fmt.Errorf("event %q end: %w", item.ICalUID, err)
	}

	res := &normalizedFields{
		startTS:   start.ts,
		endTS:     end.ts,
		reminders: popupReminders(item.Reminders),
	}

	if start.allDay {
		res.flags |= model.FlagAllDay
		// The feed's all-day end date is exclusive; shift it back onto the
		// last included day.
		if res.endTS > res.startTS {
			res.endTS -= daySeconds
		}
	}

	repeat, err := s.rules.Parse(recurrenceFragment(item.Recurrence), res.startTS)
	if err != nil {
		return nil, fmt.Errorf("event %q recurrence: %w", item.ICalUID, err)
	}
	res.repeat = repeat

	return res, nil
}

// popupReminders keeps up to three popup override minutes in feed order;
// unused slots stay at the unset sentinel, extras are dropped.
func popupReminders(reminders *calendar.EventReminders) [3]int {
	res := [3]int{model.ReminderUnset, model.ReminderUnset, model.ReminderUnset}
	if reminders == nil {
		return res
	}

	i := 0
	for _, override := range reminders.Overrides {
		if override.Method != methodPopup {
			continue
		}
		if i == len(res) {
			break
		}

		res[i] = int(override.Minutes)
		i++
	}

	return res
}

// recurrenceFragment extracts the first raw rule, trimmed of wrapping quotes
// and the RRULE marker.
func recurrenceFragment(recurrence []string) string {
	if len(recurrence) == 0 {
		return ""
	}

	raw := strings.Trim(recurrence[0], `"`)
	return strings.TrimPrefix(raw, rrulePrefix)
}
