package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/database"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
)

// UpsertEvent inserts an event keyed by import_id, replacing the existing
// row when one is already present. import_id carries a unique constraint, so
// at most one row per remote event ever exists.
func (*Repository) UpsertEvent(ctx context.Context, q database.Queryable, event *model.Event) (int64, error) {
	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"start_ts",
			"end_ts",
			"title",
			"description",
			"reminder_1",
			"reminder_2",
			"reminder_3",
			"repeat_interval",
			"import_id",
			"flags",
			"repeat_limit",
			"repeat_rule",
			"event_type_id",
			"last_updated",
		).
		Values(
			event.StartTS,
			event.EndTS,
			event.Title,
			event.Description,
			event.Reminder1,
			event.Reminder2,
			event.Reminder3,
			event.RepeatInterval,
			event.ImportID,
			event.Flags,
			event.RepeatLimit,
			event.RepeatRule,
			event.EventTypeID,
			event.LastUpdated,
		).
		Suffix(`on conflict (import_id) do update set
			start_ts = excluded.start_ts,
			end_ts = excluded.end_ts,
			title = excluded.title,
			description = excluded.description,
			reminder_1 = excluded.reminder_1,
			reminder_2 = excluded.reminder_2,
			reminder_3 = excluded.reminder_3,
			repeat_interval = excluded.repeat_interval,
			flags = excluded.flags,
			repeat_limit = excluded.repeat_limit,
			repeat_rule = excluded.repeat_rule,
			event_type_id = excluded.event_type_id,
			last_updated = excluded.last_updated
			returning id`)

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
