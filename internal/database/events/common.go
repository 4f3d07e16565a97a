package events

import "github.com/SergeyKozhin/gcal-sync-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
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
	From(database.EventsTable)
