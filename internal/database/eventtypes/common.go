package eventtypes

import "github.com/SergeyKozhin/gcal-sync-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
		"title",
		"color",
	).
	From(database.EventTypesTable)
