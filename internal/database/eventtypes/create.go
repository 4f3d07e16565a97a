package eventtypes

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/database"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
)

func (*Repository) CreateEventType(ctx context.Context, q database.Queryable, eventType *model.EventType) (int64, error) {
	qb := database.PSQL.
		Insert(database.EventTypesTable).
		Columns("title", "color").
		Values(
			eventType.Title,
			eventType.Color,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
