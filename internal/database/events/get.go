package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/database"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
)

func (*Repository) GetEventByImportID(ctx context.Context, q database.Queryable, importID string) (*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"import_id": importID})

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return mapToEvent(dtos[0]), nil
}

func (*Repository) GetImportIDs(ctx context.Context, q database.Queryable) (map[string]struct{}, error) {
	qb := database.PSQL.
		Select("import_id").
		From(database.EventsTable).
		Where(sq.NotEq{"import_id": ""})

	var ids []string
	if err := q.Select(ctx, &ids, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		res[id] = struct{}{}
	}

	return res, nil
}
