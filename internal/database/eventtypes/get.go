package eventtypes

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/database"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
)

func (*Repository) ListEventTypes(ctx context.Context, q database.Queryable) ([]*model.EventType, error) {
	var dtos []*eventTypeDTO
	if err := q.Select(ctx, &dtos, baseQuery); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.EventType, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEventType(d)
	}

	return res, nil
}
