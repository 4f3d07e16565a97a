package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
)

// resolveEventType maps a remote color id to a local event type, creating
// one on first sight. The cache is seeded from the store at run start and
// shared across the whole pass, so a distinct color id is created at most
// once per run.
func (s *Service) resolveEventType(ctx context.Context, colorID string, cache *[]*model.EventType) (int64, error) {
	name := eventTypePrefix + colorID

	for _, t := range *cache {
		if strings.EqualFold(t.Title, name) {
			return t.ID, nil
		}
	}

	eventType := &model.EventType{
		Title: name,
		Color: s.defaultColor,
	}

	id, err := s.eventTypes.CreateEventType(ctx, s.db, eventType)
	if err != nil {
		return 0, fmt.Errorf("create event type %q: %w", name, err)
	}

	eventType.ID = id
	*cache = append(*cache, eventType)

	return id, nil
}
