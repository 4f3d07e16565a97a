package eventtypes

import (
	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
)

type eventTypeDTO struct {
	ID    int64
	Title string
	Color int
}

func mapToEventType(dto *eventTypeDTO) *model.EventType {
	return &model.EventType{
		ID:    dto.ID,
		Title: dto.Title,
		Color: dto.Color,
	}
}
