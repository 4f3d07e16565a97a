package events

import (
	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
)

type eventDTO struct {
	ID             int64
	StartTS        int64
	EndTS          int64
	Title          string
	Description    string
	Reminder1      int `db:"reminder_1"`
	Reminder2      int `db:"reminder_2"`
	Reminder3      int `db:"reminder_3"`
	RepeatInterval int64
	ImportID       string
	Flags          int
	RepeatLimit    int64
	RepeatRule     int
	EventTypeID    int64
	LastUpdated    int64
}

func mapToEvent(dto *eventDTO) *model.Event {
	return &model.Event{
		ID:             dto.ID,
		StartTS:        dto.StartTS,
		EndTS:          dto.EndTS,
		Title:          dto.Title,
		Description:    dto.Description,
		Reminder1:      dto.Reminder1,
		Reminder2:      dto.Reminder2,
		Reminder3:      dto.Reminder3,
		RepeatInterval: dto.RepeatInterval,
		ImportID:       dto.ImportID,
		Flags:          dto.Flags,
		RepeatLimit:    dto.RepeatLimit,
		RepeatRule:     dto.RepeatRule,
		EventTypeID:    dto.EventTypeID,
		LastUpdated:    dto.LastUpdated,
	}
}
