package model

// Event flag bits.
const (
	FlagAllDay = 1 << iota
)

// ReminderUnset marks an empty reminder slot.
const ReminderUnset = -1

// Event is the locally persisted calendar event. Identity across syncs is
// ImportID; ID is assigned by the store on insert.
type Event struct {
	ID             int64
	StartTS        int64
	EndTS          int64
	Title          string
	Description    string
	Reminder1      int
	Reminder2      int
	Reminder3      int
	RepeatInterval int64
	ImportID       string
	Flags          int
	RepeatLimit    int64
	RepeatRule     int
	EventTypeID    int64
	LastUpdated    int64
}

func (e *Event) IsAllDay() bool {
	return e.Flags&FlagAllDay != 0
}

type EventType struct {
	ID    int64
	Title string
	Color int
}

// RepeatRule is the structured recurrence of an event.
// The zero value means the event does not repeat.
type RepeatRule struct {
	Interval int64
	Limit    int64
	Rule     int
}
