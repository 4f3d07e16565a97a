package sync

import (
	"context"
	"errors"
	"sync"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/database"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
)

const (
	statusConfirmed = "confirmed"
	methodPopup     = "popup"
	eventTypePrefix = "google_sync_"
	rrulePrefix     = "RRULE:"
	daySeconds      = 86400
)

// ErrSyncInProgress is returned by Run when a pass is already running.
var ErrSyncInProgress = errors.New("sync already in progress")

type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Status describes the outcome of the most recent sync pass.
type Status struct {
	State     State
	LastError string
	Accepted  int
	Skipped   int
}

type feed interface {
	ListPage(ctx context.Context, calendarID, pageToken string) (*calendar.Events, error)
}

type eventsRepository interface {
	GetImportIDs(ctx context.Context, q database.Queryable) (map[string]struct{}, error)
	GetEventByImportID(ctx context.Context, q database.Queryable, importID string) (*model.Event, error)
	UpsertEvent(ctx context.Context, q database.Queryable, event *model.Event) (int64, error)
}

type eventTypesRepository interface {
	ListEventTypes(ctx context.Context, q database.Queryable) ([]*model.EventType, error)
	CreateEventType(ctx context.Context, q database.Queryable, eventType *model.EventType) (int64, error)
}

type ruleParser interface {
	Parse(fragment string, startTS int64) (model.RepeatRule, error)
}

type reauthHandler interface {
	RequestAuthorization(authURL string)
}

// Service reconciles the remote calendar feed into the local store. A pass
// is strictly sequential: pages are fetched and processed one by one from a
// single goroutine, so the run itself needs no locking; the mutex only
// guards Status for outside readers.
type Service struct {
	db           database.Queryable
	logger       *zap.SugaredLogger
	feed         feed
	events       eventsRepository
	eventTypes   eventTypesRepository
	rules        ruleParser
	reauth       reauthHandler
	calendarID   string
	defaultColor int

	mu     sync.Mutex
	status Status
}

func NewService(
	db database.Queryable,
	logger *zap.SugaredLogger,
	feed feed,
	events eventsRepository,
	eventTypes eventTypesRepository,
	rules ruleParser,
	reauth reauthHandler,
	calendarID string,
	defaultColor int,
) *Service {
	return &Service{
		db:           db,
		logger:       logger,
		feed:         feed,
		events:       events,
		eventTypes:   eventTypes,
		rules:        rules,
		reauth:       reauth,
		calendarID:   calendarID,
		defaultColor: defaultColor,
	}
}

func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

func (s *Service) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.State == StateRunning {
		return false
	}

	s.status = Status{State: StateRunning}
	return true
}

func (s *Service) finish(state State, err error, accepted, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.State = state
	s.status.Accepted = accepted
	s.status.Skipped = skipped
	if err != nil {
		s.status.LastError = err.Error()
	}
}
