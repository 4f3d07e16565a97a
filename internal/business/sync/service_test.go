package sync

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/database"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
)

const testDefaultColor = -12417548

// fakeFeed serves prepared pages keyed by continuation token.
type fakeFeed struct {
	pages map[string]*calendar.Events
	calls []string
}

func (f *fakeFeed) ListPage(_ context.Context, _, pageToken string) (*calendar.Events, error) {
	f.calls = append(f.calls, pageToken)

	page, ok := f.pages[pageToken]
	if !ok {
		return nil, fmt.Errorf("no page for token %q", pageToken)
	}

	return page, nil
}

type failingFeed struct {
	err error
}

func (f *failingFeed) ListPage(context.Context, string, string) (*calendar.Events, error) {
	return nil, f.err
}

// fakeEventStore behaves like the events table: one row per import id,
// upserts replace in place.
type fakeEventStore struct {
	byImportID map[string]*model.Event
	upserted   []*model.Event
	nextID     int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{byImportID: map[string]*model.Event{}}
}

func (s *fakeEventStore) GetImportIDs(context.Context, database.Queryable) (map[string]struct{}, error) {
	res := make(map[string]struct{}, len(s.byImportID))
	for id := range s.byImportID {
		res[id] = struct{}{}
	}
	return res, nil
}

func (s *fakeEventStore) GetEventByImportID(_ context.Context, _ database.Queryable, importID string) (*model.Event, error) {
	event, ok := s.byImportID[importID]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return event, nil
}

func (s *fakeEventStore) UpsertEvent(_ context.Context, _ database.Queryable, event *model.Event) (int64, error) {
	stored := *event
	if old, ok := s.byImportID[event.ImportID]; ok {
		stored.ID = old.ID
	} else {
		s.nextID++
		stored.ID = s.nextID
	}

	s.byImportID[event.ImportID] = &stored
	s.upserted = append(s.upserted, &stored)

	return stored.ID, nil
}

type fakeEventTypeStore struct {
	types   []*model.EventType
	created []*model.EventType
	nextID  int64
}

func (s *fakeEventTypeStore) ListEventTypes(context.Context, database.Queryable) ([]*model.EventType, error) {
	return append([]*model.EventType(nil), s.types...), nil
}

func (s *fakeEventTypeStore) CreateEventType(_ context.Context, _ database.Queryable, eventType *model.EventType) (int64, error) {
	s.nextID++
	stored := *eventType
	stored.ID = s.nextID

	s.types = append(s.types, &stored)
	s.created = append(s.created, &stored)

	return stored.ID, nil
}

// fakeRuleParser records what the normalizer hands over.
type fakeRuleParser struct {
	fragments []string
	startTSs  []int64
	rule      model.RepeatRule
}

func (p *fakeRuleParser) Parse(fragment string, startTS int64) (model.RepeatRule, error) {
	p.fragments = append(p.fragments, fragment)
	p.startTSs = append(p.startTSs, startTS)

	if fragment == "" {
		return model.RepeatRule{}, nil
	}
	return p.rule, nil
}

type fakeReauthHandler struct {
	urls []string
}

func (h *fakeReauthHandler) RequestAuthorization(authURL string) {
	h.urls = append(h.urls, authURL)
}

type testEnv struct {
	service *Service
	feed    *fakeFeed
	events  *fakeEventStore
	types   *fakeEventTypeStore
	rules   *fakeRuleParser
	reauth  *fakeReauthHandler
}

func newTestEnv() *testEnv {
	env := &testEnv{
		feed:   &fakeFeed{pages: map[string]*calendar.Events{}},
		events: newFakeEventStore(),
		types:  &fakeEventTypeStore{},
		rules:  &fakeRuleParser{},
		reauth: &fakeReauthHandler{},
	}

	env.service = NewService(
		nil,
		zap.NewNop().Sugar(),
		env.feed,
		env.events,
		env.types,
		env.rules,
		env.reauth,
		"primary",
		testDefaultColor,
	)

	return env
}

func (e *testEnv) withFeedError(err error) *testEnv {
	e.service.feed = &failingFeed{err: err}
	return e
}

func singlePage(items ...*calendar.Event) map[string]*calendar.Events {
	return map[string]*calendar.Events{
		"": {Items: items},
	}
}

func timedItem(uid, updated string) *calendar.Event {
	return &calendar.Event{
		Status:  statusConfirmed,
		Summary: "summary of " + uid,
		ICalUID: uid,
		Updated: updated,
		ColorId: "1",
		Start:   &calendar.EventDateTime{DateTime: "2020-05-01T10:00:00Z"},
		End:     &calendar.EventDateTime{DateTime: "2020-05-01T11:00:00Z"},
	}
}
