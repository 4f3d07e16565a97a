package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

func TestService_Run_PaginationTermination(t *testing.T) {
	env := newTestEnv()
	env.feed.pages = map[string]*calendar.Events{
		"": {
			Items:         []*calendar.Event{timedItem("uid-1", "2020-05-01T00:00:00Z")},
			NextPageToken: "page-2",
		},
		"page-2": {
			Items:         []*calendar.Event{timedItem("uid-2", "2020-05-01T00:00:00Z")},
			NextPageToken: "page-3",
		},
		"page-3": {
			Items: []*calendar.Event{timedItem("uid-3", "2020-05-01T00:00:00Z")},
		},
	}

	require.NoError(t, env.service.Run(context.Background()))

	assert.Equal(t, []string{"", "page-2", "page-3"}, env.feed.calls)
	assert.Len(t, env.events.upserted, 3)
}

func TestService_Run_Idempotence(t *testing.T) {
	env := newTestEnv()
	env.feed.pages = singlePage(
		timedItem("uid-1", "2020-05-01T00:00:00Z"),
		timedItem("uid-2", "2020-05-02T00:00:00Z"),
	)

	require.NoError(t, env.service.Run(context.Background()))
	require.Len(t, env.events.upserted, 2)

	// Same feed again: every record is already present and not staler.
	require.NoError(t, env.service.Run(context.Background()))

	assert.Len(t, env.events.upserted, 2)
	assert.Equal(t, 2, env.service.Status().Skipped)
}

func TestService_Run_RepeatedIDWithinRun(t *testing.T) {
	env := newTestEnv()
	env.feed.pages = singlePage(
		timedItem("uid-1", "2020-05-01T00:00:00Z"),
		timedItem("uid-1", "2020-05-01T00:00:00Z"),
	)

	require.NoError(t, env.service.Run(context.Background()))

	assert.Len(t, env.events.upserted, 1)
}

func TestService_Run_StateMachine(t *testing.T) {
	env := newTestEnv()
	env.feed.pages = singlePage()

	assert.Equal(t, StateIdle, env.service.Status().State)

	require.NoError(t, env.service.Run(context.Background()))
	assert.Equal(t, StateCompleted, env.service.Status().State)
	assert.Empty(t, env.service.Status().LastError)
}

func TestService_Run_TransportFailureCancels(t *testing.T) {
	env := newTestEnv().withFeedError(errors.New("connection reset"))

	err := env.service.Run(context.Background())
	require.Error(t, err)

	status := env.service.Status()
	assert.Equal(t, StateCancelled, status.State)
	assert.Contains(t, status.LastError, "connection reset")
	assert.Empty(t, env.reauth.urls, "transport failure must not trigger reauthorization")
}

func TestService_Run_ReauthHandoff(t *testing.T) {
	env := newTestEnv().withFeedError(&model.ReauthRequiredError{AuthURL: "https://accounts.google.com/o/oauth2/auth?x=y"})

	err := env.service.Run(context.Background())

	var reauthErr *model.ReauthRequiredError
	require.ErrorAs(t, err, &reauthErr)

	assert.Equal(t, StateCancelled, env.service.Status().State)
	assert.Equal(t, []string{"https://accounts.google.com/o/oauth2/auth?x=y"}, env.reauth.urls)
}

func TestService_Run_PartialApplicationBeforeFailure(t *testing.T) {
	env := newTestEnv()
	env.feed.pages = map[string]*calendar.Events{
		"": {
			Items:         []*calendar.Event{timedItem("uid-1", "2020-05-01T00:00:00Z")},
			NextPageToken: "missing-page",
		},
	}

	require.Error(t, env.service.Run(context.Background()))

	// The event committed before the failing page stays committed.
	assert.Len(t, env.events.upserted, 1)
}

func TestService_Run_AssemblesEvent(t *testing.T) {
	env := newTestEnv()
	item := timedItem("uid-1", "2020-05-01T12:30:45Z")
	item.Summary = "Dentist"
	item.Description = "bring insurance card"
	env.feed.pages = singlePage(item)

	require.NoError(t, env.service.Run(context.Background()))

	require.Len(t, env.events.upserted, 1)
	got := env.events.upserted[0]

	assert.Equal(t, "Dentist", got.Title)
	assert.Equal(t, "bring insurance card", got.Description)
	assert.Equal(t, "uid-1", got.ImportID)
	assert.EqualValues(t, 1588336245000, got.LastUpdated, "unix millis of remote updated")
	assert.Equal(t, 0, got.Flags)
	assert.Equal(t, [3]int{model.ReminderUnset, model.ReminderUnset, model.ReminderUnset},
		[3]int{got.Reminder1, got.Reminder2, got.Reminder3})
}
