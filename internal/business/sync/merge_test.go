package sync

import (
	"context"
	"testing"
	"time"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ShouldAccept_ConfirmedFilter(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{name: "confirmed", status: "confirmed", want: true},
		{name: "cancelled", status: "cancelled", want: false},
		{name: "tentative", status: "tentative", want: false},
		{name: "empty", status: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			item := timedItem("uid-1", "2020-05-01T00:00:00Z")
			item.Status = tt.status

			got, _, err := env.service.shouldAccept(context.Background(), item, map[string]struct{}{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_ShouldAccept_MonotonicFreshness(t *testing.T) {
	storedUpdate := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		remoteUpdated string
		want          bool
	}{
		{name: "remote newer", remoteUpdated: "2020-05-01T00:00:01Z", want: true},
		{name: "remote equal", remoteUpdated: "2020-05-01T00:00:00Z", want: false},
		{name: "remote older", remoteUpdated: "2020-04-30T23:59:59Z", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.events.byImportID["uid-1"] = &model.Event{
				ImportID:    "uid-1",
				LastUpdated: storedUpdate.UnixMilli(),
			}

			item := timedItem("uid-1", tt.remoteUpdated)
			known := map[string]struct{}{"uid-1": {}}

			got, lastUpdate, err := env.service.shouldAccept(context.Background(), item, known)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			if tt.want {
				expected, parseErr := time.Parse(time.RFC3339, tt.remoteUpdated)
				require.NoError(t, parseErr)
				assert.Equal(t, expected.UnixMilli(), lastUpdate)
			}
		})
	}
}

func TestService_ShouldAccept_UnknownIDAccepted(t *testing.T) {
	env := newTestEnv()
	item := timedItem("uid-new", "2020-05-01T00:00:00Z")

	got, _, err := env.service.shouldAccept(context.Background(), item, map[string]struct{}{"uid-other": {}})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestService_ShouldAccept_MalformedUpdated(t *testing.T) {
	env := newTestEnv()
	item := timedItem("uid-1", "yesterday-ish")

	_, _, err := env.service.shouldAccept(context.Background(), item, map[string]struct{}{})
	require.Error(t, err)
}

func TestService_Run_NewerRemoteReplacesRow(t *testing.T) {
	env := newTestEnv()
	env.feed.pages = singlePage(timedItem("uid-1", "2020-05-01T00:00:00Z"))
	require.NoError(t, env.service.Run(context.Background()))
	require.Len(t, env.events.upserted, 1)
	firstID := env.events.upserted[0].ID

	updated := timedItem("uid-1", "2020-06-01T00:00:00Z")
	updated.Summary = "moved"
	env.feed.pages = singlePage(updated)
	require.NoError(t, env.service.Run(context.Background()))

	require.Len(t, env.events.upserted, 2)
	assert.Equal(t, firstID, env.events.upserted[1].ID, "upsert must replace, not duplicate")
	assert.Equal(t, "moved", env.events.byImportID["uid-1"].Title)
}
