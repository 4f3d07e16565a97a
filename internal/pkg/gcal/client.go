package gcal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type authFlow interface {
	TokenSource(ctx context.Context) (oauth2.TokenSource, error)
	AuthURL() string
}

// Client reads the Google Calendar events feed one page at a time. It holds
// no pagination state; the caller drives the continuation token.
type Client struct {
	flow authFlow

	mu  sync.Mutex
	svc *calendar.Service
}

func NewClient(flow authFlow) *Client {
	return &Client{flow: flow}
}

// ListPage fetches a single page of the feed. Credential failures come back
// as *model.ReauthRequiredError carrying the consent URL; everything else
// propagates wrapped and unretried.
func (c *Client) ListPage(ctx context.Context, calendarID, pageToken string) (*calendar.Events, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	events, err := svc.Events.List(calendarID).
		PageToken(pageToken).
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.classify(err)
	}

	return events, nil
}

// service lazily builds the calendar service so that a missing credential
// surfaces during a run instead of at process start.
func (c *Client) service(ctx context.Context) (*calendar.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.svc != nil {
		return c.svc, nil
	}

	ts, err := c.flow.TokenSource(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	c.svc = svc
	return svc, nil
}

func (c *Client) classify(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusUnauthorized {
		return c.reauthRequired(err)
	}

	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) {
		return c.reauthRequired(err)
	}

	return fmt.Errorf("list events: %w", err)
}

// reauthRequired drops the cached service so the next run picks up a freshly
// exchanged token.
func (c *Client) reauthRequired(err error) error {
	c.mu.Lock()
	c.svc = nil
	c.mu.Unlock()

	return &model.ReauthRequiredError{AuthURL: c.flow.AuthURL(), Err: err}
}
