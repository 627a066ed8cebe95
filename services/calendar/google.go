// File: services/calendar/google.go
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/KazChe/ai-task-scheduler/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleGateway implements Gateway against the Google Calendar API.
type GoogleGateway struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleGateway builds a gateway authenticated with a service-account
// credentials file.
func NewGoogleGateway(ctx context.Context, credentialsFile, calendarID string) (*GoogleGateway, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleGateway{svc: svc, calendarID: calendarID}, nil
}

// NewGoogleGatewayWithToken builds a gateway from an OAuth client config and
// a previously obtained user token. Token acquisition and refresh storage
// belong to the caller.
func NewGoogleGatewayWithToken(ctx context.Context, clientSecretJSON []byte, token *oauth2.Token, calendarID string) (*GoogleGateway, error) {
	cfg, err := google.ConfigFromJSON(clientSecretJSON, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse oauth client config: %w", err)
	}
	svc, err := gcal.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleGateway{svc: svc, calendarID: calendarID}, nil
}

// ListBusyIntervals queries the FreeBusy endpoint for the requested range.
func (g *GoogleGateway) ListBusyIntervals(ctx context.Context, rangeStart, rangeEnd time.Time) ([]models.Interval, error) {
	resp, err := g.svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: rangeStart.Format(time.RFC3339),
		TimeMax: rangeEnd.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query failed: %w", err)
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		return nil, fmt.Errorf("freebusy response missing calendar %q", g.calendarID)
	}

	intervals := make([]models.Interval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("bad busy period start %q: %w", period.Start, err)
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("bad busy period end %q: %w", period.End, err)
		}
		intervals = append(intervals, models.Interval{Start: start, End: end})
	}
	return intervals, nil
}

// CreateBooking inserts an event covering [start, end).
func (g *GoogleGateway) CreateBooking(ctx context.Context, title, description string, start, end time.Time) (*models.Booking, error) {
	event := &gcal.Event{
		Summary:     title,
		Description: description,
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}
	created, err := g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("event insert failed: %w", err)
	}
	return &models.Booking{EventID: created.Id, Link: created.HtmlLink}, nil
}
