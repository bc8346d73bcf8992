// Package calendarsync imports busy times from external calendar providers
// and folds them into stored availability.
package calendarsync

import (
	"context"
	"time"

	"gatherly/internal/config"
	"gatherly/internal/models"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// BusyPeriod is one busy block reported by a provider, in UTC.
type BusyPeriod struct {
	Start time.Time
	End   time.Time
}

// BusyFetcher retrieves busy periods for a linked account over a window.
type BusyFetcher interface {
	FetchBusy(ctx context.Context, account *models.CalendarSyncAccount, from, to time.Time) ([]BusyPeriod, error)
}

// googleFetcher queries the Google Calendar freebusy API with a stored
// refresh token.
type googleFetcher struct {
	oauthConfig *oauth2.Config
}

// NewGoogleFetcher returns a BusyFetcher backed by the Google Calendar API.
func NewGoogleFetcher(cfg *config.Config) BusyFetcher {
	return &googleFetcher{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     googleoauth.Endpoint,
			Scopes:       []string{calendar.CalendarReadonlyScope},
		},
	}
}

func (f *googleFetcher) FetchBusy(ctx context.Context, account *models.CalendarSyncAccount, from, to time.Time) ([]BusyPeriod, error) {
	tokenSource := f.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: account.RefreshToken})

	svc, err := calendar.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, models.NewExternalServiceError("Google Calendar", err)
	}

	result, err := svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: "primary"}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, models.NewExternalServiceError("Google Calendar", err)
	}

	primary, ok := result.Calendars["primary"]
	if !ok {
		return nil, nil
	}

	periods := make([]BusyPeriod, 0, len(primary.Busy))
	for _, b := range primary.Busy {
		start, err := time.Parse(time.RFC3339, b.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, b.End)
		if err != nil {
			continue
		}
		periods = append(periods, BusyPeriod{Start: start.UTC(), End: end.UTC()})
	}
	return periods, nil
}
