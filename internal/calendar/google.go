package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleConfig configures the Google Calendar client.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	CalendarID   string
	// APIEndpoint and AuthEndpoint override Google's public endpoints.
	APIEndpoint  string
	AuthEndpoint oauth2.Endpoint
	// HTTPClient is the base transport for token and API calls.
	HTTPClient *http.Client
}

// GoogleClient implements Calendar and Authorizer on Google Calendar.
type GoogleClient struct {
	oauth      *oauth2.Config
	calendarID string
	endpoint   string
	httpClient *http.Client
	loc        *time.Location
}

// NewGoogleClient creates a client whose event times are rendered in loc.
func NewGoogleClient(cfg GoogleConfig, loc *time.Location) *GoogleClient {
	endpoint := cfg.AuthEndpoint
	if endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &GoogleClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{gcal.CalendarEventsScope},
		},
		calendarID: calendarID,
		endpoint:   cfg.APIEndpoint,
		httpClient: hc,
		loc:        loc,
	}
}

func (c *GoogleClient) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (c *GoogleClient) Exchange(ctx context.Context, userID, code string) (*domain.Credential, error) {
	tok, err := c.oauth.Exchange(c.withHTTP(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return credentialFromToken(userID, tok, c.oauth.Scopes), nil
}

func (c *GoogleClient) RefreshCredential(ctx context.Context, cred *domain.Credential) (*domain.Credential, error) {
	if !cred.Refreshable() {
		return nil, ErrReauthRequired
	}
	src := c.oauth.TokenSource(c.withHTTP(ctx), &oauth2.Token{RefreshToken: cred.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, classify("refreshing token", err)
	}
	next := credentialFromToken(cred.UserID, tok, cred.Scopes)
	if next.RefreshToken == "" {
		next.RefreshToken = cred.RefreshToken
	}
	next.CreatedAt = cred.CreatedAt
	return next, nil
}

func (c *GoogleClient) CreateEvent(ctx context.Context, cred *domain.Credential, ev Event) (string, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return "", err
	}

	tz := c.loc.String()
	payload := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       &gcal.EventDateTime{DateTime: ev.Start.In(c.loc).Format(time.RFC3339), TimeZone: tz},
		End:         &gcal.EventDateTime{DateTime: ev.End.In(c.loc).Format(time.RFC3339), TimeZone: tz},
		Reminders: &gcal.EventReminders{
			UseDefault:      false,
			Overrides:       []*gcal.EventReminder{{Method: "popup", Minutes: int64(ev.ReminderMinutes)}},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := svc.Events.Insert(c.calendarID, payload).Context(ctx).Do()
	if err != nil {
		return "", classify("creating event", err)
	}
	return created.Id, nil
}

// DeleteEvent treats an already-deleted event as success.
func (c *GoogleClient) DeleteEvent(ctx context.Context, cred *domain.Credential, eventID string) error {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return err
	}
	err = svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
		return nil
	}
	if err != nil {
		return classify("deleting event", err)
	}
	return nil
}

func (c *GoogleClient) service(ctx context.Context, cred *domain.Credential) (*gcal.Service, error) {
	hctx := c.withHTTP(ctx)
	ts := c.oauth.TokenSource(hctx, tokenFromCredential(cred))
	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(hctx, ts))}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return svc, nil
}

func (c *GoogleClient) withHTTP(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// classify maps revoked-grant failures to ErrReauthRequired and everything
// else to ErrTransient. An API 401 alone is transient: the refresh token may
// still be good.
func classify(op string, err error) error {
	if isRevoked(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrReauthRequired, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrTransient, err)
}

func isRevoked(err error) bool {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		return re.ErrorCode == "invalid_grant"
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(err.Error(), "invalid_grant")
}

func tokenFromCredential(cred *domain.Credential) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    cred.TokenType,
		Expiry:       cred.Expiry,
	}
}

func credentialFromToken(userID string, tok *oauth2.Token, scopes []string) *domain.Credential {
	now := time.Now().UTC()
	return &domain.Credential{
		UserID:       userID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry.UTC(),
		Scopes:       scopes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
