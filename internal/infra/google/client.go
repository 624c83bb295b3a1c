// Package google implements the raw calendar provider protocol: OAuth code
// exchange and token refresh, freeBusy queries, and push channel registration.
// Retry and credential policy live in the usecase layer.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"companion-booking/internal/domain/credential"
	"companion-booking/internal/domain/schedule"
	"companion-booking/internal/metrics"
	"companion-booking/internal/pkg/config"
	"companion-booking/internal/pkg/errs"

	"golang.org/x/oauth2"
)

// APIError carries the provider's HTTP status so callers can distinguish
// auth failures (401) from transient server errors (5xx).
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// WatchResult is the provider's acknowledgement of a push channel.
type WatchResult struct {
	ChannelID  string
	ResourceID string
	Expiration time.Time
}

type Client struct {
	oauthCfg *oauth2.Config
	baseURL  string
	http     *http.Client
}

func NewClient(cfg config.GoogleConfig) *Client {
	return &Client{
		oauthCfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		baseURL: cfg.CalendarBaseURL,
		http:    &http.Client{Timeout: cfg.CallTimeout},
	}
}

// AuthCodeURL builds the consent page URL. access_type=offline with forced
// consent is required or the provider omits the refresh token on re-auth.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauthCfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (credential.Tokens, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return credential.Tokens{}, errs.Wrap(err, "code exchange failed")
	}
	return tokensFromOAuth2(tok, c.oauthCfg.Scopes), nil
}

func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (credential.Tokens, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	src := c.oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return credential.Tokens{}, errs.Wrap(err, "token refresh failed")
	}
	return tokensFromOAuth2(tok, c.oauthCfg.Scopes), nil
}

// IsInvalidGrant reports whether err means the refresh token itself was
// revoked or expired, as opposed to a transient failure.
func IsInvalidGrant(err error) bool {
	var rerr *oauth2.RetrieveError
	if !errors.As(err, &rerr) {
		return false
	}
	if rerr.ErrorCode == "invalid_grant" {
		return true
	}
	return bytes.Contains(rerr.Body, []byte("invalid_grant"))
}

type freeBusyRequest struct {
	TimeMin string               `json:"timeMin"`
	TimeMax string               `json:"timeMax"`
	Items   []freeBusyCalendarID `json:"items"`
}

type freeBusyCalendarID struct {
	ID string `json:"id"`
}

type freeBusyResponse struct {
	Calendars map[string]struct {
		Busy []struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		} `json:"busy"`
	} `json:"calendars"`
}

// FreeBusy returns the busy intervals of calendarID over [from, to),
// sorted by start time.
func (c *Client) FreeBusy(ctx context.Context, accessToken, calendarID string, from, to time.Time) ([]schedule.BusyInterval, error) {
	reqBody := freeBusyRequest{
		TimeMin: from.UTC().Format(time.RFC3339),
		TimeMax: to.UTC().Format(time.RFC3339),
		Items:   []freeBusyCalendarID{{ID: calendarID}},
	}

	var resp freeBusyResponse
	if err := c.postJSON(ctx, accessToken, "freeBusy", c.baseURL+"/freeBusy", reqBody, &resp); err != nil {
		return nil, err
	}

	cal, ok := resp.Calendars[calendarID]
	if !ok {
		return nil, nil
	}
	intervals := make([]schedule.BusyInterval, 0, len(cal.Busy))
	for _, b := range cal.Busy {
		intervals = append(intervals, schedule.BusyInterval{
			Start: b.Start.UTC(),
			End:   b.End.UTC(),
		})
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
	return intervals, nil
}

type watchRequest struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	Address string            `json:"address"`
	Token   string            `json:"token,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
}

type watchResponse struct {
	ID         string `json:"id"`
	ResourceID string `json:"resourceId"`
	Expiration int64  `json:"expiration,string"`
}

// Watch registers a push channel for calendarID. The provider may grant a
// shorter TTL than requested; the returned expiration is authoritative.
func (c *Client) Watch(ctx context.Context, accessToken, calendarID, channelID, token, callbackURL string, ttl time.Duration) (WatchResult, error) {
	reqBody := watchRequest{
		ID:      channelID,
		Type:    "web_hook",
		Address: callbackURL,
		Token:   token,
		Params:  map[string]string{"ttl": fmt.Sprintf("%d", int64(ttl.Seconds()))},
	}

	url := fmt.Sprintf("%s/calendars/%s/events/watch", c.baseURL, calendarID)
	var resp watchResponse
	if err := c.postJSON(ctx, accessToken, "watch", url, reqBody, &resp); err != nil {
		return WatchResult{}, err
	}

	return WatchResult{
		ChannelID:  resp.ID,
		ResourceID: resp.ResourceID,
		Expiration: time.UnixMilli(resp.Expiration).UTC(),
	}, nil
}

type stopRequest struct {
	ID         string `json:"id"`
	ResourceID string `json:"resourceId"`
}

// StopChannel tears down a push channel. A 404 is treated as success since
// the channel may have already expired.
func (c *Client) StopChannel(ctx context.Context, accessToken, channelID, resourceID string) error {
	err := c.postJSON(ctx, accessToken, "channels.stop", c.baseURL+"/channels/stop", stopRequest{ID: channelID, ResourceID: resourceID}, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil
	}
	return err
}

func (c *Client) postJSON(ctx context.Context, accessToken, endpoint, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errs.Wrap(err, "failed to encode request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ProviderRequestDuration.WithLabelValues(endpoint, "error").
			Observe(time.Since(start).Seconds())
		return errs.Wrap(err, "provider call failed")
	}
	metrics.ProviderRequestDuration.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).
		Observe(time.Since(start).Seconds())
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(err, "failed to decode provider response")
	}
	return nil
}

func tokensFromOAuth2(tok *oauth2.Token, scopes []string) credential.Tokens {
	return credential.Tokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry.UTC(),
		Scopes:       scopes,
	}
}
