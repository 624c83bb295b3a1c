//go:build unit

package google_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"companion-booking/internal/infra/google"
	"companion-booking/internal/pkg/config"

	"github.com/stretchr/testify/require"
)

func testConfig(serverURL string) config.GoogleConfig {
	return config.GoogleConfig{
		ClientID:        "client-id",
		ClientSecret:    "client-secret",
		RedirectURL:     "http://localhost:8080/auth/google/callback",
		AuthURL:         serverURL + "/auth",
		TokenURL:        serverURL + "/token",
		CalendarBaseURL: serverURL + "/calendar/v3",
		Scopes:          []string{"https://www.googleapis.com/auth/calendar.readonly"},
		CallTimeout:     5 * time.Second,
	}
}

func TestExchangeCode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "auth-code", r.Form.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	defer srv.Close()

	client := google.NewClient(testConfig(srv.URL))
	tokens, err := client.ExchangeCode(context.Background(), "auth-code")
	require.NoError(t, err)
	require.Equal(t, "access-1", tokens.AccessToken)
	require.Equal(t, "refresh-1", tokens.RefreshToken)
	require.True(t, tokens.ExpiresAt.After(time.Now()))
}

func TestRefreshTokens_InvalidGrant(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Token has been revoked."}`))
	}))
	defer srv.Close()

	client := google.NewClient(testConfig(srv.URL))
	_, err := client.RefreshTokens(context.Background(), "revoked-refresh")
	require.Error(t, err)
	require.True(t, google.IsInvalidGrant(err))
}

func TestFreeBusy_ParsesAndSorts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/calendar/v3/freeBusy", r.URL.Path)
		require.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"calendars": {
				"primary": {
					"busy": [
						{"start": "2026-09-07T14:00:00Z", "end": "2026-09-07T15:00:00Z"},
						{"start": "2026-09-07T10:00:00Z", "end": "2026-09-07T10:30:00Z"}
					]
				}
			}
		}`))
	}))
	defer srv.Close()

	client := google.NewClient(testConfig(srv.URL))
	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	busy, err := client.FreeBusy(context.Background(), "access-1", "primary", from, from.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, busy, 2)
	require.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), busy[0].Start)
	require.Equal(t, time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC), busy[1].Start)
}

func TestFreeBusy_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := google.NewClient(testConfig(srv.URL))
	from := time.Now().UTC()
	_, err := client.FreeBusy(context.Background(), "access-1", "primary", from, from.Add(time.Hour))

	var apiErr *google.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestWatch(t *testing.T) {
	t.Parallel()

	expiration := time.Now().Add(168 * time.Hour).UnixMilli()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/calendar/v3/calendars/primary/events/watch", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "web_hook", body["type"])
		require.Equal(t, "chan-1", body["id"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         "chan-1",
			"resourceId": "res-1",
			"expiration": strconv.FormatInt(expiration, 10),
		})
	}))
	defer srv.Close()

	client := google.NewClient(testConfig(srv.URL))
	res, err := client.Watch(context.Background(), "access-1", "primary", "chan-1", "verify-token", "https://api.example.com/webhooks/calendar", 168*time.Hour)
	require.NoError(t, err)
	require.Equal(t, "chan-1", res.ChannelID)
	require.Equal(t, "res-1", res.ResourceID)
	require.Equal(t, time.UnixMilli(expiration).UTC(), res.Expiration)
}

func TestStopChannel_NotFoundIsSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := google.NewClient(testConfig(srv.URL))
	require.NoError(t, client.StopChannel(context.Background(), "access-1", "chan-gone", "res-gone"))
}
