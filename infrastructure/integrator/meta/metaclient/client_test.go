package metaclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metadomain "github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/domain"
	"github.com/adlens/marketing-insights-api/internal/config"
	"github.com/adlens/marketing-insights-api/internal/domain"
	"github.com/adlens/marketing-insights-api/pkg/clock"
	"github.com/adlens/marketing-insights-api/pkg/ratelimit"
)

func newTestClient(t *testing.T, serverURL string) Client {
	t.Helper()

	cfg := &config.Config{}
	cfg.Meta.URL = serverURL
	cfg.Meta.Version = "v19.0"
	cfg.Meta.AppID = "app-id"
	cfg.Meta.AppSecret = "app-secret"
	cfg.Meta.RedirectURI = "http://localhost:8000/v1/auth/meta/callback"
	cfg.Meta.Scopes = []string{"ads_read", "business_management"}
	cfg.Retry.MaxAttempts = 3
	cfg.Retry.BaseDelay = 1 * time.Second
	cfg.Retry.MaxDelay = 4 * time.Second

	fake := clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	limiter := ratelimit.New(ratelimit.Config{
		Window:      5 * time.Minute,
		MaxRequests: 1000,
		MinSpacing:  0,
	}, fake)

	return NewClient(cfg, limiter, fake)
}

func TestMetaClient_Get(t *testing.T) {
	cred := domain.Credential{AccessToken: "token-abc"}

	t.Run("resposta 200 retorna o corpo", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "token-abc", r.URL.Query().Get("access_token"))
			w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		body, err := client.Get(context.Background(), cred, "me/adaccounts", nil)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":[]}`, string(body))
	})

	t.Run("erro do vendor vira APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Invalid parameter","type":"OAuthException","code":100}}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		_, err := client.Get(context.Background(), cred, "me", nil)
		require.Error(t, err)

		var apiErr *metadomain.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 100, apiErr.Response.Error.Code)
		assert.False(t, apiErr.RateLimited())
	})

	t.Run("throttling é retentado até o sucesso", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 3 {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"message":"(#4) Application request limit reached","type":"OAuthException","code":4}}`))
				return
			}
			w.Write([]byte(`{"data":[{"id":"1"}]}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		body, err := client.Get(context.Background(), cred, "me", nil)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"id":"1"`)
		assert.Equal(t, 3, calls)
	})

	t.Run("corpo de erro não parseável vira MalformedResponse", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("<html>gateway error</html>"))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		_, err := client.Get(context.Background(), cred, "me", nil)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestMetaClient_ExchangeCode(t *testing.T) {
	t.Run("troca código por token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/oauth/access_token", r.URL.Path)
			assert.Equal(t, "auth-code", r.URL.Query().Get("code"))
			w.Write([]byte(`{"access_token":"long-lived","token_type":"bearer","expires_in":5183944}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		token, err := client.ExchangeCode(context.Background(), "auth-code")
		require.NoError(t, err)
		assert.Equal(t, "long-lived", token.AccessToken)

		now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, now.Add(5183944*time.Second), token.ExpiresAt(now))
	})

	t.Run("código vazio é rejeitado sem chamada de rede", func(t *testing.T) {
		client := newTestClient(t, "http://unused")

		_, err := client.ExchangeCode(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestMetaClient_AuthURL(t *testing.T) {
	client := newTestClient(t, "http://unused")

	authURL := client.AuthURL("state-xyz")

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal(t, "www.facebook.com", parsed.Host)
	assert.Equal(t, "/v19.0/dialog/oauth", parsed.Path)
	assert.Equal(t, "state-xyz", parsed.Query().Get("state"))
	assert.Equal(t, "code", parsed.Query().Get("response_type"))
	assert.Equal(t, "ads_read,business_management", parsed.Query().Get("scope"))
}
