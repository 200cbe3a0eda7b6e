package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlens/marketing-insights-api/internal/config"
	"github.com/adlens/marketing-insights-api/internal/domain"
	"github.com/adlens/marketing-insights-api/internal/usecases/authenticating"
	"github.com/adlens/marketing-insights-api/pkg/clock"
	"github.com/adlens/marketing-insights-api/pkg/middleware"
)

func TestSessionMiddleware(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	cfg := &config.Config{
		Auth: config.Auth{
			Secret:     "segredo-de-teste",
			SessionTTL: 24 * time.Hour,
			CookieName: "meta_session",
		},
	}
	authenticator := authenticating.NewService(cfg, clk)

	var gotCred domain.Credential
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCred, _ = middleware.CredentialFromContext(r.Context())
		called = true
	})

	protected := middleware.SessionMiddleware(authenticator, cfg.Auth.CookieName)(next)

	t.Run("sem cookie retorna 401", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/meta/hierarchy", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("cookie válido injeta a credencial no contexto", func(t *testing.T) {
		called = false
		cred := domain.Credential{
			AccessToken: "token-meta",
			ExpiresAt:   clk.Now().Add(60 * 24 * time.Hour),
		}

		token, err := authenticator.IssueSession(cred)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/meta/hierarchy", nil)
		req.AddCookie(&http.Cookie{Name: "meta_session", Value: token})

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, "token-meta", gotCred.AccessToken)
	})

	t.Run("cookie adulterado retorna 401", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/v1/meta/hierarchy", nil)
		req.AddCookie(&http.Cookie{Name: "meta_session", Value: "lixo"})

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("healthcheck e OAuth passam sem sessão", func(t *testing.T) {
		for _, path := range []string{"/healthcheck", "/v1/auth/meta/login", "/v1/auth/meta/callback"} {
			called = false
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.True(t, called, path)
			assert.Equal(t, http.StatusOK, rec.Code, path)
		}
	})
}
