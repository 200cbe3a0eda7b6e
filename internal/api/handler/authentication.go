package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/adlens/marketing-insights-api/internal/config"
	"github.com/adlens/marketing-insights-api/internal/domain"
	"github.com/adlens/marketing-insights-api/internal/usecases/aggregating"
	"github.com/adlens/marketing-insights-api/internal/usecases/authenticating"
	"github.com/adlens/marketing-insights-api/pkg/cache"
	"github.com/adlens/marketing-insights-api/pkg/clock"
	"github.com/adlens/marketing-insights-api/pkg/log"
	"github.com/adlens/marketing-insights-api/pkg/utils"
)

const stateCookieName = "meta_oauth_state"

// Códigos de erro repassados ao dashboard via query string no callback
const (
	callbackErrAuthFailed   = "auth_failed"
	callbackErrRateLimited  = "rate_limited"
	callbackErrNoAccounts   = "no_accounts"
	callbackErrAccessDenied = "access_denied"
	callbackErrState        = "state_mismatch"
)

// AuthServices reúne as dependências do fluxo de OAuth com o Meta.
type AuthServices struct {
	Config        *config.Config
	Client        metaclient.Client
	Aggregator    aggregating.Aggregator
	Authenticator authenticating.Authenticator
	Cache         *cache.Cache
	Clock         clock.Clock
}

// MetaLogin inicia o fluxo de OAuth redirecionando para o diálogo de
// autorização do Meta com um state de uso único.
func MetaLogin(services AuthServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		state, err := utils.GenerateState()
		if err != nil {
			logger.WithError(err).Error("auth: failed to generate oauth state")
			http.Error(w, "Erro ao iniciar a conexão", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     stateCookieName,
			Value:    state,
			Path:     "/v1/auth/meta",
			MaxAge:   600,
			HttpOnly: true,
			Secure:   services.Config.Auth.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})

		logger.Info("auth: redirecting to Meta authorization dialog")
		http.Redirect(w, r, services.Client.AuthURL(state), http.StatusFound)
	})
}

// MetaCallback conclui o fluxo de OAuth: valida o state, troca o código
// por um access token, resolve a hierarquia de contas e emite a sessão.
// O resultado volta ao dashboard sempre via redirect, sucesso ou falha.
func MetaCallback(services AuthServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		if query.Get("error") != "" {
			// Usuário negou a autorização no diálogo do Meta
			logger.WithField("meta_error", query.Get("error")).Warn("auth: authorization denied by user")
			redirectWithError(w, r, services.Config, callbackErrAccessDenied)
			return
		}

		if !stateMatches(r, query.Get("state")) {
			logger.Warn("auth: oauth state mismatch")
			redirectWithError(w, r, services.Config, callbackErrState)
			return
		}

		token, err := services.Client.ExchangeCode(r.Context(), query.Get("code"))
		if err != nil {
			logger.WithError(err).Error("auth: code exchange failed")
			if metaclient.IsRateLimitError(err) {
				redirectWithError(w, r, services.Config, callbackErrRateLimited)
				return
			}
			redirectWithError(w, r, services.Config, callbackErrAuthFailed)
			return
		}

		cred := domain.Credential{
			AccessToken: token.AccessToken,
			ExpiresAt:   token.ExpiresAt(services.Clock.Now()),
		}

		managers, err := services.Aggregator.FetchBusinessHierarchy(r.Context(), cred)
		if err != nil {
			logger.WithError(err).Warn("auth: hierarchy resolution failed after exchange")
			switch {
			case errors.Is(err, aggregating.ErrNoAccountsFound):
				redirectWithError(w, r, services.Config, callbackErrNoAccounts)
			case errors.Is(err, aggregating.ErrRateLimitExceeded):
				redirectWithError(w, r, services.Config, callbackErrRateLimited)
			default:
				redirectWithError(w, r, services.Config, callbackErrAuthFailed)
			}
			return
		}

		session, err := services.Authenticator.IssueSession(cred)
		if err != nil {
			logger.WithError(err).Error("auth: failed to issue session")
			redirectWithError(w, r, services.Config, callbackErrAuthFailed)
			return
		}

		accounts := 0
		for _, bm := range managers {
			accounts += len(bm.AdAccounts)
		}

		http.SetCookie(w, services.Authenticator.SessionCookie(session))
		clearStateCookie(w, services.Config)

		logger.WithFields(log.Fields{
			"businesses": len(managers),
			"accounts":   accounts,
		}).Info("auth: Meta account connected")

		redirectToDashboard(w, r, services.Config, url.Values{
			"connected": []string{"meta"},
			"accounts":  []string{strconv.Itoa(accounts)},
		})
	})
}

// MetaDisconnect encerra a sessão e descarta qualquer resposta em cache
// da credencial desconectada.
func MetaDisconnect(services AuthServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		http.SetCookie(w, services.Authenticator.ExpiredCookie())
		services.Cache.Clear()

		logger.Info("auth: Meta account disconnected")
		w.WriteHeader(http.StatusNoContent)
	})
}

func stateMatches(r *http.Request, state string) bool {
	if state == "" {
		return false
	}

	cookie, err := r.Cookie(stateCookieName)
	if err != nil {
		return false
	}

	return cookie.Value == state
}

func clearStateCookie(w http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/v1/auth/meta",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Auth.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func redirectToDashboard(w http.ResponseWriter, r *http.Request, cfg *config.Config, params url.Values) {
	target := cfg.Dashboard.URL
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, cfg *config.Config, code string) {
	redirectToDashboard(w, r, cfg, url.Values{"error": []string{code}})
}
