package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/adlens/marketing-insights-api/internal/domain"
	"github.com/adlens/marketing-insights-api/internal/usecases/authenticating"
	"github.com/adlens/marketing-insights-api/pkg/apiErrors"
)

type contextKey string

const (
	// ContextKeyCredential guarda a credencial do Meta extraída da sessão
	ContextKeyCredential contextKey = "credential"
)

// SessionMiddleware valida o cookie de sessão e injeta a credencial do
// Meta no contexto. Healthcheck e o fluxo de OAuth ficam de fora: são
// justamente as rotas que existem antes de haver sessão.
func SessionMiddleware(authenticator authenticating.Authenticator, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthcheck" || strings.HasPrefix(r.URL.Path, "/v1/auth/") {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(cookieName)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrSessionRequired, "Sessão não encontrada, conecte sua conta Meta", nil)
				return
			}

			cred, err := authenticator.ValidateSession(cookie.Value)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão inválida ou expirada, reconecte sua conta Meta", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyCredential, cred)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CredentialFromContext recupera a credencial injetada pelo middleware.
func CredentialFromContext(ctx context.Context) (domain.Credential, bool) {
	cred, ok := ctx.Value(ContextKeyCredential).(domain.Credential)
	return cred, ok
}

// WithCredential injeta uma credencial no contexto. Usado pelos testes
// de handler para simular uma sessão válida.
func WithCredential(ctx context.Context, cred domain.Credential) context.Context {
	return context.WithValue(ctx, ContextKeyCredential, cred)
}
