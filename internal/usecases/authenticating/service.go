package authenticating

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adlens/marketing-insights-api/internal/config"
	"github.com/adlens/marketing-insights-api/internal/domain"
	"github.com/adlens/marketing-insights-api/pkg/clock"
)

// Authenticator emite e valida a sessão do painel. O access token do
// Meta vive apenas dentro do JWT assinado no cookie httpOnly, nunca em
// estado do servidor.
type Authenticator interface {
	IssueSession(cred domain.Credential) (string, error)
	ValidateSession(tokenString string) (domain.Credential, error)
	SessionCookie(token string) *http.Cookie
	ExpiredCookie() *http.Cookie
}

// SessionClaims é o conteúdo do JWT de sessão.
type SessionClaims struct {
	AccessToken    string `json:"access_token"`
	TokenExpiresAt int64  `json:"token_expires_at"`
	jwt.RegisteredClaims
}

type Service struct {
	cfg   *config.Config
	clock clock.Clock
}

func NewService(cfg *config.Config, clk clock.Clock) Authenticator {
	return &Service{cfg: cfg, clock: clk}
}

// IssueSession assina um JWT de sessão carregando a credencial do Meta.
// A sessão expira no menor prazo entre o TTL configurado e a validade
// do próprio access token.
func (s *Service) IssueSession(cred domain.Credential) (string, error) {
	now := s.clock.Now()

	expiresAt := now.Add(s.cfg.Auth.SessionTTL)
	if cred.ExpiresAt.Before(expiresAt) {
		expiresAt = cred.ExpiresAt
	}

	claims := SessionClaims{
		AccessToken:    cred.AccessToken,
		TokenExpiresAt: cred.ExpiresAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.cfg.Auth.Secret))
	if err != nil {
		return "", NewAuthError(ErrSigningFailed, err.Error())
	}

	return signed, nil
}

// ValidateSession valida o JWT do cookie e devolve a credencial embutida.
func (s *Service) ValidateSession(tokenString string) (domain.Credential, error) {
	if tokenString == "" {
		return domain.Credential{}, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	}, jwt.WithTimeFunc(s.clock.Now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Credential{}, ErrExpiredToken
		}
		return domain.Credential{}, NewAuthError(ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return domain.Credential{}, ErrInvalidToken
	}

	cred := domain.Credential{
		AccessToken: claims.AccessToken,
		ExpiresAt:   time.Unix(claims.TokenExpiresAt, 0),
	}

	if cred.Expired(s.clock.Now()) {
		return domain.Credential{}, ErrExpiredToken
	}

	return cred, nil
}

// SessionCookie monta o cookie httpOnly com o JWT de sessão.
func (s *Service) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.Auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cfg.Auth.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Auth.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie monta o cookie que apaga a sessão no navegador.
func (s *Service) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.Auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Auth.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
