package authenticating

import (
	"errors"
	"fmt"
)

// Erros de sessão
var (
	ErrInvalidToken  = errors.New("token de sessão inválido")
	ErrExpiredToken  = errors.New("sessão expirada")
	ErrMissingToken  = errors.New("cookie de sessão ausente")
	ErrSigningFailed = errors.New("falha ao assinar o token de sessão")
)

// AuthError é um erro de sessão com contexto adicional
type AuthError struct {
	Err     error  // Erro base
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsSessionError verifica se o erro está relacionado à sessão do usuário
func IsSessionError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrMissingToken)
}

// NewAuthError cria um novo erro de sessão
func NewAuthError(baseErr error, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Details: details,
	}
}
