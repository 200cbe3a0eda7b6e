package domain

import "time"

// Credential é o token de acesso obtido no callback OAuth. Vive no
// cookie de sessão do navegador; o servidor não persiste nada.
type Credential struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired informa se a credencial já passou da validade.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
