package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// oauthDialogURL é o endpoint de autorização, servido fora do Graph API.
const oauthDialogURL = "https://www.facebook.com/%s/dialog/oauth"

// TokenResponse representa a resposta da API do Meta ao trocar um código
// de autorização por um token de acesso.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExpiresAt calcula o instante de expiração do token a partir de agora.
func (t *TokenResponse) ExpiresAt(now time.Time) time.Time {
	if t.ExpiresIn <= 0 {
		// Tokens sem expiração declarada: assume 60 dias, padrão dos
		// tokens de longa duração do Meta
		return now.Add(60 * 24 * time.Hour)
	}
	return now.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// AuthURL monta a URL do diálogo OAuth para onde o navegador é
// redirecionado no início da conexão.
func (c *MetaClient) AuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.cfg.Meta.AppID)
	params.Set("redirect_uri", c.cfg.Meta.RedirectURI)
	params.Set("scope", strings.Join(c.cfg.Meta.Scopes, ","))
	params.Set("response_type", "code")
	params.Set("state", state)

	return fmt.Sprintf(oauthDialogURL, c.cfg.Meta.Version) + "?" + params.Encode()
}

// ExchangeCode troca o código de autorização por um token de acesso.
// Passa pelo limitador e pela política de retry como qualquer outra
// chamada ao vendor.
func (c *MetaClient) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("código de autorização não pode ser vazio")
	}

	params := url.Values{}
	params.Set("client_id", c.cfg.Meta.AppID)
	params.Set("client_secret", c.cfg.Meta.AppSecret)
	params.Set("redirect_uri", c.cfg.Meta.RedirectURI)
	params.Set("code", code)

	requestURL := fmt.Sprintf("%s/oauth/access_token?%s", c.cfg.Meta.URL, params.Encode())

	var tokenResp TokenResponse
	err := c.retrier.Execute(ctx, func(ctx context.Context) error {
		if err := c.limiter.Acquire(ctx); err != nil {
			return err
		}

		body, err := c.doRequest(ctx, "GET", requestURL, nil)
		if err != nil {
			return err
		}

		if err := json.Unmarshal(body, &tokenResp); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}

		if tokenResp.AccessToken == "" {
			return fmt.Errorf("%w: token retornado pela API é vazio", ErrMalformedResponse)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.Info("metaclient: token de acesso obtido com sucesso via OAuth")

	return &tokenResp, nil
}
