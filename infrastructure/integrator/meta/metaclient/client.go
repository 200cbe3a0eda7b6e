package metaclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	metadomain "github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/domain"
	"github.com/adlens/marketing-insights-api/internal/config"
	"github.com/adlens/marketing-insights-api/internal/domain"
	"github.com/adlens/marketing-insights-api/pkg/clock"
	"github.com/adlens/marketing-insights-api/pkg/ratelimit"
	"github.com/adlens/marketing-insights-api/pkg/retry"
)

// Erros de baixo nível do cliente. A camada de agregadores os
// reclassifica para a taxonomia exposta à UI.
var (
	ErrTransport          = errors.New("transport failure")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrBatchRequestFailed = errors.New("batch request failed")
)

type Client interface {
	Get(ctx context.Context, cred domain.Credential, path string, params url.Values) ([]byte, error)
	ExecuteBatch(ctx context.Context, cred domain.Credential, requests []BatchRequest) ([]BatchResult, error)
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)
	AuthURL(state string) string
}

// MetaClient fala com o Graph API respeitando o limitador de requisições
// compartilhado e a política de retry com backoff.
type MetaClient struct {
	cfg     *config.Config
	http    *http.Client
	limiter *ratelimit.Limiter
	retrier *retry.Controller
	clock   clock.Clock
}

// NewClient cria o cliente com limitador e relógio injetados. O retry
// é montado internamente com a classificação de throttling do vendor.
func NewClient(cfg *config.Config, limiter *ratelimit.Limiter, clk clock.Clock) Client {
	retrier := retry.New(retry.Config{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
		MaxDelay:    cfg.Retry.MaxDelay,
		Cooldown:    cfg.Retry.Cooldown,
		Retryable:   IsRateLimitError,
	}, clk)

	return &MetaClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: limiter,
		retrier: retrier,
		clock:   clk,
	}
}

// IsRateLimitError verifica se o erro veio de throttling do vendor.
// É o único critério de retry: qualquer outro erro propaga na primeira
// ocorrência.
func IsRateLimitError(err error) bool {
	var apiErr *metadomain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.RateLimited()
	}
	return false
}

// Get faz uma chamada GET autenticada a um path relativo da API.
func (c *MetaClient) Get(ctx context.Context, cred domain.Credential, path string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", cred.AccessToken)

	requestURL := fmt.Sprintf("%s/%s?%s", c.cfg.Meta.URL, strings.TrimPrefix(path, "/"), params.Encode())

	var body []byte
	err := c.retrier.Execute(ctx, func(ctx context.Context) error {
		if err := c.limiter.Acquire(ctx); err != nil {
			return err
		}

		b, err := c.doRequest(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return err
		}

		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

// doRequest executa uma única tentativa HTTP e converte respostas de
// erro do vendor em *metadomain.APIError.
func (c *MetaClient) doRequest(ctx context.Context, method, rawURL string, form url.Values) ([]byte, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "erro ao criar a requisição")
	}

	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logrus.WithError(err).Error("metaclient: erro ao fazer a requisição")
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	var errResp metadomain.ErrorResponse
	if jsonErr := json.Unmarshal(body, &errResp); jsonErr != nil || errResp.Error.Message == "" {
		return nil, fmt.Errorf("%w: status %d, corpo %q", ErrMalformedResponse, resp.StatusCode, truncate(body, 200))
	}

	return nil, metadomain.NewAPIError(resp.StatusCode, errResp)
}

func truncate(body []byte, max int) string {
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}
