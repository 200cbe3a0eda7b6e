package aggregating

import (
	"errors"
	"fmt"

	metadomain "github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/domain"
	"github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/adlens/marketing-insights-api/pkg/retry"
)

// Taxonomia de erros exposta à camada de UI. Códigos crus do vendor
// nunca passam deste pacote.
var (
	// O vendor sinalizou throttling e as tentativas se esgotaram;
	// recuperável esperando alguns minutos
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// Código de autorização inválido/expirado ou token rejeitado
	ErrAuthExchangeFailed = errors.New("auth exchange failed")

	// Resposta estruturalmente válida porém vazia
	ErrNoDataFound     = errors.New("no data found")
	ErrNoAccountsFound = errors.New("no ad accounts found")

	// Payload do vendor sem os campos esperados
	ErrMalformedResponse = errors.New("malformed response")

	// Falha de rede ou HTTP
	ErrTransportFailure = errors.New("transport failure")
)

// AggregationError agrega contexto ao erro classificado.
type AggregationError struct {
	Err       error  // Erro da taxonomia
	AccountID string // Conta envolvida (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AggregationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AggregationError) Unwrap() error {
	return e.Err
}

// newError cria um AggregationError com contexto de conta.
func newError(err error, accountID, details string) *AggregationError {
	return &AggregationError{
		Err:       err,
		AccountID: accountID,
		Details:   details,
	}
}

// classify converte erros do cliente Meta na taxonomia da aplicação.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, retry.ErrMaxRetriesExceeded):
		return ErrRateLimitExceeded
	case metaclient.IsRateLimitError(err):
		return ErrRateLimitExceeded
	case errors.Is(err, metaclient.ErrBatchRequestFailed):
		return ErrTransportFailure
	case errors.Is(err, metaclient.ErrMalformedResponse):
		return ErrMalformedResponse
	case errors.Is(err, metaclient.ErrTransport):
		return ErrTransportFailure
	}

	var apiErr *metadomain.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Response.IsTokenExpired() {
			return ErrAuthExchangeFailed
		}
		return ErrTransportFailure
	}

	return ErrTransportFailure
}
