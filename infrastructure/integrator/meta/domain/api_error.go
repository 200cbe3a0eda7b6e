package metadomain

import "fmt"

// APIError é um erro estruturado retornado pelo Graph API. Carrega o
// status HTTP e o corpo de erro do vendor; a reclassificação para a
// taxonomia da aplicação acontece na camada de agregadores.
type APIError struct {
	Status   int
	Response ErrorResponse
}

func (e *APIError) Error() string {
	return fmt.Sprintf("meta api error: status %d, code %d, message %q",
		e.Status, e.Response.Error.Code, e.Response.Error.Message)
}

// RateLimited informa se o vendor sinalizou throttling.
func (e *APIError) RateLimited() bool {
	return e.Response.IsRateLimited()
}

// NewAPIError monta um APIError a partir do status e do corpo parseado.
func NewAPIError(status int, resp ErrorResponse) *APIError {
	return &APIError{Status: status, Response: resp}
}
