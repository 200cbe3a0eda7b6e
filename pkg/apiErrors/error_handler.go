package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro expostos ao front-end
const (
	// Erros de sessão e OAuth (AUTH_*)
	ErrSessionRequired   = "AUTH_001" // Cookie de sessão ausente
	ErrInvalidSession    = "AUTH_002" // Sessão inválida ou expirada
	ErrAuthExchange      = "AUTH_003" // Troca do código OAuth falhou
	ErrOAuthStateInvalid = "AUTH_004" // Parâmetro state não confere

	// Erros de validação (VAL_*)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Parâmetros obrigatórios ausentes
	ErrInvalidDateRange    = "VAL_003" // Período de datas inválido

	// Erros da integração com o Meta (META_*)
	ErrRateLimited       = "META_001" // Limite de requisições do vendor
	ErrNoData            = "META_002" // Sem dados para o período
	ErrNoAccounts        = "META_003" // Credencial sem contas de anúncio
	ErrVendorResponse    = "META_004" // Resposta inesperada do vendor
	ErrVendorUnavailable = "META_005" // Falha de comunicação com o vendor

	// Erros do servidor (SRV_*)
	ErrInternalServer = "SRV_001" // Erro interno do servidor
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrSessionRequired:   http.StatusUnauthorized,
	ErrInvalidSession:    http.StatusUnauthorized,
	ErrAuthExchange:      http.StatusUnauthorized,
	ErrOAuthStateInvalid: http.StatusUnauthorized,

	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidDateRange:    http.StatusBadRequest,

	ErrRateLimited:       http.StatusTooManyRequests,
	ErrNoData:            http.StatusNotFound,
	ErrNoAccounts:        http.StatusNotFound,
	ErrVendorResponse:    http.StatusBadGateway,
	ErrVendorUnavailable: http.StatusBadGateway,

	ErrInternalServer: http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// emptyCollection é o corpo dos 404 que o painel renderiza como estado
// vazio: o código de erro acompanhado de uma coleção sem elementos.
type emptyCollection struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Data    []any  `json:"data"`
}

// WriteEmptyCollection escreve o erro padronizado com uma coleção vazia
// no corpo da resposta.
func WriteEmptyCollection(w http.ResponseWriter, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(code))
	json.NewEncoder(w).Encode(emptyCollection{
		Code:    code,
		Message: message,
		Data:    []any{},
	})
}

// HTTPStatus retorna o status HTTP associado ao código de erro.
func HTTPStatus(code string) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
