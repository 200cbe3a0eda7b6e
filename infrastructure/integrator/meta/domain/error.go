package metadomain

import "strings"

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// Códigos de throttling documentados da API do Meta:
// 4 = app rate limit, 17 = user rate limit, 32 = page rate limit,
// 613 = custom rate limit
var rateLimitCodes = map[int]bool{
	4:   true,
	17:  true,
	32:  true,
	613: true,
}

// IsRateLimited verifica se o erro indica throttling pela API.
func (e *ErrorResponse) IsRateLimited() bool {
	if rateLimitCodes[e.Error.Code] {
		return true
	}

	return IsRateLimitMessage(e.Error.Message)
}

// IsRateLimitMessage verifica pela mensagem em texto se o erro é de
// throttling. Usado quando o corpo não parseia como ErrorResponse.
func IsRateLimitMessage(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "too many calls") ||
		strings.Contains(lower, "request limit reached")
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}
