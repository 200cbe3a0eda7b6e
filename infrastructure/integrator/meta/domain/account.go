package metadomain

import "strings"

// NormalizeAccountID garante o prefixo act_ exigido nos paths da API.
// IDs numéricos crus nunca devem chegar à camada de rede.
func NormalizeAccountID(accountID string) string {
	if strings.HasPrefix(accountID, "act_") {
		return accountID
	}
	return "act_" + accountID
}

// StripAccountPrefix devolve o ID numérico cru de uma conta.
func StripAccountPrefix(accountID string) string {
	return strings.TrimPrefix(accountID, "act_")
}

// AdAccount é a representação de uma conta de anúncio no Graph API.
type AdAccount struct {
	ID           string `json:"id"`
	AccountID    string `json:"account_id"`
	Name         string `json:"name"`
	Currency     string `json:"currency"`
	TimezoneName string `json:"timezone_name"`
}

// Business é um Business Manager retornado por /me/businesses.
type Business struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	PermittedTasks []string `json:"permitted_tasks"`
}

// User é a resposta de /me.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Paging carrega os cursores de paginação do Graph API.
type Paging struct {
	Cursors struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next,omitempty"`
}

// AdAccountList é o envelope de uma listagem de contas.
type AdAccountList struct {
	Data   []AdAccount `json:"data"`
	Paging Paging      `json:"paging"`
}

// BusinessList é o envelope de uma listagem de Business Managers.
type BusinessList struct {
	Data   []Business `json:"data"`
	Paging Paging     `json:"paging"`
}
