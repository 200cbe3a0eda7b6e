package domain

// DirectBusinessID identifica o gerenciador sintético que agrupa as
// contas de anúncio sem Business Manager ("Direct Accounts").
const DirectBusinessID = "direct"

// BusinessManager agrupa contas de anúncio. Só aparece no resultado se
// possuir pelo menos uma conta.
type BusinessManager struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	PermittedTasks []string    `json:"permitted_tasks,omitempty"`
	AdAccounts     []AdAccount `json:"ad_accounts"`
}

// AdAccount é uma conta de anúncio do Meta. AccountID guarda o ID
// numérico cru; o prefixo act_ é aplicado apenas na montagem de paths.
type AdAccount struct {
	AccountID    string `json:"account_id"`
	Name         string `json:"name"`
	Currency     string `json:"currency"`
	TimezoneName string `json:"timezone_name"`
	BusinessID   string `json:"business_id,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
}
