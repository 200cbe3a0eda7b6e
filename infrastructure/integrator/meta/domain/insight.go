package metadomain

import "strconv"

// Tipos de ação reconhecidos como conversão de compra.
var PurchaseActionTypes = []string{
	"purchase",
	"omni_purchase",
	"onsite_conversion.purchase",
}

// Aliases de clique no link, em ordem de preferência. O Graph API varia
// o tipo reportado conforme a idade da campanha.
var LinkClickActionTypes = []string{
	"link_click",
	"inline_link_click",
	"offsite_conversion.link_click",
}

// Action é um par tipo/valor reportado pelo Graph API. O valor vem
// sempre como string.
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// Insight é uma linha crua de métricas do Graph API. Campos numéricos
// chegam como strings e são convertidos nos getters tolerantes abaixo.
type Insight struct {
	AccountID    string   `json:"account_id,omitempty"`
	AccountName  string   `json:"account_name,omitempty"`
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	CTR          string   `json:"ctr"`
	CPC          string   `json:"cpc"`
	CPM          string   `json:"cpm"`
	Actions      []Action `json:"actions,omitempty"`
	ActionValues []Action `json:"action_values,omitempty"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
}

// InsightList é o envelope de /insights.
type InsightList struct {
	Data   []Insight `json:"data"`
	Paging Paging    `json:"paging"`
}

// ParseFloat converte um campo numérico do Graph API, tratando campo
// ausente como zero.
func ParseFloat(value string) float64 {
	if value == "" {
		return 0
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseInt converte um campo inteiro do Graph API, tratando campo
// ausente como zero.
func ParseInt(value string) int {
	if value == "" {
		return 0
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return i
}

// ActionValue procura o primeiro tipo de ação presente, na ordem dada.
// purchase e omni_purchase podem coexistir reportando o mesmo evento,
// por isso apenas o primeiro encontrado é considerado.
func ActionValue(actions []Action, types ...string) float64 {
	for _, t := range types {
		for _, a := range actions {
			if a.ActionType == t {
				return ParseFloat(a.Value)
			}
		}
	}
	return 0
}
