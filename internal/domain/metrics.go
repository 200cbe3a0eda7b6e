package domain

// PerformanceRecord é uma linha de desempenho por plataforma e dia.
// Todas as razões são derivadas dos campos crus a cada busca; nada é
// armazenado.
type PerformanceRecord struct {
	Platform          string  `json:"platform"`
	Date              string  `json:"date"`
	AdSpend           float64 `json:"adSpend"`
	Clicks            int     `json:"clicks"`
	Impressions       int     `json:"impressions"`
	Conversions       int     `json:"conversions"`
	CTR               float64 `json:"ctr"`
	CPC               float64 `json:"cpc"`
	CPM               float64 `json:"cpm"`
	CostPerConversion float64 `json:"costPerConversion"`
	ROAS              float64 `json:"roas"`
}

// TopAd é um anúncio ranqueado com sua identidade criativa e métricas.
// A pontuação usada na ordenação é interna ao agregador e nunca é
// exposta aqui.
type TopAd struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Platform          string  `json:"platform"`
	Image             string  `json:"image,omitempty"`
	Spend             float64 `json:"spend"`
	Impressions       int     `json:"impressions"`
	Clicks            int     `json:"clicks"`
	CTR               float64 `json:"ctr"`
	Conversions       int     `json:"conversions"`
	CostPerConversion float64 `json:"costPerConversion"`
	ROAS              float64 `json:"roas"`
}

// AdCopy é o texto criativo extraído de um anúncio com suas métricas.
type AdCopy struct {
	ID                string  `json:"id"`
	Text              string  `json:"text"`
	CTR               float64 `json:"ctr"`
	Impressions       int     `json:"impressions"`
	Clicks            int     `json:"clicks"`
	Spend             float64 `json:"spend"`
	Conversions       int     `json:"conversions"`
	ConversionRate    float64 `json:"conversionRate"`
	CostPerConversion float64 `json:"costPerConversion"`
}

// LandingPageStat agrega métricas por URL de destino. A URL é a chave
// de deduplicação: anúncios que apontam para o mesmo destino somam
// cliques, impressões, gasto e conversões.
type LandingPageStat struct {
	URL               string  `json:"url"`
	Clicks            int     `json:"clicks"`
	Impressions       int     `json:"impressions"`
	Conversions       int     `json:"conversions"`
	Spend             float64 `json:"spend"`
	ConversionRate    float64 `json:"conversionRate"`
	CTR               float64 `json:"ctr"`
	CostPerConversion float64 `json:"costPerConversion"`
}
