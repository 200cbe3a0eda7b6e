package metadomain

// Ad é um anúncio retornado por act_<id>/ads com criativo e insights
// aninhados.
type Ad struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Status   string       `json:"status"`
	Creative *Creative    `json:"creative,omitempty"`
	Insights *InsightList `json:"insights,omitempty"`
}

// AdList é o envelope de uma listagem de anúncios.
type AdList struct {
	Data   []Ad   `json:"data"`
	Paging Paging `json:"paging"`
}

// Creative carrega os campos criativos usados para extrair texto,
// imagem e URL de destino. Os campos presentes variam conforme o
// formato do anúncio.
type Creative struct {
	ID            string         `json:"id,omitempty"`
	Body          string         `json:"body,omitempty"`
	Title         string         `json:"title,omitempty"`
	ThumbnailURL  string         `json:"thumbnail_url,omitempty"`
	ImageURL      string         `json:"image_url,omitempty"`
	ObjectStory   *ObjectStory   `json:"object_story_spec,omitempty"`
	AssetFeedSpec *AssetFeedSpec `json:"asset_feed_spec,omitempty"`
}

// ObjectStory é o bloco object_story_spec do criativo.
type ObjectStory struct {
	LinkData *LinkData `json:"link_data,omitempty"`
}

// LinkData descreve um anúncio de link.
type LinkData struct {
	Message     string `json:"message,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// AssetFeedSpec é o bloco de criativos dinâmicos.
type AssetFeedSpec struct {
	Bodies       []AssetText `json:"bodies,omitempty"`
	Titles       []AssetText `json:"titles,omitempty"`
	Descriptions []AssetText `json:"descriptions,omitempty"`
	LinkURLs     []LinkURL   `json:"link_urls,omitempty"`
}

// AssetText é um texto de criativo dinâmico.
type AssetText struct {
	Text string `json:"text"`
}

// LinkURL é uma URL de destino de criativo dinâmico.
type LinkURL struct {
	WebsiteURL string `json:"website_url"`
}

// FirstInsight retorna a primeira linha de insights do anúncio, se houver.
func (a *Ad) FirstInsight() *Insight {
	if a.Insights == nil || len(a.Insights.Data) == 0 {
		return nil
	}
	return &a.Insights.Data[0]
}
