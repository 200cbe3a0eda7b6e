package aggregating

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	metadomain "github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/domain"
	"github.com/adlens/marketing-insights-api/internal/domain"
)

// copyExtractors é a cadeia de extração de texto do criativo, em ordem
// de preferência. O primeiro extrator que devolver texto não vazio
// vence; a ordem reflete a fidelidade do campo ao texto realmente
// exibido.
var copyExtractors = []func(*metadomain.Creative) string{
	func(c *metadomain.Creative) string { return c.Body },
	func(c *metadomain.Creative) string {
		if c.ObjectStory == nil || c.ObjectStory.LinkData == nil {
			return ""
		}
		return c.ObjectStory.LinkData.Message
	},
	func(c *metadomain.Creative) string { return firstAssetText(c.AssetFeedSpec, assetBodies) },
	func(c *metadomain.Creative) string { return firstAssetText(c.AssetFeedSpec, assetDescriptions) },
	func(c *metadomain.Creative) string { return firstAssetText(c.AssetFeedSpec, assetTitles) },
	func(c *metadomain.Creative) string { return c.Title },
}

type assetSelector int

const (
	assetBodies assetSelector = iota
	assetDescriptions
	assetTitles
)

func firstAssetText(spec *metadomain.AssetFeedSpec, sel assetSelector) string {
	if spec == nil {
		return ""
	}

	var texts []metadomain.AssetText
	switch sel {
	case assetBodies:
		texts = spec.Bodies
	case assetDescriptions:
		texts = spec.Descriptions
	case assetTitles:
		texts = spec.Titles
	}

	for _, t := range texts {
		if strings.TrimSpace(t.Text) != "" {
			return t.Text
		}
	}
	return ""
}

// extractCopy percorre a cadeia de extratores sobre o criativo.
func extractCopy(c *metadomain.Creative) string {
	if c == nil {
		return ""
	}
	for _, extract := range copyExtractors {
		if text := strings.TrimSpace(extract(c)); text != "" {
			return text
		}
	}
	return ""
}

// FetchAdCopy extrai os textos criativos dos anúncios da conta e os
// ranqueia por engajamento e conversão. Anúncios sem texto extraível ou
// sem entrega alguma no período são descartados.
func (s *Service) FetchAdCopy(ctx context.Context, cred domain.Credential, accountID string, filters domain.InsightFilters) ([]domain.AdCopy, error) {
	key := insightKey("ad-copy", cred, accountID, filters)
	if data, ok := s.cache.Get(key); ok {
		if copies, ok := data.([]domain.AdCopy); ok {
			return copies, nil
		}
	}

	gen := s.beginFetch(key)

	params := url.Values{}
	params.Set("fields", adFields(filters))
	params.Set("limit", "100")

	body, err := s.client.Get(ctx, cred, metadomain.NormalizeAccountID(accountID)+"/ads", params)
	if err != nil {
		return nil, newError(classify(err), accountID, "falha ao buscar criativos")
	}

	var list metadomain.AdList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, newError(ErrMalformedResponse, accountID, "payload de criativos ilegível")
	}

	type rankedCopy struct {
		copy  domain.AdCopy
		score float64
	}

	ranked := make([]rankedCopy, 0, len(list.Data))
	for i := range list.Data {
		ad := &list.Data[i]

		text := extractCopy(ad.Creative)
		if text == "" {
			continue
		}

		in := ad.FirstInsight()
		if in == nil {
			continue
		}

		m := deriveMetrics(in)
		if m.Impressions == 0 && m.Spend == 0 {
			// Sem entrega no período, as métricas não dizem nada
			continue
		}

		ranked = append(ranked, rankedCopy{
			copy: domain.AdCopy{
				ID:                ad.ID,
				Text:              text,
				CTR:               round(m.CTR),
				Impressions:       m.Impressions,
				Clicks:            m.LinkClicks,
				Spend:             round(m.Spend),
				Conversions:       m.Conversions,
				ConversionRate:    round(m.conversionRate()),
				CostPerConversion: round(m.CostPerConversion),
			},
			score: m.CTR*0.4 + m.conversionRate()*0.6,
		})
	}

	if len(ranked) == 0 {
		return nil, newError(ErrNoDataFound, accountID, "nenhum texto criativo com entrega no período")
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	copies := make([]domain.AdCopy, 0, len(ranked))
	for _, r := range ranked {
		copies = append(copies, r.copy)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"copies":     len(copies),
	}).Debug("ad-copy: textos extraídos e ranqueados")

	s.storeIfCurrent(key, gen, copies, s.cfg.Cache.InsightTTL)

	return copies, nil
}
