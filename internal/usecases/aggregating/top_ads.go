package aggregating

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"github.com/sirupsen/logrus"

	metadomain "github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/domain"
	"github.com/adlens/marketing-insights-api/internal/domain"
)

const topAdsLimit = 10

// adFields pede o criativo completo e os insights já recortados pelo
// período, evitando uma segunda chamada por anúncio.
func adFields(filters domain.InsightFilters) string {
	return fmt.Sprintf(
		"name,status,creative{id,body,title,thumbnail_url,image_url,object_story_spec,asset_feed_spec},insights.time_range(%s){%s}",
		timeRange(filters), insightFields,
	)
}

// scoredAd carrega a pontuação de ordenação junto do anúncio. A
// pontuação pondera gasto e CTR e nunca sai deste pacote.
type scoredAd struct {
	ad    domain.TopAd
	score float64
}

// FetchTopAds retorna os anúncios ativos de melhor desempenho no
// período, limitados aos dez primeiros.
func (s *Service) FetchTopAds(ctx context.Context, cred domain.Credential, accountID string, filters domain.InsightFilters) ([]domain.TopAd, error) {
	key := insightKey("top-ads", cred, accountID, filters)
	if data, ok := s.cache.Get(key); ok {
		if ads, ok := data.([]domain.TopAd); ok {
			return ads, nil
		}
	}

	gen := s.beginFetch(key)

	params := url.Values{}
	params.Set("fields", adFields(filters))
	params.Set("limit", "100")

	body, err := s.client.Get(ctx, cred, metadomain.NormalizeAccountID(accountID)+"/ads", params)
	if err != nil {
		return nil, newError(classify(err), accountID, "falha ao buscar anúncios")
	}

	var list metadomain.AdList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, newError(ErrMalformedResponse, accountID, "payload de anúncios ilegível")
	}

	scored := make([]scoredAd, 0, len(list.Data))
	for i := range list.Data {
		ad := &list.Data[i]
		in := ad.FirstInsight()
		// Anúncio pausado ou sem entrega no período não concorre
		if ad.Status != "ACTIVE" || in == nil {
			continue
		}

		m := deriveMetrics(in)

		scored = append(scored, scoredAd{
			ad: domain.TopAd{
				ID:                ad.ID,
				Name:              ad.Name,
				Platform:          "facebook",
				Image:             adImage(ad.Creative),
				Spend:             round(m.Spend),
				Impressions:       m.Impressions,
				Clicks:            m.LinkClicks,
				CTR:               round(m.CTR),
				Conversions:       m.Conversions,
				CostPerConversion: round(m.CostPerConversion),
				ROAS:              round(m.ROAS),
			},
			score: m.Spend*0.6 + m.CTR*0.4,
		})
	}

	if len(scored) == 0 {
		return nil, newError(ErrNoDataFound, accountID, "nenhum anúncio ativo com entrega no período")
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > topAdsLimit {
		scored = scored[:topAdsLimit]
	}

	ads := make([]domain.TopAd, 0, len(scored))
	for _, sa := range scored {
		ads = append(ads, sa.ad)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"ads":        len(ads),
	}).Debug("top-ads: ranking montado")

	s.storeIfCurrent(key, gen, ads, s.cfg.Cache.InsightTTL)

	return ads, nil
}

// adImage escolhe a melhor imagem disponível do criativo.
func adImage(c *metadomain.Creative) string {
	if c == nil {
		return ""
	}
	if c.ImageURL != "" {
		return c.ImageURL
	}
	return c.ThumbnailURL
}
