package aggregating

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"

	"github.com/sirupsen/logrus"

	metadomain "github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/domain"
	"github.com/adlens/marketing-insights-api/internal/domain"
	"github.com/adlens/marketing-insights-api/pkg/utils"
)

// maxLandingPageAds limita quantos anúncios entram na agregação por
// destino. Contas muito grandes teriam centenas de páginas e o recorte
// por URL converge bem antes disso.
const maxLandingPageAds = 100

// landingURL resolve a URL de destino do criativo.
func landingURL(c *metadomain.Creative) string {
	if c == nil {
		return ""
	}
	if c.ObjectStory != nil && c.ObjectStory.LinkData != nil && c.ObjectStory.LinkData.Link != "" {
		return c.ObjectStory.LinkData.Link
	}
	if c.AssetFeedSpec != nil {
		for _, u := range c.AssetFeedSpec.LinkURLs {
			if u.WebsiteURL != "" {
				return u.WebsiteURL
			}
		}
	}
	return ""
}

// FetchLandingPages agrega o desempenho dos anúncios por URL de
// destino. Anúncios que apontam para a mesma URL somam suas métricas
// cruas; as razões são derivadas dos totais.
func (s *Service) FetchLandingPages(ctx context.Context, cred domain.Credential, accountID string, filters domain.InsightFilters) ([]domain.LandingPageStat, error) {
	key := insightKey("landing-pages", cred, accountID, filters)
	if data, ok := s.cache.Get(key); ok {
		if stats, ok := data.([]domain.LandingPageStat); ok {
			return stats, nil
		}
	}

	gen := s.beginFetch(key)

	ads, err := s.fetchAdsPaged(ctx, cred, accountID, filters)
	if err != nil {
		return nil, err
	}

	byURL := make(map[string]*domain.LandingPageStat)
	var order []string

	for i := range ads {
		ad := &ads[i]

		target := landingURL(ad.Creative)
		if target == "" {
			continue
		}

		in := ad.FirstInsight()
		if in == nil {
			continue
		}

		m := deriveMetrics(in)

		stat, ok := byURL[target]
		if !ok {
			stat = &domain.LandingPageStat{URL: target}
			byURL[target] = stat
			order = append(order, target)
		}

		stat.Clicks += m.LinkClicks
		stat.Impressions += m.Impressions
		stat.Conversions += m.Conversions
		stat.Spend += m.Spend
	}

	stats := make([]domain.LandingPageStat, 0, len(order))
	for _, target := range order {
		stat := byURL[target]
		if stat.Impressions == 0 {
			// Destino sem entrega não é comparável
			continue
		}

		stat.Spend = round(stat.Spend)
		stat.CTR = round(utils.SafeDivide(float64(stat.Clicks), float64(stat.Impressions)) * 100)
		stat.ConversionRate = round(utils.SafeDivide(float64(stat.Conversions), float64(stat.Clicks)) * 100)
		stat.CostPerConversion = round(utils.SafeDivide(stat.Spend, float64(stat.Conversions)))

		stats = append(stats, *stat)
	}

	if len(stats) == 0 {
		return nil, newError(ErrNoDataFound, accountID, "nenhum destino com entrega no período")
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].ConversionRate > stats[j].ConversionRate
	})

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"pages":      len(stats),
	}).Debug("landing-pages: agregação por destino montada")

	s.storeIfCurrent(key, gen, stats, s.cfg.Cache.InsightTTL)

	return stats, nil
}

// fetchAdsPaged percorre os cursores de act_<id>/ads até o teto de
// anúncios ou o fim da listagem.
func (s *Service) fetchAdsPaged(ctx context.Context, cred domain.Credential, accountID string, filters domain.InsightFilters) ([]metadomain.Ad, error) {
	var ads []metadomain.Ad
	after := ""

	for len(ads) < maxLandingPageAds {
		params := url.Values{}
		params.Set("fields", adFields(filters))
		params.Set("limit", "50")
		if after != "" {
			params.Set("after", after)
		}

		body, err := s.client.Get(ctx, cred, metadomain.NormalizeAccountID(accountID)+"/ads", params)
		if err != nil {
			return nil, newError(classify(err), accountID, "falha ao paginar anúncios")
		}

		var list metadomain.AdList
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, newError(ErrMalformedResponse, accountID, "payload de anúncios ilegível")
		}

		ads = append(ads, list.Data...)

		after = list.Paging.Cursors.After
		if after == "" || len(list.Data) == 0 || list.Paging.Next == "" {
			break
		}
	}

	if len(ads) > maxLandingPageAds {
		ads = ads[:maxLandingPageAds]
	}

	return ads, nil
}
