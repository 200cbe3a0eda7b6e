package aggregating

import (
	"context"

	"github.com/adlens/marketing-insights-api/internal/domain"
)

// Aggregator é a interface consumida pela camada HTTP. Cada operação é
// um read-model independente sobre o Graph API; todas respeitam o
// limitador compartilhado e o cache de respostas.
type Aggregator interface {
	FetchBusinessHierarchy(ctx context.Context, cred domain.Credential) ([]domain.BusinessManager, error)
	FetchPerformance(ctx context.Context, cred domain.Credential, accountID string, filters domain.InsightFilters) ([]domain.PerformanceRecord, error)
	FetchTopAds(ctx context.Context, cred domain.Credential, accountID string, filters domain.InsightFilters) ([]domain.TopAd, error)
	FetchAdCopy(ctx context.Context, cred domain.Credential, accountID string, filters domain.InsightFilters) ([]domain.AdCopy, error)
	FetchLandingPages(ctx context.Context, cred domain.Credential, accountID string, filters domain.InsightFilters) ([]domain.LandingPageStat, error)
}
