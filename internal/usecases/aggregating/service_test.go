package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metadomain "github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/domain"
	"github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/adlens/marketing-insights-api/internal/config"
	"github.com/adlens/marketing-insights-api/internal/domain"
	"github.com/adlens/marketing-insights-api/pkg/cache"
	"github.com/adlens/marketing-insights-api/pkg/clock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockClient, *clock.Fake) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	clk := clock.NewFake(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	cfg := &config.Config{
		Cache: config.Cache{
			InsightTTL: 5 * time.Minute,
			AccountTTL: 15 * time.Minute,
		},
		Batch: config.Batch{
			ChunkSize:       10,
			InterChunkDelay: time.Second,
		},
	}

	return NewService(cfg, client, cache.New(clk), clk), client, clk
}

func testCredential() domain.Credential {
	return domain.Credential{
		AccessToken: "token-abc",
		ExpiresAt:   time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testFilters() domain.InsightFilters {
	return domain.InsightFilters{
		StartDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestStoreIfCurrent(t *testing.T) {
	service, _, _ := newTestService(t)
	key := cache.Key("performance", "token-abc", "123", "2024-04-01|2024-04-30")

	older := service.beginFetch(key)
	newer := service.beginFetch(key)

	// A resposta da geração mais nova grava; a antiga, chegando depois,
	// é descartada sem tocar o cache
	service.storeIfCurrent(key, newer, "resultado novo", time.Minute)
	service.storeIfCurrent(key, older, "resultado velho", time.Minute)

	got, ok := service.cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "resultado novo", got)
}

func rateLimitedDetails() *metadomain.ErrorResponse {
	return &metadomain.ErrorResponse{
		Error: metadomain.ErrorDetails{
			Message: "(#4) Application request limit reached",
			Type:    "OAuthException",
			Code:    4,
		},
	}
}
