package aggregating

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/adlens/marketing-insights-api/internal/domain"
)

func TestFetchPerformance(t *testing.T) {
	insightsBody := `{"data":[{
		"spend":"100","impressions":"1000","clicks":"50","ctr":"","cpc":"","cpm":"",
		"actions":[{"action_type":"link_click","value":"40"},{"action_type":"purchase","value":"4"}],
		"action_values":[{"action_type":"purchase","value":"200"}],
		"date_start":"2024-04-01","date_stop":"2024-04-01"
	}]}`

	t.Run("deriva as razões a partir dos campos crus", func(t *testing.T) {
		service, client, _ := newTestService(t)

		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Credential, path string, params url.Values) ([]byte, error) {
				assert.Equal(t, "act_123/insights", path)
				assert.Equal(t, "1", params.Get("time_increment"))
				assert.Equal(t, "account", params.Get("level"))
				assert.JSONEq(t, `{"since":"2024-04-01","until":"2024-04-30"}`, params.Get("time_range"))
				return []byte(insightsBody), nil
			})

		records, err := service.FetchPerformance(context.Background(), testCredential(), "123", testFilters())
		require.NoError(t, err)
		require.Len(t, records, 1)

		r := records[0]
		assert.Equal(t, "facebook", r.Platform)
		assert.Equal(t, "2024-04-01", r.Date)
		assert.Equal(t, 100.0, r.AdSpend)
		assert.Equal(t, 40, r.Clicks)
		assert.Equal(t, 1000, r.Impressions)
		assert.Equal(t, 4, r.Conversions)
		assert.Equal(t, 4.0, r.CTR)
		assert.Equal(t, 2.5, r.CPC)
		assert.Equal(t, 100.0, r.CPM)
		assert.Equal(t, 25.0, r.CostPerConversion)
		assert.Equal(t, 2.0, r.ROAS)
	})

	t.Run("gasto zero zera as razões em vez de dividir por zero", func(t *testing.T) {
		service, client, _ := newTestService(t)

		body := `{"data":[{
			"spend":"0","impressions":"0","clicks":"0",
			"action_values":[{"action_type":"purchase","value":"50"}],
			"date_start":"2024-04-02","date_stop":"2024-04-02"
		}]}`

		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte(body), nil)

		records, err := service.FetchPerformance(context.Background(), testCredential(), "123", testFilters())
		require.NoError(t, err)
		require.Len(t, records, 1)

		r := records[0]
		assert.Zero(t, r.ROAS)
		assert.Zero(t, r.CPC)
		assert.Zero(t, r.CPM)
		assert.Zero(t, r.CostPerConversion)
	})

	t.Run("período sem linhas retorna ErrNoDataFound", func(t *testing.T) {
		service, client, _ := newTestService(t)

		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte(`{"data":[]}`), nil)

		_, err := service.FetchPerformance(context.Background(), testCredential(), "123", testFilters())
		assert.ErrorIs(t, err, ErrNoDataFound)
	})

	t.Run("mesma consulta dentro do TTL responde do cache", func(t *testing.T) {
		service, client, _ := newTestService(t)

		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte(insightsBody), nil).
			Times(1)

		first, err := service.FetchPerformance(context.Background(), testCredential(), "123", testFilters())
		require.NoError(t, err)

		second, err := service.FetchPerformance(context.Background(), testCredential(), "123", testFilters())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("mudança de período nunca reaproveita o cache", func(t *testing.T) {
		service, client, _ := newTestService(t)

		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte(insightsBody), nil).
			Times(2)

		_, err := service.FetchPerformance(context.Background(), testCredential(), "123", testFilters())
		require.NoError(t, err)

		other := domain.InsightFilters{
			StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		}
		_, err = service.FetchPerformance(context.Background(), testCredential(), "123", other)
		require.NoError(t, err)
	})

	t.Run("busca supersedida responde ao chamador sem regravar o cache", func(t *testing.T) {
		service, client, _ := newTestService(t)

		older := `{"data":[{
			"spend":"100","impressions":"1000","clicks":"50",
			"actions":[{"action_type":"link_click","value":"40"}],
			"date_start":"2024-04-01","date_stop":"2024-04-01"
		}]}`
		newer := `{"data":[{
			"spend":"200","impressions":"2000","clicks":"100",
			"actions":[{"action_type":"link_click","value":"80"}],
			"date_start":"2024-04-01","date_stop":"2024-04-01"
		}]}`

		var fromNewer []domain.PerformanceRecord
		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, cred domain.Credential, _ string, _ url.Values) ([]byte, error) {
				// Uma busca mais nova para a mesma chave começa e termina
				// enquanto a primeira ainda aguarda o vendor
				var err error
				fromNewer, err = service.FetchPerformance(ctx, cred, "123", testFilters())
				require.NoError(t, err)
				return []byte(older), nil
			})
		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte(newer), nil)

		fromOlder, err := service.FetchPerformance(context.Background(), testCredential(), "123", testFilters())
		require.NoError(t, err)

		// Cada chamador recebe a resposta da própria busca
		assert.Equal(t, 100.0, fromOlder[0].AdSpend)
		assert.Equal(t, 200.0, fromNewer[0].AdSpend)

		// O cache guarda o resultado da busca mais nova; nenhuma chamada
		// extra ao vendor acontece aqui
		cached, err := service.FetchPerformance(context.Background(), testCredential(), "123", testFilters())
		require.NoError(t, err)
		assert.Equal(t, 200.0, cached[0].AdSpend)
	})

	t.Run("entrada expirada força nova busca", func(t *testing.T) {
		service, client, clk := newTestService(t)

		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte(insightsBody), nil).
			Times(2)

		_, err := service.FetchPerformance(context.Background(), testCredential(), "123", testFilters())
		require.NoError(t, err)

		clk.Advance(6 * time.Minute)

		_, err = service.FetchPerformance(context.Background(), testCredential(), "123", testFilters())
		require.NoError(t, err)
	})
}
