package aggregating

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func adJSON(id, status string, spend, ctr string) string {
	return fmt.Sprintf(`{
		"id":%q,"name":"Anúncio %s","status":%q,
		"creative":{"id":"cr-%s","thumbnail_url":"https://cdn.example/%s.jpg"},
		"insights":{"data":[{
			"spend":%q,"impressions":"1000","ctr":%q,
			"actions":[{"action_type":"link_click","value":"30"}],
			"date_start":"2024-04-01","date_stop":"2024-04-30"
		}]}
	}`, id, id, status, id, id, spend, ctr)
}

func TestFetchTopAds(t *testing.T) {
	t.Run("ranqueia por gasto e CTR, filtrando pausados e sem entrega", func(t *testing.T) {
		service, client, _ := newTestService(t)

		body := `{"data":[` + strings.Join([]string{
			adJSON("a", "ACTIVE", "10", "5"),
			adJSON("b", "ACTIVE", "100", "1"),
			adJSON("c", "PAUSED", "500", "9"),
			`{"id":"d","name":"Anúncio d","status":"ACTIVE"}`,
		}, ",") + `]}`

		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte(body), nil)

		ads, err := service.FetchTopAds(context.Background(), testCredential(), "123", testFilters())
		require.NoError(t, err)

		// c está pausado e d não teve entrega; b vence pela ponderação
		// do gasto (100*0.6+1*0.4 contra 10*0.6+5*0.4)
		require.Len(t, ads, 2)
		assert.Equal(t, "b", ads[0].ID)
		assert.Equal(t, "a", ads[1].ID)
		assert.Equal(t, "facebook", ads[0].Platform)
		assert.Equal(t, "https://cdn.example/b.jpg", ads[0].Image)
	})

	t.Run("limita o ranking a dez anúncios", func(t *testing.T) {
		service, client, _ := newTestService(t)

		items := make([]string, 0, 12)
		for i := 0; i < 12; i++ {
			items = append(items, adJSON(fmt.Sprintf("ad-%02d", i), "ACTIVE", fmt.Sprintf("%d", (i+1)*10), "2"))
		}
		body := `{"data":[` + strings.Join(items, ",") + `]}`

		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte(body), nil)

		ads, err := service.FetchTopAds(context.Background(), testCredential(), "123", testFilters())
		require.NoError(t, err)

		require.Len(t, ads, 10)
		assert.Equal(t, "ad-11", ads[0].ID)
		assert.Equal(t, "ad-02", ads[9].ID)
	})

	t.Run("conta sem anúncio ativo retorna ErrNoDataFound", func(t *testing.T) {
		service, client, _ := newTestService(t)

		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte(`{"data":[`+adJSON("x", "PAUSED", "10", "1")+`]}`), nil)

		_, err := service.FetchTopAds(context.Background(), testCredential(), "123", testFilters())
		assert.ErrorIs(t, err, ErrNoDataFound)
	})
}
