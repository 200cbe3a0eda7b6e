package aggregating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metadomain "github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/domain"
)

func TestExtractCopy(t *testing.T) {
	tests := []struct {
		name     string
		creative *metadomain.Creative
		want     string
	}{
		{
			name:     "body tem prioridade sobre os demais campos",
			creative: &metadomain.Creative{Body: "corpo", Title: "título"},
			want:     "corpo",
		},
		{
			name: "sem body cai para a mensagem do link",
			creative: &metadomain.Creative{
				ObjectStory: &metadomain.ObjectStory{LinkData: &metadomain.LinkData{Message: "mensagem"}},
				Title:       "título",
			},
			want: "mensagem",
		},
		{
			name: "criativo dinâmico usa o primeiro body não vazio",
			creative: &metadomain.Creative{
				AssetFeedSpec: &metadomain.AssetFeedSpec{
					Bodies: []metadomain.AssetText{{Text: "  "}, {Text: "variação"}},
					Titles: []metadomain.AssetText{{Text: "título dinâmico"}},
				},
			},
			want: "variação",
		},
		{
			name: "descrição vem antes do título dinâmico",
			creative: &metadomain.Creative{
				AssetFeedSpec: &metadomain.AssetFeedSpec{
					Descriptions: []metadomain.AssetText{{Text: "descrição"}},
					Titles:       []metadomain.AssetText{{Text: "título dinâmico"}},
				},
			},
			want: "descrição",
		},
		{
			name:     "título é o último recurso",
			creative: &metadomain.Creative{Title: "só o título"},
			want:     "só o título",
		},
		{
			name:     "criativo sem texto algum",
			creative: &metadomain.Creative{ImageURL: "https://cdn.example/x.jpg"},
			want:     "",
		},
		{
			name:     "criativo ausente",
			creative: nil,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCopy(tt.creative))
		})
	}
}

func TestFetchAdCopy(t *testing.T) {
	t.Run("ranqueia por conversão e engajamento, descartando sem texto ou sem entrega", func(t *testing.T) {
		service, client, _ := newTestService(t)

		// a: ctr 2, conversão 10% -> score 6.8
		// b: ctr 10, conversão 1%  -> score 4.6
		// c: sem texto; d: sem entrega
		body := `{"data":[
			{"id":"a","name":"A","status":"ACTIVE",
			 "creative":{"body":"Texto A"},
			 "insights":{"data":[{"spend":"50","impressions":"5000","ctr":"2",
				"actions":[{"action_type":"link_click","value":"100"},{"action_type":"purchase","value":"10"}],
				"date_start":"2024-04-01","date_stop":"2024-04-30"}]}},
			{"id":"b","name":"B","status":"ACTIVE",
			 "creative":{"object_story_spec":{"link_data":{"message":"Texto B"}}},
			 "insights":{"data":[{"spend":"50","impressions":"1000","ctr":"10",
				"actions":[{"action_type":"link_click","value":"100"},{"action_type":"purchase","value":"1"}],
				"date_start":"2024-04-01","date_stop":"2024-04-30"}]}},
			{"id":"c","name":"C","status":"ACTIVE",
			 "creative":{"image_url":"https://cdn.example/c.jpg"},
			 "insights":{"data":[{"spend":"10","impressions":"100",
				"date_start":"2024-04-01","date_stop":"2024-04-30"}]}},
			{"id":"d","name":"D","status":"ACTIVE",
			 "creative":{"body":"Texto D"},
			 "insights":{"data":[{"spend":"0","impressions":"0",
				"date_start":"2024-04-01","date_stop":"2024-04-30"}]}}
		]}`

		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte(body), nil)

		copies, err := service.FetchAdCopy(context.Background(), testCredential(), "123", testFilters())
		require.NoError(t, err)

		require.Len(t, copies, 2)
		assert.Equal(t, "Texto A", copies[0].Text)
		assert.Equal(t, 10.0, copies[0].ConversionRate)
		assert.Equal(t, "Texto B", copies[1].Text)
	})

	t.Run("nenhum texto com entrega retorna ErrNoDataFound", func(t *testing.T) {
		service, client, _ := newTestService(t)

		client.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte(`{"data":[{"id":"x","status":"ACTIVE","creative":{"image_url":"u"}}]}`), nil)

		_, err := service.FetchAdCopy(context.Background(), testCredential(), "123", testFilters())
		assert.ErrorIs(t, err, ErrNoDataFound)
	})
}
