package aggregating

import (
	"sync"
	"time"

	"github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/adlens/marketing-insights-api/internal/config"
	"github.com/adlens/marketing-insights-api/internal/domain"
	"github.com/adlens/marketing-insights-api/pkg/cache"
	"github.com/adlens/marketing-insights-api/pkg/clock"
)

// Service implementa os cinco agregadores de leitura sobre o Graph API.
// Cache e limitador são injetados, nunca estado de pacote.
type Service struct {
	cfg    *config.Config
	client metaclient.Client
	cache  *cache.Cache
	clock  clock.Clock

	// generations descarta respostas de buscas supersedidas: uma busca
	// antiga que termina depois de uma mais nova não regrava o cache.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewService cria o serviço de agregação.
func NewService(cfg *config.Config, client metaclient.Client, c *cache.Cache, clk clock.Clock) *Service {
	return &Service{
		cfg:         cfg,
		client:      client,
		cache:       c,
		clock:       clk,
		generations: make(map[string]uint64),
	}
}

var _ Aggregator = (*Service)(nil)

// beginFetch registra o início de uma busca para a chave e retorna o
// token de geração correspondente.
func (s *Service) beginFetch(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[key]++
	return s.generations[key]
}

// storeIfCurrent grava no cache apenas se nenhuma busca mais nova para
// a mesma chave começou nesse meio tempo. A resposta antiga ainda é
// devolvida ao chamador original, mas não contamina o estado
// compartilhado.
func (s *Service) storeIfCurrent(key string, gen uint64, data any, ttl time.Duration) {
	s.mu.Lock()
	current := s.generations[key]
	s.mu.Unlock()

	if current == gen {
		s.cache.Set(key, data, ttl)
	}
}

// insightKey compõe a chave de cache de uma consulta de métricas:
// endpoint + credencial + conta + período.
func insightKey(endpoint string, cred domain.Credential, accountID string, filters domain.InsightFilters) string {
	return cache.Key(endpoint, cred.AccessToken, accountID, filters.RangeKey())
}
