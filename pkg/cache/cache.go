package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/adlens/marketing-insights-api/pkg/clock"
)

// Cache é uma memoização de curta duração das respostas da API externa.
// As entradas expiram por TTL e são removidas na primeira leitura após a
// expiração. Não há limite de chaves: o universo de contas e períodos de
// um painel é pequeno e a instância vive apenas enquanto o processo.
type Cache struct {
	clock clock.Clock

	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	data      any
	expiresAt time.Time
}

// New cria um Cache vazio com o relógio injetado.
func New(clk clock.Clock) *Cache {
	return &Cache{
		clock:   clk,
		entries: make(map[string]entry),
	}
}

// Key compõe uma chave de cache a partir das partes informadas
// (endpoint, credencial, período). Qualquer parte diferente produz uma
// chave diferente, de modo que uma mudança de período nunca reaproveita
// a entrada anterior.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

// Get retorna o dado armazenado para a chave, ou false se ausente ou
// expirado. Entradas expiradas são removidas na hora.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.clock.Now().After(e.expiresAt) {
		c.mu.Lock()
		// Reconfere sob o lock de escrita: outra goroutine pode ter
		// regravado a chave nesse intervalo.
		if cur, still := c.entries[key]; still && c.clock.Now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.data, true
}

// Set grava o dado com o TTL da categoria correspondente.
func (c *Cache) Set(key string, data any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		data:      data,
		expiresAt: c.clock.Now().Add(ttl),
	}
}

// Delete remove uma entrada específica.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear descarta todas as entradas. Usado ao desconectar uma conta.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len retorna o número de entradas ainda armazenadas, expiradas ou não.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
