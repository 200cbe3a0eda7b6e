package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlens/marketing-insights-api/pkg/clock"
)

func TestCache(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("entrada dentro do TTL é servida", func(t *testing.T) {
		fake := clock.NewFake(start)
		c := New(fake)

		c.Set("k", "valor", 5*time.Minute)
		fake.Advance(4 * time.Minute)

		got, ok := c.Get("k")
		require.True(t, ok)
		assert.Equal(t, "valor", got)
	})

	t.Run("entrada expirada é tratada como miss e removida", func(t *testing.T) {
		fake := clock.NewFake(start)
		c := New(fake)

		c.Set("k", "valor", 5*time.Minute)
		fake.Advance(6 * time.Minute)

		_, ok := c.Get("k")
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("mudança de período produz chave distinta", func(t *testing.T) {
		fake := clock.NewFake(start)
		c := New(fake)

		keyA := Key("insights", "act_123", "2024-03-01", "2024-03-07")
		keyB := Key("insights", "act_123", "2024-03-01", "2024-03-14")
		require.NotEqual(t, keyA, keyB)

		c.Set(keyA, "semana", 5*time.Minute)

		_, ok := c.Get(keyB)
		assert.False(t, ok)
	})

	t.Run("Clear descarta todas as entradas", func(t *testing.T) {
		fake := clock.NewFake(start)
		c := New(fake)

		c.Set("a", 1, time.Minute)
		c.Set("b", 2, time.Minute)
		c.Clear()

		assert.Equal(t, 0, c.Len())
	})
}
