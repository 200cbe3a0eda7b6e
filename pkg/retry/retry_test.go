package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlens/marketing-insights-api/pkg/clock"
)

var errRateLimited = errors.New("too many calls")

func isRateLimited(err error) bool {
	return errors.Is(err, errRateLimited)
}

func TestController_Execute(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("sucesso na quinta tentativa dentro do limite", func(t *testing.T) {
		fake := clock.NewFake(start)
		ctrl := New(Config{
			MaxAttempts: 5,
			BaseDelay:   1 * time.Second,
			MaxDelay:    30 * time.Second,
			Retryable:   isRateLimited,
		}, fake)

		calls := 0
		err := ctrl.Execute(context.Background(), func(ctx context.Context) error {
			calls++
			if calls < 5 {
				return errRateLimited
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 5, calls)

		// Esperas entre tentativas nunca decrescem: 1s, 2s, 4s, 8s
		require.Len(t, fake.Sleeps, 4)
		for i := 1; i < len(fake.Sleeps); i++ {
			assert.GreaterOrEqual(t, fake.Sleeps[i], fake.Sleeps[i-1])
		}
	})

	t.Run("backoff é limitado por MaxDelay", func(t *testing.T) {
		fake := clock.NewFake(start)
		ctrl := New(Config{
			MaxAttempts: 6,
			BaseDelay:   4 * time.Second,
			MaxDelay:    10 * time.Second,
			Retryable:   isRateLimited,
		}, fake)

		err := ctrl.Execute(context.Background(), func(ctx context.Context) error {
			return errRateLimited
		})

		require.Error(t, err)
		for _, d := range fake.Sleeps {
			assert.LessOrEqual(t, d, 10*time.Second)
		}
	})

	t.Run("erro não recuperável propaga na primeira ocorrência", func(t *testing.T) {
		fake := clock.NewFake(start)
		ctrl := New(Config{
			MaxAttempts: 5,
			BaseDelay:   1 * time.Second,
			MaxDelay:    30 * time.Second,
			Retryable:   isRateLimited,
		}, fake)

		fatal := errors.New("payload malformado")
		calls := 0
		err := ctrl.Execute(context.Background(), func(ctx context.Context) error {
			calls++
			return fatal
		})

		assert.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, calls)
		assert.Empty(t, fake.Sleeps)
	})

	t.Run("esgotar as tentativas retorna ErrMaxRetriesExceeded", func(t *testing.T) {
		fake := clock.NewFake(start)
		ctrl := New(Config{
			MaxAttempts: 3,
			BaseDelay:   1 * time.Second,
			MaxDelay:    30 * time.Second,
			Retryable:   isRateLimited,
		}, fake)

		calls := 0
		err := ctrl.Execute(context.Background(), func(ctx context.Context) error {
			calls++
			return errRateLimited
		})

		assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
		assert.ErrorIs(t, err, errRateLimited)
		assert.Equal(t, 3, calls)
	})

	t.Run("aplica o cooldown após o sucesso", func(t *testing.T) {
		fake := clock.NewFake(start)
		ctrl := New(Config{
			MaxAttempts: 3,
			BaseDelay:   1 * time.Second,
			MaxDelay:    30 * time.Second,
			Cooldown:    500 * time.Millisecond,
			Retryable:   isRateLimited,
		}, fake)

		err := ctrl.Execute(context.Background(), func(ctx context.Context) error {
			return nil
		})

		require.NoError(t, err)
		require.Len(t, fake.Sleeps, 1)
		assert.Equal(t, 500*time.Millisecond, fake.Sleeps[0])
	})
}
