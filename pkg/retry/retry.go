package retry

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adlens/marketing-insights-api/pkg/clock"
)

// ErrMaxRetriesExceeded indica que todas as tentativas falharam com erros
// passíveis de retry. O último erro fica encadeado via %w no chamador.
var ErrMaxRetriesExceeded = errors.New("max retries exceeded")

// Config define a política de retry com backoff exponencial.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Cooldown é uma pausa fixa após o sucesso, para não saturar o
	// limitador logo na chamada seguinte.
	Cooldown time.Duration
	// Retryable decide se um erro merece nova tentativa. Erros fora
	// desse critério propagam na primeira ocorrência.
	Retryable func(error) bool
}

// DefaultConfig é a política usada contra a API do Meta.
func DefaultConfig(retryable func(error) bool) Config {
	return Config{
		MaxAttempts: 5,
		BaseDelay:   1 * time.Second,
		MaxDelay:    30 * time.Second,
		Cooldown:    500 * time.Millisecond,
		Retryable:   retryable,
	}
}

// Controller executa operações falíveis com backoff exponencial.
type Controller struct {
	cfg   Config
	clock clock.Clock
}

// New cria um Controller com o relógio injetado.
func New(cfg Config, clk clock.Clock) *Controller {
	return &Controller{
		cfg:   cfg,
		clock: clk,
	}
}

// Execute roda a operação até obter sucesso, esgotar as tentativas ou
// encontrar um erro não passível de retry. A espera entre tentativas é
// min(BaseDelay * 2^tentativa, MaxDelay).
func (c *Controller) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			if c.cfg.Cooldown > 0 {
				if sleepErr := c.clock.Sleep(ctx, c.cfg.Cooldown); sleepErr != nil {
					return sleepErr
				}
			}
			return nil
		}

		if c.cfg.Retryable == nil || !c.cfg.Retryable(err) {
			return err
		}

		lastErr = err

		if attempt == c.cfg.MaxAttempts-1 {
			break
		}

		delay := c.backoff(attempt)
		logrus.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"delay":   delay.String(),
			"error":   err.Error(),
		}).Warn("retry: falha temporária, aguardando nova tentativa")

		if sleepErr := c.clock.Sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}

	return errors.Join(ErrMaxRetriesExceeded, lastErr)
}

func (c *Controller) backoff(attempt int) time.Duration {
	delay := c.cfg.BaseDelay << uint(attempt)
	if delay > c.cfg.MaxDelay || delay <= 0 {
		delay = c.cfg.MaxDelay
	}
	return delay
}
