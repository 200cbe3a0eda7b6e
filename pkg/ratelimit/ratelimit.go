package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adlens/marketing-insights-api/pkg/clock"
)

// Config define os parâmetros do limitador de requisições.
type Config struct {
	Window      time.Duration // tamanho da janela de contagem
	MaxRequests int           // teto de requisições por janela
	MinSpacing  time.Duration // espaçamento mínimo entre requisições
}

// DefaultConfig reflete os limites praticados pela API do Meta:
// 50 requisições a cada 5 minutos, com 2 segundos entre chamadas.
func DefaultConfig() Config {
	return Config{
		Window:      5 * time.Minute,
		MaxRequests: 50,
		MinSpacing:  2 * time.Second,
	}
}

// Limiter controla o ritmo das chamadas de saída para a API externa.
// Uma instância é compartilhada por todos os agregadores, por isso o
// estado interno é protegido por mutex.
type Limiter struct {
	cfg   Config
	clock clock.Clock

	mu              sync.Mutex
	windowStart     time.Time
	windowRequests  int
	lastRequestTime time.Time
}

// New cria um Limiter com o relógio injetado.
func New(cfg Config, clk clock.Clock) *Limiter {
	return &Limiter{
		cfg:   cfg,
		clock: clk,
	}
}

// Acquire bloqueia até que seja seguro emitir a próxima requisição.
// Só falha se o contexto for cancelado durante a espera; nenhuma
// requisição é descartada. O mutex protege apenas o estado da janela:
// as esperas acontecem fora dele, então o cancelamento do contexto
// interrompe qualquer chamada enfileirada.
func (l *Limiter) Acquire(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := l.clock.Now()

		if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.cfg.Window {
			l.windowStart = now
			l.windowRequests = 0
		}

		if l.windowRequests >= l.cfg.MaxRequests {
			wait := l.cfg.Window - now.Sub(l.windowStart)
			requests := l.windowRequests
			l.mu.Unlock()

			logrus.WithFields(logrus.Fields{
				"window_requests": requests,
				"wait":            wait.String(),
			}).Warn("ratelimit: janela esgotada, aguardando a próxima")

			if err := l.clock.Sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}

		if !l.lastRequestTime.IsZero() {
			if elapsed := now.Sub(l.lastRequestTime); elapsed < l.cfg.MinSpacing {
				wait := l.cfg.MinSpacing - elapsed
				l.mu.Unlock()

				if err := l.clock.Sleep(ctx, wait); err != nil {
					return err
				}
				continue
			}
		}

		l.lastRequestTime = now
		l.windowRequests++
		l.mu.Unlock()
		return nil
	}
}
