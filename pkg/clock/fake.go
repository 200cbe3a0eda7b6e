package clock

import (
	"context"
	"sync"
	"time"
)

// Fake é um Clock controlado manualmente para testes. Sleep avança o
// relógio imediatamente e registra as durações aguardadas.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	Sleeps []time.Duration
}

// NewFake cria um Fake posicionado no instante informado.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if d > 0 {
		f.now = f.now.Add(d)
		f.Sleeps = append(f.Sleeps, d)
	}
	return nil
}

// Advance move o relógio para frente sem registrar uma espera.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
