package clock

import (
	"context"
	"time"
)

// Clock abstrai o relógio do sistema para que limitador, cache e retry
// possam ser testados com tempo determinístico.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// New retorna um Clock baseado no relógio real do sistema.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Sleep aguarda a duração informada ou o cancelamento do contexto,
// o que ocorrer primeiro.
func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
