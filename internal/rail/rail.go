// Package rail models the instant-payment rail boundary. The default
// implementation simulates the settlement round trip with a bounded
// delay and never fails; a real rail client would replace it behind the
// same interface.
package rail

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/aalves77/banco/internal/domain"
)

// Rail settles one transfer request. Settle blocks until the rail
// confirms or the context is cancelled; a nil return means the transfer
// is irrevocably settled.
type Rail interface {
	Settle(ctx context.Context, req domain.TransferRequest) error
}

// Simulator is an in-process Rail that settles every request after a
// random delay between MinDelay and MaxDelay, representing the
// payment-network round trip.
type Simulator struct {
	minDelay time.Duration
	maxDelay time.Duration
	log      zerolog.Logger
}

// NewSimulator creates a simulated rail. maxDelay values below minDelay
// are clamped to minDelay.
func NewSimulator(minDelay, maxDelay time.Duration, log zerolog.Logger) *Simulator {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Simulator{
		minDelay: minDelay,
		maxDelay: maxDelay,
		log:      log,
	}
}

// Settle implements Rail. It waits out the simulated settlement delay,
// honoring context cancellation while the request is still in flight.
func (s *Simulator) Settle(ctx context.Context, req domain.TransferRequest) error {
	delay := s.minDelay
	if span := s.maxDelay - s.minDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}

	s.log.Debug().
		Str("request_id", req.ID).
		Str("payee", req.PayeeKey).
		Str("amount", req.Amount.String()).
		Dur("delay", delay).
		Msg("Simulating settlement")

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("rail: settle %s: %w", req.ID, ctx.Err())
	}
}

var _ Rail = (*Simulator)(nil)
