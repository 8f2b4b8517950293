package rail

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aalves77/banco/internal/domain"
	"github.com/aalves77/banco/internal/logger"
)

func testRequest() domain.TransferRequest {
	return domain.TransferRequest{
		ID:          "req-1",
		PayeeKey:    "bsantos@email.com",
		Amount:      decimal.NewFromFloat(350.00),
		SubmittedAt: time.Now(),
	}
}

func TestSimulator_SettlesWithinBounds(t *testing.T) {
	sim := NewSimulator(10*time.Millisecond, 30*time.Millisecond, logger.Nop())

	start := time.Now()
	if err := sim.Settle(context.Background(), testRequest()); err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < 10*time.Millisecond {
		t.Errorf("Settled after %v, expected at least the minimum delay", elapsed)
	}
	if elapsed > time.Second {
		t.Errorf("Settled after %v, expected well under a second", elapsed)
	}
}

func TestSimulator_ClampsInvertedBounds(t *testing.T) {
	sim := NewSimulator(20*time.Millisecond, 5*time.Millisecond, logger.Nop())

	start := time.Now()
	if err := sim.Settle(context.Background(), testRequest()); err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Settled after %v, expected the min delay to win", elapsed)
	}
}

func TestSimulator_HonorsCancellation(t *testing.T) {
	sim := NewSimulator(time.Minute, time.Minute, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := sim.Settle(ctx, testRequest())
	if err == nil {
		t.Fatal("Expected error from cancelled settlement, got nil")
	}
	if ctx.Err() == nil {
		t.Fatal("Expected context to be done")
	}
}
