package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/privacylion/go-didwallet/walleterror"
)

// MockWallet authorizes immediately. It stands in for a direct Lightning node
// connection in development and tests.
type MockWallet struct{}

// AuthorizePayment returns a fresh mock preimage without delay.
func (MockWallet) AuthorizePayment(ctx context.Context, amountSats int, withdrawTo string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", walleterror.New(walleterror.KindPayment, "payment canceled", err)
	}
	return "mock_preimage_" + uuid.NewString(), nil
}

// BreezWallet simulates an embedded-SDK wallet with its characteristic
// round-trip latency.
type BreezWallet struct{}

// AuthorizePayment returns a fresh preimage after the simulated SDK delay.
func (BreezWallet) AuthorizePayment(ctx context.Context, amountSats int, withdrawTo string) (string, error) {
	if err := sleep(ctx, 800*time.Millisecond); err != nil {
		return "", err
	}
	return "breez_preimage_" + uuid.NewString(), nil
}

// CustodialWallet simulates a custodial wallet service.
type CustodialWallet struct{}

// AuthorizePayment returns a fresh preimage after the simulated service delay.
func (CustodialWallet) AuthorizePayment(ctx context.Context, amountSats int, withdrawTo string) (string, error) {
	if err := sleep(ctx, 600*time.Millisecond); err != nil {
		return "", err
	}
	return "custodial_preimage_" + uuid.NewString(), nil
}

// sleep waits for the simulated backend latency, honoring cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return walleterror.New(walleterror.KindPayment, "payment canceled", ctx.Err())
	case <-timer.C:
		return nil
	}
}
