// Package payment defines the payment-authorization boundary: a closed set of
// wallet backends, each able to authorize a Lightning payment and return an
// opaque preimage receipt.
package payment

import (
	"context"
	"fmt"
)

// WalletType selects a payment backend. The set of selectors is closed and
// known at compile time.
type WalletType string

const (
	// WalletLightning is a direct Lightning node connection.
	WalletLightning WalletType = "lightning"

	// WalletEmbedded is an embedded SDK wallet (Breez).
	WalletEmbedded WalletType = "embedded"

	// WalletCustodial is a custodial wallet service.
	WalletCustodial WalletType = "custodial"
)

// String returns the wire form of the selector.
func (w WalletType) String() string {
	return string(w)
}

// ParseWalletType parses a wire-form selector.
func ParseWalletType(s string) (WalletType, error) {
	switch WalletType(s) {
	case WalletLightning, WalletEmbedded, WalletCustodial:
		return WalletType(s), nil
	}
	return "", fmt.Errorf("unknown wallet type %q", s)
}

// Backend is a payment-authorization collaborator. AuthorizePayment requests
// authorization of amountSats to withdrawTo and returns an opaque preimage
// receipt. Latency and receipt format are backend-specific.
type Backend interface {
	AuthorizePayment(ctx context.Context, amountSats int, withdrawTo string) (string, error)
}
