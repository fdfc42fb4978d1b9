package payment

import (
	"github.com/privacylion/go-didwallet/walleterror"
)

// Resolve maps a wallet selector to its backend. The registry holds no state
// and performs no caching: a fresh backend handle is returned per call.
//
// The switch is exhaustive over the closed selector set; an unrecognized
// value is a caller contract violation, not a lookup failure.
func Resolve(walletType WalletType) (Backend, error) {
	switch walletType {
	case WalletLightning:
		return MockWallet{}, nil
	case WalletEmbedded:
		return BreezWallet{}, nil
	case WalletCustodial:
		return CustodialWallet{}, nil
	default:
		return nil, walleterror.Newf(walleterror.KindPrecondition, "unrecognized wallet type %q", walletType)
	}
}
