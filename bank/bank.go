// Package bank defines the settlement-currency boundary of the ledger engine.
//
// The engine only ever moves value through this interface: fees are pulled in
// with TransferIn and payouts pushed out with TransferOut. Each call must
// either succeed atomically or report an error; the engine never assumes
// push-based notifications from the currency side.
package bank

import "github.com/tontinelabs/tontine/types"

// Bank moves settlement currency between participant accounts and the
// ledger's pool.
type Bank interface {
	// TransferIn pulls amount from the given account into the pool.
	TransferIn(from types.Address, amount types.Amount) error
	// TransferOut pushes amount from the pool to the given account.
	TransferOut(to types.Address, amount types.Amount) error
}
