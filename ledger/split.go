package ledger

import "github.com/tontinelabs/tontine/types"

// splitFee divides a payment between the fee accrual and the redistribution
// pool. The fee cut rounds down, so the pool receives any remainder.
func splitFee(fee types.Amount, shareBps uint64) (feeCut, pool types.Amount) {
	feeCut = types.Amount(mulDiv(uint64(fee), shareBps, types.BasisPoints))
	pool = fee - feeCut
	return feeCut, pool
}
