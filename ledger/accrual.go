package ledger

import (
	"math/big"

	"github.com/tontinelabs/tontine/types"
)

// The accumulator follows the standard proportional-accrual pattern: the
// global coefficient advances once per death event in O(1), and every
// participant's owed reward is derived lazily from the delta between the
// current coefficient and the participant's own checkpoint. No operation
// ever iterates over participants.

// mulDiv computes a*b/den without intermediate overflow.
func mulDiv(a, b, den uint64) uint64 {
	var x big.Int
	x.Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	x.Div(&x, new(big.Int).SetUint64(den))
	return x.Uint64()
}

// checkpointValue is the accrual baseline for a participant of the given age
// under the given coefficient.
func checkpointValue(age, accRewardPerAge uint64) types.Amount {
	return types.Amount(mulDiv(age, accRewardPerAge, types.PrecisionFactor))
}

// accrued returns the reward owed to a participant of the given age since its
// last checkpoint.
func accrued(age, accRewardPerAge uint64, checkpoint types.Amount) types.Amount {
	v := mulDiv(age, accRewardPerAge, types.PrecisionFactor)
	if v <= uint64(checkpoint) {
		return 0
	}
	return types.Amount(v - uint64(checkpoint))
}
