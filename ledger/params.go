package ledger

import "github.com/tontinelabs/tontine/types"

// Params holds the immutable engine parameters. They are fixed at
// construction and validated exactly once; the engine never re-checks them.
type Params struct {
	// GenesisTime is the Unix timestamp at which epoch 1 begins.
	GenesisTime uint64
	// EpochDuration is the length of one epoch in seconds.
	EpochDuration uint64
	// EpochFee is the amount charged per registration or heartbeat.
	EpochFee types.Amount
	// FeeShareBps is the portion of each payment, in basis points, that
	// accrues to the fee recipient instead of the redistribution pool.
	FeeShareBps uint64
	// FeeRecipient is the initial holder of the fee accrual balance.
	FeeRecipient types.Address
}

// Validate checks parameter bounds. A FeeShareBps of 10000 would leave no
// pool portion to redistribute, so the share must be strictly below 100%.
func (p Params) Validate() error {
	if p.EpochDuration == 0 {
		return ErrZeroEpochDuration
	}
	if p.EpochFee == 0 {
		return ErrZeroEpochFee
	}
	if p.FeeShareBps >= types.BasisPoints {
		return ErrFeeShareTooHigh
	}
	if p.FeeRecipient.IsZero() {
		return ErrZeroFeeRecipient
	}
	return nil
}
