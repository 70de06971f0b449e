package ledger

import "errors"

// Sentinel errors for lifecycle, payout and query validation.
// Callers may use errors.Is to check for specific failure types.
var (
	ErrAgentTaken       = errors.New("agent id already bound to another address")  // re-registration with a different agent id, or agent id in use
	ErrNotAgentOwner    = errors.New("caller does not control agent id")           // resolver lookup missing or owned by someone else
	ErrAlreadyAlive     = errors.New("participant already alive")                  // register while alive
	ErrNotRegistered    = errors.New("participant never registered")               // no record for address
	ErrAlreadyDead      = errors.New("participant already dead")                   // heartbeat/kill on a dead record
	ErrAlreadyHeartbeat = errors.New("already heartbeat this epoch")               // repeated heartbeat in one epoch
	ErrMissedEpoch      = errors.New("missed heartbeat epoch")                     // grace window lapsed, heartbeat refused
	ErrNotDeadYet       = errors.New("participant still within grace window")      // kill before the grace window lapsed
	ErrNothingToClaim   = errors.New("nothing to claim")                           // zero payout for participant or fee recipient
	ErrNotFeeRecipient  = errors.New("caller is not the fee recipient")            // fee claim/transfer by anyone else
	ErrInvalidRange     = errors.New("range start exceeds range end")              // batch query over an empty or inverted range
)

// Sentinel errors for construction-time parameter validation.
var (
	ErrZeroEpochDuration = errors.New("epoch duration must be positive")
	ErrZeroEpochFee      = errors.New("epoch fee must be positive")
	ErrFeeShareTooHigh   = errors.New("fee share must be below 100%")
	ErrZeroFeeRecipient  = errors.New("fee recipient must not be the zero address")
)
