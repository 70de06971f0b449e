package types

//go:generate go run github.com/ferranbt/fastssz/sszgen --path=. --objs=Participant,Header,Event,Snapshot

// SSZ Containers

// Participant is the per-identity lifecycle record. One record exists per
// address that has ever registered; death freezes fields, it never deletes.
type Participant struct {
	Address Address `ssz-size:"20"`
	Agent   AgentID `ssz-size:"32"`
	// BirthEpoch is the epoch of the current life's registration.
	// Zero means the address has never registered.
	BirthEpoch Epoch
	// LastEpoch is the epoch of the most recent accepted heartbeat or
	// registration.
	LastEpoch Epoch
	Alive     bool
	// Contribution is the cumulative pool portion paid in during the
	// current life.
	Contribution Amount
	// Checkpoint is age*AccRewardPerAge/PrecisionFactor at the last
	// settlement; the baseline for lazy reward accrual.
	Checkpoint Amount
	// Claimable is settled-but-unclaimed reward. Survives death and
	// re-registration.
	Claimable Amount
}

// Age returns the number of consecutive epochs the participant has remained
// alive in its current life. Dead records keep their frozen fields, so a dead
// participant reports the age it held at death. Never-registered records
// report 0.
func (p *Participant) Age() uint64 {
	if p.BirthEpoch == 0 {
		return 0
	}
	return uint64(p.LastEpoch-p.BirthEpoch) + 1
}

// Killable reports whether the participant has lapsed past the one-epoch
// grace window and may be removed permissionlessly.
func (p *Participant) Killable(now Epoch) bool {
	return p.Alive && now > p.LastEpoch+1
}

// Header is the singleton global ledger state.
type Header struct {
	AliveCount    uint64
	DeadCount     uint64
	Registrations uint64
	// LivingAge is the sum of ages over all currently alive participants,
	// maintained incrementally.
	LivingAge uint64
	// AccRewardPerAge is the cumulative reward issued per unit of age since
	// genesis, scaled by PrecisionFactor. Monotonically non-decreasing.
	AccRewardPerAge uint64
	FeeBalance      Amount
	FeeRecipient    Address `ssz-size:"20"`
	// TotalIn and TotalOut track all value moved through the bank, for
	// conservation audits.
	TotalIn  Amount
	TotalOut Amount
}

// Event kinds, in the order they were introduced.
const (
	EventBorn uint64 = iota + 1
	EventHeartbeat
	EventKilled
	EventRewardClaimed
	EventFeeClaimed
	EventFeeRecipientChanged
)

// Event is an observable ledger event for external indexing. It is not used
// for internal control flow.
type Event struct {
	Kind  uint64
	Epoch Epoch
	// Actor is the address that invoked the operation.
	Actor Address `ssz-size:"20"`
	// Subject is the address the operation applied to (the kill target,
	// otherwise the actor).
	Subject Address `ssz-size:"20"`
	Amount  Amount
	// Resulting counters after the operation.
	AliveCount uint64
	LivingAge  uint64
}

// Snapshot is a full lifecycle projection of one participant, served to
// batch query consumers.
type Snapshot struct {
	Index   uint64
	Address Address `ssz-size:"20"`
	Agent   AgentID `ssz-size:"32"`

	BirthEpoch   Epoch
	LastEpoch    Epoch
	Alive        bool
	Age          uint64
	Contribution Amount
	Claimable    Amount
	// Pending is the accrued-but-unsettled reward at query time. Always 0
	// for dead records, whose accrual was settled at the kill.
	Pending Amount
}
