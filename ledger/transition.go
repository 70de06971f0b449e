package ledger

import (
	"fmt"

	"github.com/tontinelabs/tontine/types"
)

// Register enrolls the caller as a living participant, charging one epoch's
// fee. A returning address must present the agent id it bound at first
// registration; its claimable balance carries over untouched.
func (l *Ledger) Register(caller types.Address, agent types.AgentID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.CurrentEpoch()

	owner, ok := l.resolver.Owner(agent)
	if !ok || owner != caller {
		return ErrNotAgentOwner
	}
	if bound, ok := l.agentIndex[agent]; ok && bound != caller {
		return ErrAgentTaken
	}

	rec, exists := l.records[caller]
	if exists {
		if rec.Alive {
			return ErrAlreadyAlive
		}
		if rec.Agent != agent {
			return ErrAgentTaken
		}
	}

	fee := l.params.EpochFee
	feeCut, pool := splitFee(fee, l.params.FeeShareBps)

	pre := l.capture(caller)
	if !exists {
		rec = &types.Participant{Address: caller, Agent: agent}
		l.records[caller] = rec
		l.agents = append(l.agents, caller)
		l.agentIndex[agent] = caller
		pre.created = true
	}

	rec.BirthEpoch = now
	rec.LastEpoch = now
	rec.Alive = true
	rec.Contribution = pool
	// Age starts at 1, so the baseline is one age-unit of the current
	// coefficient. Claimable is deliberately left alone.
	rec.Checkpoint = checkpointValue(1, l.head.AccRewardPerAge)

	l.head.AliveCount++
	l.head.Registrations++
	l.head.LivingAge++
	l.head.FeeBalance += feeCut
	l.head.TotalIn += fee

	// Effects are committed; the transfer goes last.
	if err := l.bank.TransferIn(caller, fee); err != nil {
		l.rollback(caller, pre)
		return fmt.Errorf("transfer in: %w", err)
	}

	l.emit(types.Event{
		Kind:    types.EventBorn,
		Epoch:   now,
		Actor:   caller,
		Subject: caller,
		Amount:  fee,
	})
	return nil
}

// Heartbeat pays the caller's fee for the current epoch. The grace window is
// exactly one epoch: a heartbeat is accepted only in the epoch immediately
// after the last accepted activity.
func (l *Ledger) Heartbeat(caller types.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.CurrentEpoch()

	rec, ok := l.records[caller]
	if !ok {
		return ErrNotRegistered
	}
	if !rec.Alive {
		return ErrAlreadyDead
	}
	if now == rec.LastEpoch {
		return ErrAlreadyHeartbeat
	}
	if now > rec.LastEpoch+1 {
		return ErrMissedEpoch
	}

	fee := l.params.EpochFee
	feeCut, pool := splitFee(fee, l.params.FeeShareBps)

	// Settle at the pre-increment age, then advance the checkpoint to the
	// new age under the unchanged coefficient.
	age := rec.Age()
	owed := accrued(age, l.head.AccRewardPerAge, rec.Checkpoint)

	pre := l.capture(caller)

	rec.Claimable += owed
	rec.Contribution += pool
	rec.LastEpoch = now
	rec.Checkpoint = checkpointValue(age+1, l.head.AccRewardPerAge)

	l.head.LivingAge++
	l.head.FeeBalance += feeCut
	l.head.TotalIn += fee

	if err := l.bank.TransferIn(caller, fee); err != nil {
		l.rollback(caller, pre)
		return fmt.Errorf("transfer in: %w", err)
	}

	l.emit(types.Event{
		Kind:    types.EventHeartbeat,
		Epoch:   now,
		Actor:   caller,
		Subject: caller,
		Amount:  fee,
	})
	return nil
}

// Kill finalizes the death of a lapsed participant. Anyone may call it. The
// target's accrued reward is settled into its claimable balance and its
// lifetime contribution is redistributed across all remaining living age.
//
// Kill order matters by design: a participant killed later in the same epoch
// still counts in the living age for earlier kills, so it absorbs a share of
// those redistributions into its own eventual claimable balance. Value is
// conserved either way.
func (l *Ledger) Kill(caller, target types.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.CurrentEpoch()

	rec, ok := l.records[target]
	if !ok {
		return ErrNotRegistered
	}
	if !rec.Alive {
		return ErrAlreadyDead
	}
	if now <= rec.LastEpoch+1 {
		return ErrNotDeadYet
	}

	// Age freezes at its value at death; the record keeps it for audits.
	age := rec.Age()
	owed := accrued(age, l.head.AccRewardPerAge, rec.Checkpoint)
	settled := owed

	rec.Claimable += owed
	rec.Checkpoint = checkpointValue(age, l.head.AccRewardPerAge)
	rec.Alive = false

	l.head.AliveCount--
	l.head.DeadCount++
	l.head.LivingAge -= age

	if l.head.LivingAge > 0 {
		l.head.AccRewardPerAge += mulDiv(uint64(rec.Contribution), types.PrecisionFactor, l.head.LivingAge)
	} else {
		// Last living participant: a zero-sized age pool cannot absorb
		// the contribution, so it goes back to the target itself.
		rec.Claimable += rec.Contribution
		settled += rec.Contribution
	}

	l.emit(types.Event{
		Kind:    types.EventKilled,
		Epoch:   now,
		Actor:   caller,
		Subject: target,
		Amount:  settled,
	})
	return nil
}

// Claim pays out the caller's settled reward balance. A living caller first
// has its accrued reward settled at its current age.
func (l *Ledger) Claim(caller types.Address) (types.Amount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.CurrentEpoch()

	rec, ok := l.records[caller]
	if !ok {
		return 0, ErrNotRegistered
	}

	var owed types.Amount
	age := rec.Age()
	if rec.Alive {
		owed = accrued(age, l.head.AccRewardPerAge, rec.Checkpoint)
	}

	payout := rec.Claimable + owed
	if payout == 0 {
		return 0, ErrNothingToClaim
	}

	pre := l.capture(caller)

	if rec.Alive {
		rec.Checkpoint = checkpointValue(age, l.head.AccRewardPerAge)
	}
	// Zero out before the outbound transfer.
	rec.Claimable = 0
	l.head.TotalOut += payout

	if err := l.bank.TransferOut(caller, payout); err != nil {
		l.rollback(caller, pre)
		return 0, fmt.Errorf("transfer out: %w", err)
	}

	l.emit(types.Event{
		Kind:    types.EventRewardClaimed,
		Epoch:   now,
		Actor:   caller,
		Subject: caller,
		Amount:  payout,
	})
	return payout, nil
}

// ClaimFees pays the accrued fee balance to the fee recipient.
func (l *Ledger) ClaimFees(caller types.Address) (types.Amount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.CurrentEpoch()

	if caller != l.head.FeeRecipient {
		return 0, ErrNotFeeRecipient
	}
	payout := l.head.FeeBalance
	if payout == 0 {
		return 0, ErrNothingToClaim
	}

	pre := l.capture(caller)
	l.head.FeeBalance = 0
	l.head.TotalOut += payout

	if err := l.bank.TransferOut(caller, payout); err != nil {
		l.rollback(caller, pre)
		return 0, fmt.Errorf("transfer out: %w", err)
	}

	l.emit(types.Event{
		Kind:    types.EventFeeClaimed,
		Epoch:   now,
		Actor:   caller,
		Subject: caller,
		Amount:  payout,
	})
	return payout, nil
}

// SetFeeRecipient hands the fee accrual claim to a new address. Only the
// current holder may transfer it.
func (l *Ledger) SetFeeRecipient(caller, next types.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.head.FeeRecipient {
		return ErrNotFeeRecipient
	}
	if next.IsZero() {
		return ErrZeroFeeRecipient
	}

	l.head.FeeRecipient = next

	l.emit(types.Event{
		Kind:    types.EventFeeRecipientChanged,
		Epoch:   l.clock.CurrentEpoch(),
		Actor:   caller,
		Subject: next,
	})
	return nil
}
