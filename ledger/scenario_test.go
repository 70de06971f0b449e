package ledger

import (
	"testing"

	"github.com/tontinelabs/tontine/types"
)

// TestScenario_AgeWeightedSplit verifies that a corpse's contribution is
// divided across survivors in proportion to their ages. With survivor ages 3
// and 1, the shares come out 3:1.
func TestScenario_AgeWeightedSplit(t *testing.T) {
	e := newEnv(t)
	old := e.join(1) // keeps up from epoch 1
	prey := e.join(2)

	e.setEpoch(2)
	if err := e.ledger.Heartbeat(old); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	e.setEpoch(3)
	if err := e.ledger.Heartbeat(old); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	young := e.join(3) // joins late, age 1

	if err := e.ledger.Kill(young, prey); err != nil {
		t.Fatalf("kill: %v", err)
	}

	// prey contributed one pool portion (900); living age after the kill is
	// old(3) + young(1) = 4, so each age-unit is worth 225.
	snaps, err := e.ledger.SnapshotRange(0, 2)
	if err != nil {
		t.Fatalf("snapshot range: %v", err)
	}
	byAddr := make(map[types.Address]types.Snapshot)
	for _, s := range snaps {
		byAddr[s.Address] = s
	}

	if got := byAddr[old].Pending; got != 675 {
		t.Errorf("old survivor pending = %d, want 675", got)
	}
	if got := byAddr[young].Pending; got != 225 {
		t.Errorf("young survivor pending = %d, want 225", got)
	}
	if got := byAddr[prey].Claimable; got != 0 {
		t.Errorf("prey claimable = %d, want 0", got)
	}

	e.checkConservation()
}

// TestScenario_KillOrderWithinEpoch pins down the intentional order
// dependence: a participant killed later in the epoch still counted as
// living age for the earlier kill, so it absorbed a share of that
// redistribution into its own claimable balance.
func TestScenario_KillOrderWithinEpoch(t *testing.T) {
	run := func(t *testing.T, firstByte, secondByte byte) (first, second, survivorPending types.Amount) {
		t.Helper()
		e := newEnv(t)
		a := e.join(1)
		e.join(2)
		e.join(3)

		e.setEpoch(2)
		if err := e.ledger.Heartbeat(a); err != nil {
			t.Fatalf("heartbeat: %v", err)
		}
		e.setEpoch(3)
		if err := e.ledger.Heartbeat(a); err != nil {
			t.Fatalf("heartbeat: %v", err)
		}

		if err := e.ledger.Kill(a, addr(firstByte)); err != nil {
			t.Fatalf("kill first: %v", err)
		}
		if err := e.ledger.Kill(a, addr(secondByte)); err != nil {
			t.Fatalf("kill second: %v", err)
		}

		e.checkConservation()

		recFirst, _ := e.ledger.Record(addr(firstByte))
		recSecond, _ := e.ledger.Record(addr(secondByte))
		snaps, err := e.ledger.SnapshotRange(0, 0)
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		return recFirst.Claimable, recSecond.Claimable, snaps[0].Pending
	}

	// Survivor age 3, two corpses of age 1 each. Killing the first corpse
	// spreads 900 over 4 age-units; the second corpse absorbs 225 of that
	// before dying itself, after which its own 900 spreads over just 3.
	t.Run("forward", func(t *testing.T) {
		first, second, pending := run(t, 2, 3)
		if first != 0 || second != 225 {
			t.Errorf("claimables = %d, %d, want 0, 225", first, second)
		}
		if pending != 1575 {
			t.Errorf("survivor pending = %d, want 1575", pending)
		}
	})

	t.Run("reverse", func(t *testing.T) {
		first, second, pending := run(t, 3, 2)
		if first != 0 || second != 225 {
			t.Errorf("claimables = %d, %d, want 0, 225", first, second)
		}
		if pending != 1575 {
			t.Errorf("survivor pending = %d, want 1575", pending)
		}
	})
}

// TestScenario_Churn runs several epochs of joins, heartbeats, kills and
// claims and checks that every unit is accounted for at the end.
func TestScenario_Churn(t *testing.T) {
	e := newEnv(t)

	a := e.join(1)
	b := e.join(2)
	c := e.join(3)

	e.setEpoch(2)
	for _, p := range []types.Address{a, b, c} {
		if err := e.ledger.Heartbeat(p); err != nil {
			t.Fatalf("heartbeat: %v", err)
		}
	}

	// c lapses; d joins and kills it.
	e.setEpoch(4)
	d := e.join(4)
	if err := e.ledger.Kill(d, c); err != nil {
		t.Fatalf("kill c: %v", err)
	}
	// a and b lapsed too while the clock jumped.
	if err := e.ledger.Kill(d, a); err != nil {
		t.Fatalf("kill a: %v", err)
	}
	if err := e.ledger.Kill(d, b); err != nil {
		t.Fatalf("kill b: %v", err)
	}

	e.checkConservation()

	// Every contribution flowed somewhere: b died last of the three, so
	// it absorbed shares from the earlier kills.
	recB, _ := e.ledger.Record(b)
	if recB.Claimable == 0 {
		t.Error("last-killed participant should have absorbed redistributions")
	}

	// Corpses can still collect what they absorbed.
	if _, err := e.ledger.Claim(b); err != nil {
		t.Fatalf("claim by corpse: %v", err)
	}
	e.checkConservation()

	// d, the sole survivor, holds a pending share too.
	snaps, err := e.ledger.SnapshotRange(3, 3)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snaps[0].Address != d {
		t.Fatalf("index 3 is %s, want %s", snaps[0].Address.Short(), d.Short())
	}
	if snaps[0].Pending == 0 {
		t.Error("survivor should have a pending share")
	}
	if _, err := e.ledger.Claim(d); err != nil {
		t.Fatalf("claim by survivor: %v", err)
	}

	// The fee recipient drains its cut.
	if _, err := e.ledger.ClaimFees(feeRecipient); err != nil {
		t.Fatalf("claim fees: %v", err)
	}
	e.checkConservation()

	// After all claims the pool holds only what is still pending or
	// committed as living contribution.
	head := e.ledger.Head()
	if uint64(e.bank.Pool()) != uint64(head.TotalIn)-uint64(head.TotalOut) {
		t.Errorf("bank pool %d disagrees with ledger flow %d",
			e.bank.Pool(), uint64(head.TotalIn)-uint64(head.TotalOut))
	}
}
