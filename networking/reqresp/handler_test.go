package reqresp

import (
	"errors"
	"testing"
	"time"

	bankmem "github.com/tontinelabs/tontine/bank/memory"
	"github.com/tontinelabs/tontine/clock"
	idmem "github.com/tontinelabs/tontine/identity/memory"
	"github.com/tontinelabs/tontine/ledger"
	"github.com/tontinelabs/tontine/types"
)

func setupTestLedger(t *testing.T, participants int) *ledger.Ledger {
	t.Helper()

	bank := bankmem.New()
	registry := idmem.New()

	params := ledger.Params{
		GenesisTime:   1000,
		EpochDuration: 10,
		EpochFee:      1000,
		FeeShareBps:   1000,
	}
	params.FeeRecipient[0] = 0xFE

	c := clock.NewWithTimeFunc(params.GenesisTime, params.EpochDuration, func() time.Time {
		return time.Unix(int64(params.GenesisTime), 0)
	})

	l, err := ledger.New(ledger.Config{
		Params:   params,
		Bank:     bank,
		Resolver: registry,
		Clock:    c,
	})
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	for i := 0; i < participants; i++ {
		var addr types.Address
		var agent types.AgentID
		addr[0] = byte(i + 1)
		agent[0] = byte(i + 1)
		if err := registry.Bind(agent, addr); err != nil {
			t.Fatalf("bind: %v", err)
		}
		bank.Mint(addr, 10_000)
		if err := l.Register(addr, agent); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	return l
}

func TestGetStatus(t *testing.T) {
	l := setupTestLedger(t, 3)
	handler := NewHandler(l)

	status := handler.GetStatus()
	if status == nil {
		t.Fatal("GetStatus returned nil")
	}
	if status.Epoch != 1 {
		t.Errorf("Epoch = %d, want 1", status.Epoch)
	}
	if status.AliveCount != 3 || status.Registrations != 3 || status.LivingAge != 3 {
		t.Errorf("unexpected counters: %+v", status)
	}
	if status.FeeBalance != 300 {
		t.Errorf("FeeBalance = %d, want 300", status.FeeBalance)
	}
}

func TestHandleSnapshotsByRange(t *testing.T) {
	l := setupTestLedger(t, 5)
	handler := NewHandler(l)

	snaps := handler.HandleSnapshotsByRange(&RangeRequest{Start: 1, End: 3})
	if len(snaps) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(snaps))
	}
	if snaps[0].Index != 1 || snaps[2].Index != 3 {
		t.Errorf("unexpected indices: %d..%d", snaps[0].Index, snaps[2].Index)
	}

	// An out-of-bounds range yields an empty response, not a failure.
	if snaps := handler.HandleSnapshotsByRange(&RangeRequest{Start: 10, End: 20}); len(snaps) != 0 {
		t.Errorf("got %d snapshots for out-of-bounds range, want 0", len(snaps))
	}
}

func TestHandleSnapshotsByRange_CapsOversizedRequest(t *testing.T) {
	l := setupTestLedger(t, 2)
	handler := NewHandler(l)

	// The cap applies to the requested span before clamping to the list.
	snaps := handler.HandleSnapshotsByRange(&RangeRequest{Start: 0, End: ^uint64(0)})
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}

	start, end := clampRequest(&RangeRequest{Start: 0, End: ^uint64(0)})
	if start != 0 || end != MaxRequestSnapshots-1 {
		t.Errorf("clamped to [%d, %d], want [0, %d]", start, end, MaxRequestSnapshots-1)
	}
}

func TestHandleKillableByRange(t *testing.T) {
	l := setupTestLedger(t, 3)
	handler := NewHandler(l)

	// Everyone registered this epoch: nothing is killable yet.
	snaps := handler.HandleKillableByRange(&RangeRequest{Start: 0, End: 10})
	if len(snaps) != 0 {
		t.Errorf("got %d killable at registration epoch, want 0", len(snaps))
	}
}

func TestValidateStatus(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		ok     bool
	}{
		{
			name:   "fresh ledger",
			status: Status{},
			ok:     true,
		},
		{
			name:   "consistent counters",
			status: Status{Epoch: 5, AliveCount: 2, DeadCount: 1, Registrations: 4, LivingAge: 7},
			ok:     true,
		},
		{
			name:   "registrations below alive plus dead",
			status: Status{AliveCount: 2, DeadCount: 2, Registrations: 3, LivingAge: 2},
			ok:     false,
		},
		{
			name:   "living age without living participants",
			status: Status{Registrations: 1, DeadCount: 1, LivingAge: 3},
			ok:     false,
		},
		{
			name:   "living age below alive count",
			status: Status{AliveCount: 3, Registrations: 3, LivingAge: 2},
			ok:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatus(&tt.status)
			if tt.ok && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidStatus) {
				t.Errorf("err = %v, want ErrInvalidStatus", err)
			}
		})
	}
}
