package memory

import (
	"errors"
	"testing"

	"github.com/tontinelabs/tontine/types"
)

func TestTransfers(t *testing.T) {
	b := New()
	var alice, bob types.Address
	alice[0] = 1
	bob[0] = 2

	b.Mint(alice, 500)
	if got := b.Balance(alice); got != 500 {
		t.Fatalf("balance = %d, want 500", got)
	}

	if err := b.TransferIn(alice, 300); err != nil {
		t.Fatalf("transfer in: %v", err)
	}
	if got := b.Balance(alice); got != 200 {
		t.Errorf("balance = %d, want 200", got)
	}
	if got := b.Pool(); got != 300 {
		t.Errorf("pool = %d, want 300", got)
	}

	if err := b.TransferOut(bob, 100); err != nil {
		t.Fatalf("transfer out: %v", err)
	}
	if got := b.Balance(bob); got != 100 {
		t.Errorf("balance = %d, want 100", got)
	}
	if got := b.Pool(); got != 200 {
		t.Errorf("pool = %d, want 200", got)
	}
}

func TestTransferIn_InsufficientFunds(t *testing.T) {
	b := New()
	var alice types.Address
	alice[0] = 1

	if err := b.TransferIn(alice, 1); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
	b.Mint(alice, 50)
	if err := b.TransferIn(alice, 51); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
	// A failed transfer moves nothing.
	if got := b.Balance(alice); got != 50 {
		t.Errorf("balance = %d, want 50", got)
	}
	if got := b.Pool(); got != 0 {
		t.Errorf("pool = %d, want 0", got)
	}
}

func TestTransferOut_PoolUnderflow(t *testing.T) {
	b := New()
	var alice types.Address
	alice[0] = 1

	if err := b.TransferOut(alice, 1); !errors.Is(err, ErrPoolUnderflow) {
		t.Errorf("err = %v, want ErrPoolUnderflow", err)
	}
	if got := b.Balance(alice); got != 0 {
		t.Errorf("balance = %d, want 0", got)
	}
}
