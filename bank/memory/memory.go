// Package memory is an in-memory bank for tests and local networks.
package memory

import (
	"errors"
	"sync"

	"github.com/tontinelabs/tontine/types"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPoolUnderflow     = errors.New("pool balance underflow")
)

// Bank is an in-memory implementation of bank.Bank.
type Bank struct {
	mu       sync.RWMutex
	balances map[types.Address]types.Amount
	pool     types.Amount
}

// New creates a new in-memory bank.
func New() *Bank {
	return &Bank{
		balances: make(map[types.Address]types.Amount),
	}
}

// Mint credits an account with freshly created funds.
func (b *Bank) Mint(addr types.Address, amount types.Amount) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[addr] += amount
}

func (b *Bank) TransferIn(from types.Address, amount types.Amount) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.balances[from] < amount {
		return ErrInsufficientFunds
	}
	b.balances[from] -= amount
	b.pool += amount
	return nil
}

func (b *Bank) TransferOut(to types.Address, amount types.Amount) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pool < amount {
		return ErrPoolUnderflow
	}
	b.pool -= amount
	b.balances[to] += amount
	return nil
}

// Balance returns the free balance of an account.
func (b *Bank) Balance(addr types.Address) types.Amount {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.balances[addr]
}

// Pool returns the total amount currently held by the ledger pool.
func (b *Bank) Pool() types.Amount {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pool
}
