// Package types defines the primitive and composite types for the survival ledger.
package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Primitive types.
type Epoch uint64
type Amount uint64

// Address is a 20-byte settlement account address.
type Address [20]byte

// AgentID is a 32-byte external identity reference.
type AgentID [32]byte

// Protocol constants.
const (
	// PrecisionFactor scales the per-unit-age reward coefficient.
	PrecisionFactor uint64 = 1_000_000_000_000
	// BasisPoints is the denominator for the fee split fraction.
	BasisPoints uint64 = 10_000
)

func (a Address) IsZero() bool { return a == Address{} }

// Hex returns the 0x-prefixed hex representation of the address.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Short returns a short hex representation of the address (first 4 bytes).
func (a Address) Short() string {
	return fmt.Sprintf("%x", a[:4])
}

func (id AgentID) IsZero() bool { return id == AgentID{} }

// Short returns a short hex representation of the agent id (first 4 bytes).
func (id AgentID) Short() string {
	return fmt.Sprintf("%x", id[:4])
}

// ParseAddress converts a hex string (with or without 0x prefix) to an Address.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 40 {
		return Address{}, fmt.Errorf("invalid address length: got %d hex chars, want 40", len(s))
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("decoding hex: %w", err)
	}
	var a Address
	copy(a[:], decoded)
	return a, nil
}

// ParseAgentID converts a hex string (with or without 0x prefix) to an AgentID.
func ParseAgentID(s string) (AgentID, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 64 {
		return AgentID{}, fmt.Errorf("invalid agent id length: got %d hex chars, want 64", len(s))
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return AgentID{}, fmt.Errorf("decoding hex: %w", err)
	}
	var id AgentID
	copy(id[:], decoded)
	return id, nil
}

// EpochToTime returns the Unix timestamp at which an epoch begins.
// Epochs are 1-based; epoch 1 begins at genesis.
func EpochToTime(epoch Epoch, genesisTime, epochDuration uint64) uint64 {
	if epoch == 0 {
		return genesisTime
	}
	return genesisTime + uint64(epoch-1)*epochDuration
}
