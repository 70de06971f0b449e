// Package clock provides time-to-epoch conversion for the survival ledger.
//
// The epoch clock bridges wall-clock time to the discrete epoch-based time
// model used by the ledger. Epochs are never advanced by any background
// process; the current epoch is always derived from the time source.
package clock

import (
	"time"

	"github.com/tontinelabs/tontine/types"
)

// EpochClock converts wall-clock time to ledger epochs.
// All time values are in seconds (Unix timestamps).
//
// Epochs are 1-based: epoch 1 begins at genesis. This keeps epoch 0 free as
// the "never registered" sentinel in participant records.
type EpochClock struct {
	GenesisTime   uint64 // Unix timestamp when epoch 1 began
	EpochDuration uint64 // Seconds per epoch

	timeFunc func() time.Time // Injectable for testing
}

// New creates an EpochClock with the given genesis time and epoch duration.
func New(genesisTime, epochDuration uint64) *EpochClock {
	return &EpochClock{
		GenesisTime:   genesisTime,
		EpochDuration: epochDuration,
		timeFunc:      time.Now,
	}
}

// NewWithTimeFunc creates an EpochClock with a custom time source (for testing).
func NewWithTimeFunc(genesisTime, epochDuration uint64, timeFunc func() time.Time) *EpochClock {
	return &EpochClock{
		GenesisTime:   genesisTime,
		EpochDuration: epochDuration,
		timeFunc:      timeFunc,
	}
}

// secondsSinceGenesis returns seconds elapsed since genesis (0 if before genesis).
func (c *EpochClock) secondsSinceGenesis() uint64 {
	now := uint64(c.timeFunc().Unix())
	if now < c.GenesisTime {
		return 0
	}
	return now - c.GenesisTime
}

// CurrentEpoch returns the current epoch number (1 at or before genesis).
func (c *EpochClock) CurrentEpoch() types.Epoch {
	return types.Epoch(c.secondsSinceGenesis()/c.EpochDuration + 1)
}

// EpochStartTime returns the Unix timestamp when a given epoch starts.
func (c *EpochClock) EpochStartTime(epoch types.Epoch) uint64 {
	return types.EpochToTime(epoch, c.GenesisTime, c.EpochDuration)
}

// SecondsIntoEpoch returns seconds elapsed inside the current epoch.
func (c *EpochClock) SecondsIntoEpoch() uint64 {
	return c.secondsSinceGenesis() % c.EpochDuration
}

// IsBeforeGenesis returns true if current time is before genesis.
func (c *EpochClock) IsBeforeGenesis() bool {
	return uint64(c.timeFunc().Unix()) < c.GenesisTime
}
