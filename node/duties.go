package node

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tontinelabs/tontine/ledger"
	"github.com/tontinelabs/tontine/networking/reqresp"
	"github.com/tontinelabs/tontine/types"
)

// Duties runs the node's per-epoch housekeeping: heartbeating configured
// keeper addresses and, when enabled, sweeping lapsed participants.
type Duties struct {
	Ledger  *ledger.Ledger
	Keepers []types.Address
	Reap    bool
	Logger  *slog.Logger
}

// OnEpoch performs all duties for the given epoch. Called once per epoch
// boundary by the node's ticker.
func (d *Duties) OnEpoch(ctx context.Context, epoch types.Epoch) {
	for _, addr := range d.Keepers {
		if ctx.Err() != nil {
			return
		}
		d.heartbeat(addr, epoch)
	}

	if d.Reap {
		d.sweep(ctx, epoch)
	}
}

func (d *Duties) heartbeat(addr types.Address, epoch types.Epoch) {
	err := d.Ledger.Heartbeat(addr)
	switch {
	case err == nil:
		d.Logger.Info("keeper heartbeat", "address", addr.Short(), "epoch", epoch)
	case errors.Is(err, ledger.ErrAlreadyHeartbeat):
		// Someone else paid this epoch; nothing to do.
	case errors.Is(err, ledger.ErrMissedEpoch), errors.Is(err, ledger.ErrAlreadyDead):
		d.Logger.Warn("keeper lapsed", "address", addr.Short(), "epoch", epoch, "error", err)
	default:
		d.Logger.Warn("keeper heartbeat failed", "address", addr.Short(), "epoch", epoch, "error", err)
	}
}

// sweep kills every participant past its grace window. The caller recorded
// on the kill is the first keeper, or the zero address when none are
// configured.
func (d *Duties) sweep(ctx context.Context, epoch types.Epoch) {
	var reaper types.Address
	if len(d.Keepers) > 0 {
		reaper = d.Keepers[0]
	}

	var start uint64
	for {
		if ctx.Err() != nil {
			return
		}
		count := d.Ledger.AgentCount()
		if start >= count {
			return
		}
		end := start + reqresp.MaxRequestSnapshots - 1
		if end >= count {
			end = count - 1
		}

		killable, err := d.Ledger.KillableRange(start, end)
		if err != nil {
			d.Logger.Warn("killable scan failed", "epoch", epoch, "error", err)
			return
		}
		for _, snap := range killable {
			if err := d.Ledger.Kill(reaper, snap.Address); err != nil {
				// Another node may have beaten us to it.
				d.Logger.Debug("kill failed",
					"target", snap.Address.Short(),
					"epoch", epoch,
					"error", err,
				)
				continue
			}
			d.Logger.Info("reaped lapsed participant",
				"target", snap.Address.Short(),
				"age", snap.Age,
				"epoch", epoch,
			)
		}

		if end == count-1 {
			return
		}
		start = end + 1
	}
}
