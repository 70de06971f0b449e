package ledger

import "github.com/tontinelabs/tontine/types"

// Batch queries are read-only projections over the append-only agent list.
// Ranges are inclusive on both ends; the end index is clamped to the list
// and a range whose start exceeds its (clamped) end is rejected.

func (l *Ledger) clampRange(start, end uint64) (uint64, uint64, error) {
	count := uint64(len(l.agents))
	if count == 0 {
		return 0, 0, ErrInvalidRange
	}
	if end >= count {
		end = count - 1
	}
	if start > end {
		return 0, 0, ErrInvalidRange
	}
	return start, end, nil
}

func (l *Ledger) snapshotAt(index uint64) types.Snapshot {
	rec := l.records[l.agents[index]]
	snap := types.Snapshot{
		Index:        index,
		Address:      rec.Address,
		Agent:        rec.Agent,
		BirthEpoch:   rec.BirthEpoch,
		LastEpoch:    rec.LastEpoch,
		Alive:        rec.Alive,
		Age:          rec.Age(),
		Contribution: rec.Contribution,
		Claimable:    rec.Claimable,
	}
	if rec.Alive {
		snap.Pending = accrued(snap.Age, l.head.AccRewardPerAge, rec.Checkpoint)
	}
	return snap
}

// SnapshotRange returns full lifecycle snapshots for the inclusive index
// range [start, end] over the list of ever-registered addresses.
func (l *Ledger) SnapshotRange(start, end uint64) ([]types.Snapshot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	start, end, err := l.clampRange(start, end)
	if err != nil {
		return nil, err
	}

	out := make([]types.Snapshot, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, l.snapshotAt(i))
	}
	return out, nil
}

// KillableRange returns snapshots for only those participants in the range
// that are currently eligible for removal. Result cardinality is unknown up
// front, so the range is walked twice: once to count, once to fill.
func (l *Ledger) KillableRange(start, end uint64) ([]types.Snapshot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	start, end, err := l.clampRange(start, end)
	if err != nil {
		return nil, err
	}

	now := l.clock.CurrentEpoch()

	var n uint64
	for i := start; i <= end; i++ {
		if l.records[l.agents[i]].Killable(now) {
			n++
		}
	}

	out := make([]types.Snapshot, 0, n)
	for i := start; i <= end; i++ {
		if l.records[l.agents[i]].Killable(now) {
			out = append(out, l.snapshotAt(i))
		}
	}
	return out, nil
}
