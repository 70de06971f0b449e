package reqresp

import "github.com/tontinelabs/tontine/types"

// QueryBackend provides read access to the ledger for serving peers.
// Satisfied by *ledger.Ledger without modification.
type QueryBackend interface {
	Head() types.Header
	CurrentEpoch() types.Epoch
	SnapshotRange(start, end uint64) ([]types.Snapshot, error)
	KillableRange(start, end uint64) ([]types.Snapshot, error)
}

// Handler handles request/response protocol messages.
type Handler struct {
	backend QueryBackend
}

// NewHandler creates a new request/response handler.
func NewHandler(backend QueryBackend) *Handler {
	return &Handler{backend: backend}
}

// GetStatus returns the node's current status for the handshake protocol.
func (h *Handler) GetStatus() *Status {
	head := h.backend.Head()
	return &Status{
		Epoch:         h.backend.CurrentEpoch(),
		AliveCount:    head.AliveCount,
		DeadCount:     head.DeadCount,
		Registrations: head.Registrations,
		LivingAge:     head.LivingAge,
		FeeBalance:    head.FeeBalance,
	}
}

// clampRequest caps a range request at MaxRequestSnapshots entries. The
// span is compared without the +1 so End=2^64-1 cannot overflow past the
// cap.
func clampRequest(req *RangeRequest) (start, end uint64) {
	start, end = req.Start, req.End
	if end >= start && end-start >= MaxRequestSnapshots {
		end = start + MaxRequestSnapshots - 1
	}
	return start, end
}

// HandleSnapshotsByRange responds to a SnapshotsByRange request. An invalid
// range yields an empty response rather than an error chunk; the requester
// cannot distinguish it from an empty ledger and does not need to.
func (h *Handler) HandleSnapshotsByRange(req *RangeRequest) []types.Snapshot {
	start, end := clampRequest(req)
	snaps, err := h.backend.SnapshotRange(start, end)
	if err != nil {
		return nil
	}
	return snaps
}

// HandleKillableByRange responds to a KillableByRange request.
func (h *Handler) HandleKillableByRange(req *RangeRequest) []types.Snapshot {
	start, end := clampRequest(req)
	snaps, err := h.backend.KillableRange(start, end)
	if err != nil {
		return nil
	}
	return snaps
}

// ValidateStatus checks that a status is internally consistent. The
// counters can never violate these relations on an honest ledger.
func ValidateStatus(s *Status) error {
	if s.Registrations < s.AliveCount+s.DeadCount {
		return ErrInvalidStatus
	}
	if s.AliveCount == 0 && s.LivingAge != 0 {
		return ErrInvalidStatus
	}
	if s.LivingAge < s.AliveCount {
		return ErrInvalidStatus
	}
	return nil
}
