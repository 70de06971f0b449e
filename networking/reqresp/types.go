// Package reqresp implements request/response protocols (Status,
// SnapshotsByRange, KillableByRange).
package reqresp

import (
	"errors"

	"github.com/tontinelabs/tontine/types"
)

const (
	StatusProtocolV1           = "/tontine/req/status/1/"
	SnapshotsByRangeProtocolV1 = "/tontine/req/snapshots_by_range/1/"
	KillableByRangeProtocolV1  = "/tontine/req/killable_by_range/1/"

	// MaxRequestSnapshots bounds how many snapshots one request may ask
	// for; larger ranges must be paginated.
	MaxRequestSnapshots = 1024
)

var ErrInvalidStatus = errors.New("peer status is inconsistent")

//go:generate go run github.com/ferranbt/fastssz/sszgen --path=. --objs=Status,RangeRequest

// Status is the handshake message exchanged upon connection. It lets peers
// compare ledger progress and decide who needs to sync.
type Status struct {
	Epoch         types.Epoch
	AliveCount    uint64
	DeadCount     uint64
	Registrations uint64
	LivingAge     uint64
	FeeBalance    types.Amount
}

// RangeRequest asks for snapshots over the inclusive index range
// [Start, End] of the ever-registered list.
type RangeRequest struct {
	Start uint64
	End   uint64
}
