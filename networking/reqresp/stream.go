package reqresp

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/golang/snappy"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/protocol"

	"github.com/tontinelabs/tontine/types"
)

const (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	MaxMsgSize   = 1 * 1024 * 1024 // 1MB
)

// Response codes, one per chunk.
const (
	RespCodeSuccess     byte = 0x00
	RespCodeInvalidReq  byte = 0x01
	RespCodeServerError byte = 0x02
)

// StreamHandler manages request/response protocol streams.
type StreamHandler struct {
	host    host.Host
	handler *Handler
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(h host.Host, handler *Handler) *StreamHandler {
	return &StreamHandler{
		host:    h,
		handler: handler,
	}
}

// RegisterProtocols registers all request/response protocol handlers.
func (s *StreamHandler) RegisterProtocols() {
	s.host.SetStreamHandler(protocol.ID(StatusProtocolV1), s.handleStatusStream)
	s.host.SetStreamHandler(protocol.ID(SnapshotsByRangeProtocolV1), s.handleSnapshotsByRangeStream)
	s.host.SetStreamHandler(protocol.ID(KillableByRangeProtocolV1), s.handleKillableByRangeStream)
}

// handleStatusStream handles incoming Status requests.
func (s *StreamHandler) handleStatusStream(stream network.Stream) {
	defer stream.Close()

	_ = stream.SetReadDeadline(time.Now().Add(ReadTimeout))

	data, err := readMessage(stream)
	if err != nil {
		slog.Debug("handleStatusStream: failed to read message", "error", err)
		writeErrorResponse(stream, RespCodeInvalidReq)
		return
	}

	var peerStatus Status
	if err := peerStatus.UnmarshalSSZ(data); err != nil {
		slog.Debug("handleStatusStream: failed to unmarshal", "error", err)
		writeErrorResponse(stream, RespCodeInvalidReq)
		return
	}

	ourStatus := s.handler.GetStatus()
	respData, err := ourStatus.MarshalSSZ()
	if err != nil {
		slog.Debug("handleStatusStream: failed to marshal response", "error", err)
		writeErrorResponse(stream, RespCodeServerError)
		return
	}

	_ = stream.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err := writeSuccessResponse(stream, respData); err != nil {
		slog.Debug("handleStatusStream: failed to write response", "error", err)
		return
	}
}

func (s *StreamHandler) handleSnapshotsByRangeStream(stream network.Stream) {
	s.handleRangeStream(stream, s.handler.HandleSnapshotsByRange)
}

func (s *StreamHandler) handleKillableByRangeStream(stream network.Stream) {
	s.handleRangeStream(stream, s.handler.HandleKillableByRange)
}

// handleRangeStream reads one RangeRequest and writes each matching snapshot
// as a separate response chunk.
func (s *StreamHandler) handleRangeStream(stream network.Stream, serve func(*RangeRequest) []types.Snapshot) {
	defer stream.Close()

	_ = stream.SetReadDeadline(time.Now().Add(ReadTimeout))

	data, err := readMessage(stream)
	if err != nil {
		writeErrorResponse(stream, RespCodeInvalidReq)
		return
	}

	var req RangeRequest
	if err := req.UnmarshalSSZ(data); err != nil {
		writeErrorResponse(stream, RespCodeInvalidReq)
		return
	}

	snaps := serve(&req)

	_ = stream.SetWriteDeadline(time.Now().Add(WriteTimeout))
	for i := range snaps {
		snapData, err := snaps[i].MarshalSSZ()
		if err != nil {
			continue
		}
		writeSuccessResponse(stream, snapData)
	}
}

// SendStatus sends a Status request to a peer and returns their status.
func (s *StreamHandler) SendStatus(ctx context.Context, peerID peer.ID, status *Status) (*Status, error) {
	stream, err := s.host.NewStream(ctx, peerID, protocol.ID(StatusProtocolV1))
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	data, err := status.MarshalSSZ()
	if err != nil {
		return nil, fmt.Errorf("marshal status: %w", err)
	}

	_ = stream.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err := writeMessage(stream, data); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	// Close write side to signal end of request.
	if err := stream.CloseWrite(); err != nil {
		return nil, fmt.Errorf("close write: %w", err)
	}

	_ = stream.SetReadDeadline(time.Now().Add(ReadTimeout))
	respCode, respData, err := readResponse(stream)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if respCode != RespCodeSuccess {
		return nil, fmt.Errorf("peer returned error code %d", respCode)
	}

	var peerStatus Status
	if err := peerStatus.UnmarshalSSZ(respData); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return &peerStatus, nil
}

// RequestSnapshotsByRange requests lifecycle snapshots from a peer.
func (s *StreamHandler) RequestSnapshotsByRange(ctx context.Context, peerID peer.ID, start, end uint64) ([]types.Snapshot, error) {
	return s.requestRange(ctx, peerID, SnapshotsByRangeProtocolV1, start, end)
}

// RequestKillableByRange requests killable-participant snapshots from a peer.
func (s *StreamHandler) RequestKillableByRange(ctx context.Context, peerID peer.ID, start, end uint64) ([]types.Snapshot, error) {
	return s.requestRange(ctx, peerID, KillableByRangeProtocolV1, start, end)
}

func (s *StreamHandler) requestRange(ctx context.Context, peerID peer.ID, proto string, start, end uint64) ([]types.Snapshot, error) {
	stream, err := s.host.NewStream(ctx, peerID, protocol.ID(proto))
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	req := &RangeRequest{Start: start, End: end}
	data, err := req.MarshalSSZ()
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	_ = stream.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err := writeMessage(stream, data); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	if err := stream.CloseWrite(); err != nil {
		return nil, fmt.Errorf("close write: %w", err)
	}

	// Read responses, one snapshot per chunk.
	var snaps []types.Snapshot
	_ = stream.SetReadDeadline(time.Now().Add(ReadTimeout))

	for {
		respCode, respData, err := readResponse(stream)
		if err != nil {
			break // EOF ends the chunk sequence
		}
		if respCode != RespCodeSuccess {
			continue
		}

		var snap types.Snapshot
		if err := snap.UnmarshalSSZ(respData); err != nil {
			continue
		}
		snaps = append(snaps, snap)
	}

	return snaps, nil
}

// Helper functions for framed message I/O:
// varint length prefix (uncompressed size) + snappy-framed SSZ. The framed
// snappy format keeps chunk boundaries intact, so several messages can share
// one stream.

// byteReader adapts an io.Reader for binary.ReadUvarint without buffering
// past the varint.
type byteReader struct {
	r io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// readMessage reads a varint-prefixed, snappy-framed message.
func readMessage(r io.Reader) ([]byte, error) {
	uncompressedSize, err := binary.ReadUvarint(byteReader{r})
	if err != nil {
		return nil, err
	}
	if uncompressedSize > MaxMsgSize {
		return nil, fmt.Errorf("message too large: %d", uncompressedSize)
	}

	decoded := make([]byte, uncompressedSize)
	if _, err := io.ReadFull(snappy.NewReader(r), decoded); err != nil {
		return nil, fmt.Errorf("snappy decode: %w", err)
	}
	return decoded, nil
}

// writeMessage writes a varint-prefixed, snappy-framed message.
func writeMessage(w io.Writer, data []byte) error {
	varintBuf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(varintBuf, uint64(len(data)))
	if _, err := w.Write(varintBuf[:n]); err != nil {
		return err
	}

	sw := snappy.NewBufferedWriter(w)
	if _, err := sw.Write(data); err != nil {
		return err
	}
	return sw.Close()
}

// readResponse reads a response code followed by the message.
func readResponse(r io.Reader) (byte, []byte, error) {
	codeBuf := make([]byte, 1)
	if _, err := io.ReadFull(r, codeBuf); err != nil {
		return 0, nil, err
	}

	data, err := readMessage(r)
	return codeBuf[0], data, err
}

// writeSuccessResponse writes a success response with data.
func writeSuccessResponse(w io.Writer, data []byte) error {
	if _, err := w.Write([]byte{RespCodeSuccess}); err != nil {
		return err
	}
	return writeMessage(w, data)
}

// writeErrorResponse writes an error response code.
func writeErrorResponse(w io.Writer, code byte) error {
	_, err := w.Write([]byte{code})
	return err
}
