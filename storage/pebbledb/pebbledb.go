// Package pebbledb is a durable storage.Store backed by pebble. Values are
// SSZ-encoded and snappy-compressed.
package pebbledb

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/golang/snappy"

	"github.com/tontinelabs/tontine/storage"
	"github.com/tontinelabs/tontine/types"
)

// Key space: one byte of prefix, then the natural key.
const (
	prefixHeader = 'h'
	prefixAgent  = 'a' // + 8-byte big-endian index
	prefixRecord = 'r' // + 20-byte address
)

var headerKey = []byte{prefixHeader}

// Store is a pebble-backed implementation of storage.Store.
type Store struct {
	db *pebble.DB
	wo *pebble.WriteOptions
}

// Open opens (or creates) a store in the given directory.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", dir, err)
	}
	return &Store{db: db, wo: pebble.Sync}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func agentKey(index uint64) []byte {
	key := make([]byte, 9)
	key[0] = prefixAgent
	binary.BigEndian.PutUint64(key[1:], index)
	return key
}

func recordKey(addr types.Address) []byte {
	key := make([]byte, 1+len(addr))
	key[0] = prefixRecord
	copy(key[1:], addr[:])
	return key
}

// get reads and decompresses one value. The second return is false when the
// key does not exist.
func (s *Store) get(key []byte) ([]byte, bool, error) {
	compressed, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()

	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, false, fmt.Errorf("decompress value: %w", err)
	}
	return raw, true, nil
}

func (s *Store) set(key, raw []byte) error {
	return s.db.Set(key, snappy.Encode(nil, raw), s.wo)
}

func (s *Store) Header() (types.Header, bool, error) {
	raw, ok, err := s.get(headerKey)
	if err != nil || !ok {
		return types.Header{}, false, err
	}
	var head types.Header
	if err := head.UnmarshalSSZ(raw); err != nil {
		return types.Header{}, false, fmt.Errorf("decode header: %w", err)
	}
	return head, true, nil
}

func (s *Store) PutHeader(head types.Header) error {
	raw, err := head.MarshalSSZ()
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	return s.set(headerKey, raw)
}

func (s *Store) Agents() ([]types.Address, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{prefixAgent},
		UpperBound: []byte{prefixAgent + 1},
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []types.Address
	for iter.First(); iter.Valid(); iter.Next() {
		key := iter.Key()
		if len(key) != 9 {
			return nil, fmt.Errorf("malformed agent key of length %d", len(key))
		}
		index := binary.BigEndian.Uint64(key[1:])
		if index != uint64(len(out)) {
			return nil, fmt.Errorf("agent list has a gap at index %d", len(out))
		}
		var addr types.Address
		if copy(addr[:], iter.Value()) != len(addr) {
			return nil, fmt.Errorf("malformed agent value at index %d", index)
		}
		out = append(out, addr)
	}
	return out, iter.Error()
}

func (s *Store) AppendAgent(index uint64, addr types.Address) error {
	return s.db.Set(agentKey(index), addr[:], s.wo)
}

func (s *Store) Record(addr types.Address) (types.Participant, bool, error) {
	raw, ok, err := s.get(recordKey(addr))
	if err != nil || !ok {
		return types.Participant{}, false, err
	}
	var rec types.Participant
	if err := rec.UnmarshalSSZ(raw); err != nil {
		return types.Participant{}, false, fmt.Errorf("decode record: %w", err)
	}
	return rec, true, nil
}

func (s *Store) PutRecord(rec types.Participant) error {
	raw, err := rec.MarshalSSZ()
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return s.set(recordKey(rec.Address), raw)
}

// PutBatch writes the header, records and agent entries in one pebble batch
// so the header counters can never land without their records.
func (s *Store) PutBatch(head types.Header, records []types.Participant, agents []storage.AgentEntry) error {
	b := s.db.NewBatch()
	defer b.Close()

	raw, err := head.MarshalSSZ()
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	if err := b.Set(headerKey, snappy.Encode(nil, raw), nil); err != nil {
		return err
	}
	for _, rec := range records {
		raw, err := rec.MarshalSSZ()
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		if err := b.Set(recordKey(rec.Address), snappy.Encode(nil, raw), nil); err != nil {
			return err
		}
	}
	for _, e := range agents {
		if err := b.Set(agentKey(e.Index), e.Address[:], nil); err != nil {
			return err
		}
	}
	return b.Commit(s.wo)
}
