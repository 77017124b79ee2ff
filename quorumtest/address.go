package quorumtest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/quorum"
)

var addrSeq uint64

// NewAddress returns a new, unique address. Addresses are created from a
// sequence so that every test run uses the same values.
func NewAddress() quorum.Address {
	return NewCondition().Address()
}

// NewCondition returns a new, unique condition.
func NewCondition() quorum.Condition {
	n := atomic.AddUint64(&addrSeq, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, n)
	return quorum.NewCondition("test", "seq", data)
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) quorum.Address {
	t.Helper()

	addr, err := quorum.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// SequenceID returns an 8 byte big endian encoded value. This is how
// orm.Sequence encodes identifiers.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
