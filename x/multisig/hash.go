package multisig

import (
	"encoding/binary"

	"github.com/iov-one/quorum"
	"golang.org/x/crypto/sha3"
)

const word = 32

// ActionHash returns the commitment of a single action of given
// transaction. It is the keccak256 digest of the ABI encoding of the
// (address, uint256, bytes, uint256) tuple, which makes it compatible with
// the hashes computed by Ethereum clients.
//
// Target must be a valid address.
func ActionHash(target quorum.Address, value uint64, data []byte, txID uint64) []byte {
	padded := (len(data) + word - 1) / word * word
	enc := make([]byte, 5*word+padded)

	// head
	copy(enc[word-len(target):word], target)
	putWord(enc[word:], value)
	putWord(enc[2*word:], 4*word)
	putWord(enc[3*word:], txID)
	// tail
	putWord(enc[4*word:], uint64(len(data)))
	copy(enc[5*word:], data)

	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(enc)
	return h.Sum(nil)
}

// putWord writes v as a big endian 256 bit unsigned integer.
func putWord(dst []byte, v uint64) {
	binary.BigEndian.PutUint64(dst[word-8:word], v)
}

// ActionHashes returns the commitments of all given actions.
func ActionHashes(actions []Action, txID uint64) [][]byte {
	hashes := make([][]byte, len(actions))
	for i, a := range actions {
		hashes[i] = ActionHash(a.Target, a.Value, a.Data, txID)
	}
	return hashes
}
