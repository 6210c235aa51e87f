package types

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
)

// Sha256 hashes b, matching the circuit's public-input commitment
// scheme: input hash and output hash are each sha256 of the raw bytes.
func Sha256(b []byte) [32]byte {
	return sha256.Sum256(b)
}

// Keccak256 hashes b with the host chain's native hash, used for message
// roots, trie keys and replay-protection status keys.
func Keccak256(b []byte) [32]byte {
	var out [32]byte
	copy(out[:], crypto.Keccak256(b))
	return out
}

// EncodePacked reproduces the Step circuit's public-input commitment:
// 32-byte big-endian poseidon concatenated with the 8-byte big-endian
// attested slot.
func EncodePacked(poseidon [32]byte, slot uint64) []byte {
	out := make([]byte, 40)
	copy(out[:32], poseidon[:])
	binary.BigEndian.PutUint64(out[32:], slot)
	return out
}

// ParseTrailingSlot extracts the trailing big-endian u64 slot from a
// callback blob. Kept for any external callback integration that needs
// to recover the slot from an opaque payload tail; callers pass the
// full blob and get back the last 8 bytes interpreted as a big-endian
// uint64.
func ParseTrailingSlot(callbackData []byte) uint64 {
	if len(callbackData) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(callbackData[len(callbackData)-8:])
}
