// Package messenger implements the cross-chain message verifier:
// precondition checks, the light-client delay gate, the two-level
// Merkle-Patricia proof walk, and the message execution status
// machine.
package messenger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/kysee/zk-lightclient/types"
)

// proofDatabase rebuilds the content-addressed node database the trie
// walker resolves from, keyed by keccak256(node_rlp) the same way a
// standard Ethereum MPT proof is addressed.
func proofDatabase(proofNodes [][]byte) *memorydb.Database {
	db := memorydb.New()
	for _, node := range proofNodes {
		hash := crypto.Keccak256(node)
		_ = db.Put(hash, node)
	}
	return db
}

// walkAccountProof resolves the broadcaster's storage root from the
// account trie.
func walkAccountProof(stateRoot [32]byte, broadcaster [20]byte, accountProof [][]byte) ([32]byte, error) {
	var storageRoot [32]byte

	db := proofDatabase(accountProof)
	key := crypto.Keccak256(broadcaster[:])

	leaf, err := trie.VerifyProof(common.Hash(stateRoot), key, db)
	if err != nil {
		return storageRoot, fmt.Errorf("%w: %v", types.ErrTrieError, err)
	}
	if leaf == nil {
		return storageRoot, types.ErrAccountNotFound
	}

	var items [][]byte
	if err := rlp.DecodeBytes(leaf, &items); err != nil {
		return storageRoot, types.ErrCannotDecodeRlpItems
	}
	if len(items) != 4 {
		return storageRoot, types.ErrAccountNotFound
	}
	if len(items[2]) != 32 {
		return storageRoot, types.ErrCannotGetStorageRoot
	}

	copy(storageRoot[:], items[2])
	return storageRoot, nil
}

// walkStorageProof resolves the mapping slot for (nonce, storageIndex)
// against storageRoot and checks the leaf equals the message root.
func walkStorageProof(storageRoot [32]byte, nonce uint64, messageRoot [32]byte, storageProof [][]byte) error {
	slotKey, err := types.MessageMappingSlotKey(nonce, types.MessageMappingStorageIndex)
	if err != nil {
		return err
	}

	db := proofDatabase(storageProof)
	// Ethereum storage-trie leaves are keyed by keccak256(slot), the
	// same double-hash convention the account trie uses for its
	// keccak256(broadcaster_address) key.
	key := crypto.Keccak256(slotKey[:])

	leaf, err := trie.VerifyProof(common.Hash(storageRoot), key, db)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrTrieError, err)
	}
	if leaf == nil {
		return types.ErrStorageValueNotFound
	}

	var raw []byte
	if err := rlp.DecodeBytes(leaf, &raw); err != nil {
		return types.ErrCannotDecodeRlpItems
	}
	if len(raw) != 32 {
		return types.ErrInvalidMessageHash
	}
	var got [32]byte
	copy(got[:], raw)
	if got != messageRoot {
		return types.ErrInvalidMessageHash
	}
	return nil
}
