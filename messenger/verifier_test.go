package messenger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/ethereum/go-ethereum/triedb"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kysee/zk-lightclient/lightclient"
	"github.com/kysee/zk-lightclient/types"
)

// testFixture builds a real two-level EIP-1186 proof: insert one leaf
// into a fresh trie, ask trie.Prove for the node set, and hand the
// caller both the root and the proof nodes extracted from the
// resulting proof database.
type testFixture struct {
	stateRoot     [32]byte
	accountProof  [][]byte
	storageProof  [][]byte
	messageBytes  []byte
	broadcaster   [20]byte
	nonce         uint64
}

func buildFixture(t *testing.T, nonce uint64) testFixture {
	t.Helper()

	var broadcaster [20]byte
	broadcaster[19] = 0xab

	recipient := [32]byte{0x42}
	msg := types.Message{
		Version:            types.MessageVersion,
		Nonce:              nonce,
		SourceChainID:      1,
		DestinationChainID: 2,
		Sender:             common.Address(broadcaster),
		Recipient:          recipient,
		Payload:            []byte("payload"),
	}
	messageBytes, err := types.EncodeMessage(msg)
	require.NoError(t, err)
	messageRoot := types.Keccak256(messageBytes)

	slotKey, err := types.MessageMappingSlotKey(nonce, types.MessageMappingStorageIndex)
	require.NoError(t, err)
	storageTrieKey := crypto.Keccak256(slotKey[:])

	storageLeaf, err := rlp.EncodeToBytes(messageRoot[:])
	require.NoError(t, err)

	storageTr := trie.NewEmpty(triedb.NewDatabase(rawdb.NewMemoryDatabase(), nil))
	storageTr.MustUpdate(storageTrieKey, storageLeaf)
	storageRoot := storageTr.Hash()

	storageProofDB := memorydb.New()
	require.NoError(t, storageTr.Prove(storageTrieKey, storageProofDB))
	storageProofNodes := extractProofNodes(storageProofDB)

	accountLeaf, err := rlp.EncodeToBytes([]interface{}{
		uint64(0),
		uint64(0),
		storageRoot[:],
		crypto.Keccak256(nil),
	})
	require.NoError(t, err)

	accountTrieKey := crypto.Keccak256(broadcaster[:])
	accountTr := trie.NewEmpty(triedb.NewDatabase(rawdb.NewMemoryDatabase(), nil))
	accountTr.MustUpdate(accountTrieKey, accountLeaf)
	var stateRoot [32]byte
	copy(stateRoot[:], accountTr.Hash().Bytes())

	accountProofDB := memorydb.New()
	require.NoError(t, accountTr.Prove(accountTrieKey, accountProofDB))
	accountProofNodes := extractProofNodes(accountProofDB)

	return testFixture{
		stateRoot:    stateRoot,
		accountProof: accountProofNodes,
		storageProof: storageProofNodes,
		messageBytes: messageBytes,
		broadcaster:  broadcaster,
		nonce:        nonce,
	}
}

func extractProofNodes(db *memorydb.Database) [][]byte {
	var nodes [][]byte
	it := db.NewIterator(nil, nil)
	defer it.Release()
	for it.Next() {
		nodes = append(nodes, common.CopyBytes(it.Value()))
	}
	return nodes
}

func newTestVerifier(t *testing.T, fx testFixture, slot uint64, clock *lightclient.FixedClock) (*Verifier, *lightclient.Store) {
	t.Helper()
	store := lightclient.NewStore()

	var updater [32]byte
	store.SetState(lightclient.State{
		Updater:           updater,
		SlotsPerPeriod:    8192,
		SourceChainID:     1,
		FinalityThreshold: 350,
		Consistent:        true,
	})
	store.SetBroadcaster(1, fx.broadcaster)
	store.SetBroadcaster(HardcodedPreconditionChainID, fx.broadcaster)
	store.SetLightClient(1, [20]byte{0x01})
	store.SeedFinalizedSlot(slot, [32]byte{0x01}, fx.stateRoot, clock.Now()-200)

	v := NewVerifier(store, clock, zerolog.Nop())
	return v, store
}

// TestExecute_ValidProofThenReplayRejected covers a valid execute
// followed by a replay, which must be rejected.
func TestExecute_ValidProofThenReplayRejected(t *testing.T) {
	fx := buildFixture(t, 7)
	clock := lightclient.NewFixedClock(1_700_000_000)
	v, store := newTestVerifier(t, fx, 8100, clock)

	err := v.Execute(8100, fx.messageBytes, fx.accountProof, fx.storageProof, true)
	require.NoError(t, err)

	messageRoot := types.Keccak256(fx.messageBytes)
	require.Equal(t, types.MessageExecutionSucceeded, store.MessageStatus(messageRoot))

	err = v.Execute(8100, fx.messageBytes, fx.accountProof, fx.storageProof, true)
	require.ErrorIs(t, err, types.ErrMessageAlreadyExecuted)
}

// TestExecute_RejectsBeforeDelayElapsed covers a commit that has not
// yet aged past the required delay.
func TestExecute_RejectsBeforeDelayElapsed(t *testing.T) {
	fx := buildFixture(t, 7)
	clock := lightclient.NewFixedClock(1_700_000_000)
	store := lightclient.NewStore()
	store.SetState(lightclient.State{SlotsPerPeriod: 8192, Consistent: true})
	store.SetBroadcaster(1, fx.broadcaster)
	store.SetBroadcaster(HardcodedPreconditionChainID, fx.broadcaster)
	store.SetLightClient(1, [20]byte{0x01})
	store.SeedFinalizedSlot(8100, [32]byte{0x01}, fx.stateRoot, clock.Now()-60)

	v := NewVerifier(store, clock, zerolog.Nop())
	err := v.Execute(8100, fx.messageBytes, fx.accountProof, fx.storageProof, true)
	require.ErrorIs(t, err, types.ErrMustWaitLongerForSlot)
}

// TestExecute_RejectsTamperedStorageLeaf covers a storage proof swapped
// for the one of another message (nonce 8): its nodes do not resolve
// from the account's storage root, so the storage walk fails.
func TestExecute_RejectsTamperedStorageLeaf(t *testing.T) {
	fx := buildFixture(t, 7)
	other := buildFixture(t, 8)
	clock := lightclient.NewFixedClock(1_700_000_000)
	v, _ := newTestVerifier(t, fx, 8100, clock)

	err := v.Execute(8100, fx.messageBytes, fx.accountProof, other.storageProof, true)
	require.Error(t, err)
}
