package messenger

import (
	"github.com/rs/zerolog"

	"github.com/kysee/zk-lightclient/lightclient"
	"github.com/kysee/zk-lightclient/types"
)

// HardcodedPreconditionChainID is the fixed chain id the precondition
// check looks up its broadcaster against, independent of the message's
// own source chain id. Its intent is ambiguous — see DESIGN.md — so it
// is kept as a named constant rather than buried in the call site, to
// keep the ambiguity visible.
const HardcodedPreconditionChainID uint32 = 1001

// MinLightClientDelay is the minimum age (in seconds) a committed slot
// must have before execute can use it.
const MinLightClientDelay = types.MinLightClientDelaySecs

// Clock is the injected now() capability, mirroring lightclient.Clock
// so the message verifier can be tested with the same deterministic
// clock the light-client keeper uses.
type Clock interface {
	Now() uint64
}

// Verifier implements component E against a light-client Store it does
// not own. It never writes Headers/ExecutionStateRoots/Timestamps —
// those belong to the light-client state machine (component D); it
// only reads them and writes MessageStatus.
type Verifier struct {
	store *lightclient.Store
	clock Clock
	log   zerolog.Logger
}

func NewVerifier(store *lightclient.Store, clock Clock, log zerolog.Logger) *Verifier {
	return &Verifier{store: store, clock: clock, log: log}
}

// checkPreconditions runs the checks that gate message execution before
// any trie work is attempted: replay, version, broadcaster
// registration, light-client consistency and chain freeze status.
func (v *Verifier) checkPreconditions(messageRoot [32]byte, msg types.Message) error {
	if v.store.MessageStatus(messageRoot) != types.MessageNotExecuted {
		return types.ErrMessageAlreadyExecuted
	}
	if msg.Version != types.MessageVersion {
		return types.ErrWrongVersion
	}
	// The broadcaster lookup here uses the hard-coded chain id, not
	// message.source_chain_id; see HardcodedPreconditionChainID.
	if _, ok := v.store.Broadcaster(HardcodedPreconditionChainID); !ok {
		return types.ErrBroadcasterSourceChainNotSet
	}
	if !v.store.Consistent() {
		return types.ErrLightClientInconsistent
	}
	if v.store.IsSourceChainFrozen(msg.SourceChainID) {
		return types.ErrSourceChainFrozen
	}
	return nil
}

// requireLightClientDelay enforces that a committed slot has aged past
// MinLightClientDelay before execute is allowed to use it.
func (v *Verifier) requireLightClientDelay(chainID uint32, slot uint64) error {
	if _, ok := v.store.LightClient(chainID); !ok {
		return types.ErrLightClientNotSet
	}
	ts, ok := v.store.Timestamp(slot)
	if !ok {
		return types.ErrTimestampNotSet
	}
	if v.clock.Now()-ts < MinLightClientDelay {
		return types.ErrMustWaitLongerForSlot
	}
	return nil
}

// Execute runs preconditions, the delay gate, the two-level
// Merkle-Patricia proof walk, and the status transition, end to end.
// dispatchOK is the outcome of the external payload dispatch — this
// package never dispatches the payload itself, leaving that to an
// external dispatcher; Execute only decides whether the message is
// provably authentic, then records whichever outcome the caller
// reports.
func (v *Verifier) Execute(slot uint64, messageBytes []byte, accountProof, storageProof [][]byte, dispatchOK bool) error {
	messageRoot := types.Keccak256(messageBytes)

	msg, err := types.DecodeMessage(messageBytes)
	if err != nil {
		return err
	}

	if err := v.checkPreconditions(messageRoot, msg); err != nil {
		return err
	}
	if err := v.requireLightClientDelay(msg.SourceChainID, slot); err != nil {
		return err
	}

	// ExecutionStateRoots and Timestamps are written atomically by
	// stepInto (lightclient.Store.setFinalizedSlot), so a present
	// timestamp (checked above) guarantees a present state root; this
	// is belt-and-suspenders against that invariant ever drifting.
	stateRoot, ok := v.store.ExecutionStateRoot(slot)
	if !ok {
		return types.ErrTimestampNotSet
	}

	broadcaster, _ := v.store.Broadcaster(msg.SourceChainID)

	storageRoot, err := walkAccountProof(stateRoot, broadcaster, accountProof)
	if err != nil {
		return err
	}
	if err := walkStorageProof(storageRoot, msg.Nonce, messageRoot, storageProof); err != nil {
		return err
	}

	status := types.MessageExecutionFailed
	if dispatchOK {
		status = types.MessageExecutionSucceeded
	}
	v.store.SetMessageStatus(messageRoot, status)

	v.log.Info().Uint64("slot", slot).Hex("message_root", messageRoot[:]).Bool("ok", dispatchOK).Msg("message executed")
	return nil
}
