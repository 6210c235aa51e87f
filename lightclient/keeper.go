// Package lightclient implements the light-client state machine, plus
// the genesis/admin/fulfill_call surface that wires the groth16
// verifier and the verified-call cache into it.
package lightclient

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kysee/zk-lightclient/cache"
	"github.com/kysee/zk-lightclient/groth16verify"
	"github.com/kysee/zk-lightclient/types"
)

// Keeper owns the Store, the Verified-Call Cache and the two
// verification keys, and exposes the external interfaces that are not
// part of the message verifier.
type Keeper struct {
	store  *Store
	cache  *cache.Cache
	clock  Clock
	events Emitter
	log    zerolog.Logger

	stepVK   *groth16verify.VerifyingKey
	rotateVK *groth16verify.VerifyingKey
}

// NewKeeper wires a Keeper around an already-constructed Store and
// Cache. Genesis must be called before FulfillCall; the verification-key
// setup calls do not depend on it.
func NewKeeper(store *Store, c *cache.Cache, clock Clock, events Emitter, log zerolog.Logger) *Keeper {
	return &Keeper{store: store, cache: c, clock: clock, events: events, log: log}
}

// Store exposes the underlying Store for read access by the message
// verifier, which needs ExecutionStateRoots, Timestamps, Broadcasters,
// LightClients, SourceChainFrozen and MessageStatus.
func (k *Keeper) Store() *Store { return k.store }

// Genesis populates State and seeds period 0's sync-committee
// commitment. State.consistent is initialized true and is not
// transitioned anywhere else in this core — see DESIGN.md for why.
func (k *Keeper) Genesis(updater [32]byte, slotsPerPeriod uint64, sourceChainID uint32, finalityThreshold uint16, period0Poseidon [32]byte) {
	k.store.SetState(State{
		Updater:           updater,
		SlotsPerPeriod:    slotsPerPeriod,
		SourceChainID:     sourceChainID,
		FinalityThreshold: finalityThreshold,
		Consistent:        true,
	})
	k.store.setSyncCommitteePoseidon(0, period0Poseidon)
}

// SetUpdater replaces State.updater. Root authorization is enforced by
// the host runtime's dispatch/origin system; this core only performs
// the state mutation and event emission.
func (k *Keeper) SetUpdater(newUpdater [32]byte) {
	old := k.store.state.Updater
	st := k.store.State()
	st.Updater = newUpdater
	k.store.SetState(st)
	k.events.Emit(NewUpdater{Old: old, New: newUpdater})
	k.log.Info().Hex("old", old[:]).Hex("new", newUpdater[:]).Msg("updater replaced")
}

// SetupStepVerification parses, validates and stores the step
// verification key.
func (k *Keeper) SetupStepVerification(jsonBytes []byte) error {
	vk, err := groth16verify.ParseVerifyingKey(jsonBytes)
	if err != nil {
		return err
	}
	k.stepVK = vk
	k.store.SetStepVerificationKey(jsonBytes)
	k.events.Emit(VerificationSetupCompleted{Kind: "step"})
	k.log.Info().Msg("step verification key installed")
	return nil
}

// SetupRotateVerification is SetupStepVerification's Rotate
// counterpart.
func (k *Keeper) SetupRotateVerification(jsonBytes []byte) error {
	vk, err := groth16verify.ParseVerifyingKey(jsonBytes)
	if err != nil {
		return err
	}
	k.rotateVK = vk
	k.store.SetRotateVerificationKey(jsonBytes)
	k.events.Emit(VerificationSetupCompleted{Kind: "rotate"})
	k.log.Info().Msg("rotate verification key installed")
	return nil
}

// FulfillCall is the updater-authorized operation that ties proof
// verification to state application. sender is the identity the host
// runtime resolved for the caller; checking it against State.updater
// happens first, before any hashing or verification work, so a
// mismatched sender is rejected cheaply.
func (k *Keeper) FulfillCall(sender [32]byte, functionID types.FunctionID, input, output, proof []byte, slot uint64) error {
	if sender != k.store.state.Updater {
		return types.ErrUpdaterMismatch
	}
	if err := types.CheckBounds(input, output, proof); err != nil {
		return err
	}

	var vk *groth16verify.VerifyingKey
	switch {
	case functionID.Equal(types.StepFunctionID):
		vk = k.stepVK
	case functionID.Equal(types.RotateFunctionID):
		vk = k.rotateVK
	default:
		return types.ErrFunctionIDNotRecognised
	}
	if vk == nil {
		return types.ErrVerificationKeyNotSet
	}

	ih := types.Sha256(input)
	oh := types.Sha256(output)

	ok, err := groth16verify.Verify(vk, ih, oh, proof)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrVerificationError, err)
	}
	if !ok {
		return types.ErrVerificationFailed
	}

	if functionID.Equal(types.StepFunctionID) {
		parsed, err := types.ParseStepOutput(output)
		if err != nil {
			return err
		}
		k.cache.PutStep(cache.VerifiedStepCall{FunctionID: functionID, InputHash: ih, Output: parsed})
		if err := k.stepInto(slot); err != nil {
			return err
		}
	} else {
		parsed, err := types.ParseRotateOutput(output)
		if err != nil {
			return err
		}
		k.cache.PutRotate(cache.VerifiedRotateCall{FunctionID: functionID, InputHash: ih, Output: parsed})
		if err := k.rotateInto(slot); err != nil {
			return err
		}
	}

	k.events.Emit(VerificationSuccess{FunctionID: functionID})
	return nil
}

// stepInto applies a verified Step output. slot is the attested_slot
// the updater submitted; it is not trusted on its own — it only
// becomes meaningful once the reconstructed (function_id, input_hash)
// pair matches a cached record, which is what LookupStep enforces.
func (k *Keeper) stepInto(attestedSlot uint64) error {
	st := k.store.State()
	period := attestedSlot / st.SlotsPerPeriod

	scPoseidon, ok := k.store.SyncCommitteePoseidon(period)
	if !ok {
		return types.ErrSyncCommitteeNotSet
	}

	input := types.EncodePacked(scPoseidon, attestedSlot)
	ih := types.Sha256(input)

	output, ok := k.cache.LookupStep(types.StepFunctionID, ih)
	if !ok {
		return types.ErrStepVerificationError
	}

	if output.Participation < st.FinalityThreshold {
		return types.ErrNotEnoughParticipants
	}

	if _, exists := k.store.Header(output.FinalizedSlot); exists {
		return types.ErrHeaderRootAlreadySet
	}
	if _, exists := k.store.ExecutionStateRoot(output.FinalizedSlot); exists {
		return types.ErrStateRootAlreadySet
	}
	// Explicit hardening against an adversarial proof for an older,
	// still-empty slot — see DESIGN.md.
	if output.FinalizedSlot <= k.store.Head() && k.store.Head() != 0 {
		return types.ErrHeaderRootAlreadySet
	}

	k.store.setFinalizedSlot(output.FinalizedSlot, output.FinalizedHeaderRoot, output.ExecutionStateRoot, k.clock.Now())

	k.events.Emit(HeaderUpdate{Slot: output.FinalizedSlot, FinalizationRoot: output.FinalizedHeaderRoot})
	k.log.Info().Uint64("slot", output.FinalizedSlot).Msg("header committed")
	return nil
}

// rotateInto applies a verified Rotate output. slot is the
// finalized_slot whose header must already be committed.
func (k *Keeper) rotateInto(finalizedSlot uint64) error {
	st := k.store.State()

	headerRoot, ok := k.store.Header(finalizedSlot)
	if !ok {
		return types.ErrHeaderRootNotSet
	}

	input := types.EncodeRotateInput(headerRoot)
	ih := types.Sha256(input)

	output, ok := k.cache.LookupRotate(types.RotateFunctionID, ih)
	if !ok {
		return types.ErrRotateVerificationErr
	}

	nextPeriod := finalizedSlot/st.SlotsPerPeriod + 1
	if _, exists := k.store.SyncCommitteePoseidon(nextPeriod); exists {
		return types.ErrSyncCommitteeAlreadySet
	}

	k.store.setSyncCommitteePoseidon(nextPeriod, output.SyncCommitteePoseidon)

	k.events.Emit(SyncCommitteeUpdate{Period: nextPeriod, Root: output.SyncCommitteePoseidon})
	k.log.Info().Uint64("period", nextPeriod).Msg("sync committee rotated")
	return nil
}
