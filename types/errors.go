package types

import "errors"

// Error taxonomy for the light-client core. Every error that the
// lightclient and messenger operations raise themselves is one of these
// (optionally wrapped with fmt.Errorf("...: %w", ...) for context) so
// callers can use errors.Is against a stable, enumerable set; the one
// exception is a message that fails ABI decoding, whose decoder error is
// returned as is. The set mirrors the single
// Error<T> enum the pallet this core is ported from declares in one place.
var (
	// Authorization
	ErrUpdaterMismatch = errors.New("sender is not the configured updater")

	// Configuration
	ErrVerificationKeyNotSet    = errors.New("verification key not set")
	ErrMalformedVerificationKey = errors.New("malformed verification key")
	ErrTooLongVerificationKey   = errors.New("verification key exceeds maximum length")
	ErrNotSupportedCurve        = errors.New("unsupported curve")
	ErrNotSupportedProtocol     = errors.New("unsupported protocol")
	ErrFunctionIDNotRecognised  = errors.New("function id not recognised")

	// Proof
	ErrVerificationFailed    = errors.New("proof verification failed")
	ErrVerificationError     = errors.New("proof is structurally invalid")
	ErrStepVerificationError = errors.New("no matching verified step call in cache")
	ErrRotateVerificationErr = errors.New("no matching verified rotate call in cache")

	// State machine
	ErrHeaderRootNotSet        = errors.New("header root not set for slot")
	ErrHeaderRootAlreadySet    = errors.New("header root already set for slot")
	ErrStateRootAlreadySet     = errors.New("execution state root already set for slot")
	ErrSyncCommitteeNotSet     = errors.New("sync committee commitment not set for period")
	ErrSyncCommitteeAlreadySet = errors.New("sync committee commitment already set for period")
	ErrNotEnoughParticipants   = errors.New("participation below finality threshold")

	// Messaging
	ErrMessageAlreadyExecuted       = errors.New("message already executed")
	ErrWrongVersion                 = errors.New("wrong message version")
	ErrBroadcasterSourceChainNotSet = errors.New("broadcaster not set for source chain")
	ErrLightClientInconsistent      = errors.New("light client state is inconsistent")
	ErrLightClientNotSet            = errors.New("light client not set for chain")
	ErrSourceChainFrozen            = errors.New("source chain is frozen")
	ErrTimestampNotSet              = errors.New("timestamp not set for slot")
	ErrMustWaitLongerForSlot        = errors.New("must wait longer before using this slot")

	// Proof decoding
	ErrCannotDecodeRlpItems = errors.New("cannot decode rlp items")
	ErrAccountNotFound      = errors.New("account leaf does not have 4 rlp items")
	ErrCannotGetStorageRoot = errors.New("cannot extract storage root from account leaf")
	ErrTrieError            = errors.New("trie walk failed")
	ErrStorageValueNotFound = errors.New("storage value not found")
	ErrInvalidMessageHash   = errors.New("storage leaf does not match message hash")

	// Input bounds
	ErrInputTooLong  = errors.New("input exceeds maximum length")
	ErrOutputTooLong = errors.New("output exceeds maximum length")
	ErrProofTooLong  = errors.New("proof exceeds maximum length")
)
