package lightclient

import "github.com/kysee/zk-lightclient/types"

// State is the singleton configuration/authorization record.
type State struct {
	Updater           [32]byte
	SlotsPerPeriod    uint64
	SourceChainID     uint32
	FinalityThreshold uint16
	Consistent        bool
}

// Store is the persisted layout: each item is independently
// addressable under a module-derived prefix. This package ships one
// in-memory implementation; a host runtime would back it with its own
// key-value store, which is why every accessor takes/returns plain
// values rather than exposing the underlying map.
//
// The core runs inside a single-threaded, non-preemptive transaction
// executor: Store is not safe for concurrent use by design, matching
// that execution model rather than adding synchronization the host
// never needs.
type Store struct {
	state State

	head uint64

	headers             map[uint64][32]byte
	executionStateRoots map[uint64][32]byte
	timestamps          map[uint64]uint64
	syncCommittees      map[uint64][32]byte // period -> poseidon

	stepVerificationKey   []byte
	rotateVerificationKey []byte

	broadcasters      map[uint32][20]byte
	lightClients      map[uint32][20]byte
	sourceChainFrozen map[uint32]bool
	messageStatus     map[[32]byte]types.MessageStatus
}

// NewStore builds an empty Store. Genesis population happens via
// Keeper.Genesis.
func NewStore() *Store {
	return &Store{
		headers:             make(map[uint64][32]byte),
		executionStateRoots: make(map[uint64][32]byte),
		timestamps:          make(map[uint64]uint64),
		syncCommittees:      make(map[uint64][32]byte),
		broadcasters:        make(map[uint32][20]byte),
		lightClients:        make(map[uint32][20]byte),
		sourceChainFrozen:   make(map[uint32]bool),
		messageStatus:       make(map[[32]byte]types.MessageStatus),
	}
}

func (s *Store) State() State      { return s.state }
func (s *Store) SetState(st State) { s.state = st }

func (s *Store) Head() uint64        { return s.head }
func (s *Store) setHead(slot uint64) { s.head = slot }

func (s *Store) Header(slot uint64) ([32]byte, bool) {
	v, ok := s.headers[slot]
	return v, ok
}

func (s *Store) ExecutionStateRoot(slot uint64) ([32]byte, bool) {
	v, ok := s.executionStateRoots[slot]
	return v, ok
}

func (s *Store) Timestamp(slot uint64) (uint64, bool) {
	v, ok := s.timestamps[slot]
	return v, ok
}

func (s *Store) SyncCommitteePoseidon(period uint64) ([32]byte, bool) {
	v, ok := s.syncCommittees[period]
	return v, ok
}

// setFinalizedSlot commits the three slot-keyed maps and advances Head
// atomically, so a reader never observes one without the others.
func (s *Store) setFinalizedSlot(slot uint64, headerRoot, execRoot [32]byte, at uint64) {
	s.headers[slot] = headerRoot
	s.executionStateRoots[slot] = execRoot
	s.timestamps[slot] = at
	s.head = slot
}

func (s *Store) setSyncCommitteePoseidon(period uint64, poseidon [32]byte) {
	s.syncCommittees[period] = poseidon
}

// SeedFinalizedSlot lets a caller outside this package (the message
// verifier's tests, most notably) populate Headers/ExecutionStateRoots/
// Timestamps directly, standing in for a Step transition the test does
// not need to reproduce end to end. Production code reaches these maps
// only through Keeper.stepInto; this exists purely for fixture setup.
func (s *Store) SeedFinalizedSlot(slot uint64, headerRoot, execRoot [32]byte, at uint64) {
	s.setFinalizedSlot(slot, headerRoot, execRoot, at)
}

func (s *Store) StepVerificationKey() []byte   { return s.stepVerificationKey }
func (s *Store) RotateVerificationKey() []byte { return s.rotateVerificationKey }

func (s *Store) SetStepVerificationKey(b []byte)   { s.stepVerificationKey = b }
func (s *Store) SetRotateVerificationKey(b []byte) { s.rotateVerificationKey = b }

func (s *Store) Broadcaster(chainID uint32) ([20]byte, bool) {
	v, ok := s.broadcasters[chainID]
	return v, ok
}

func (s *Store) SetBroadcaster(chainID uint32, addr [20]byte) {
	s.broadcasters[chainID] = addr
}

func (s *Store) LightClient(chainID uint32) ([20]byte, bool) {
	v, ok := s.lightClients[chainID]
	return v, ok
}

func (s *Store) SetLightClient(chainID uint32, addr [20]byte) {
	s.lightClients[chainID] = addr
}

func (s *Store) IsSourceChainFrozen(chainID uint32) bool {
	return s.sourceChainFrozen[chainID]
}

func (s *Store) SetSourceChainFrozen(chainID uint32, frozen bool) {
	s.sourceChainFrozen[chainID] = frozen
}

func (s *Store) MessageStatus(root [32]byte) types.MessageStatus {
	return s.messageStatus[root]
}

// SetMessageStatus records a message's execution outcome. Enforcing
// that a message leaves NotExecuted at most once is the message
// verifier's job, not the store's — mirroring how Header no-overwrite
// enforcement lives in Keeper.stepInto, not here.
func (s *Store) SetMessageStatus(root [32]byte, status types.MessageStatus) {
	s.messageStatus[root] = status
}

// Consistent reports State.consistent, read by the message verifier's
// precondition check.
func (s *Store) Consistent() bool {
	return s.state.Consistent
}

// SetConsistent flips State.consistent. Spec §9 leaves both the initial
// value and the transitions that clear/set it underspecified; this
// core initializes it true at genesis (lightclient.Keeper.Genesis) and
// exposes this setter for a host runtime to call when it detects the
// conditions that should freeze message execution (e.g. a fraud proof
// against a committed header) — see DESIGN.md Open Questions.
func (s *Store) SetConsistent(consistent bool) {
	s.state.Consistent = consistent
}
