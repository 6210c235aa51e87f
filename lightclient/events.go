package lightclient

import (
	"encoding/json"

	"github.com/kysee/zk-lightclient/types"
)

// Event is implemented by every emitted event type.
type Event interface {
	isEvent()
	// MarshalJSON renders the event the way a host runtime would push it
	// over its own transport: byte fields as 0x-prefixed hex.
	json.Marshaler
}

type HeaderUpdate struct {
	Slot             uint64
	FinalizationRoot [32]byte
}

type SyncCommitteeUpdate struct {
	Period uint64
	Root   [32]byte
}

type VerificationSetupCompleted struct {
	Kind string // "step" or "rotate"
}

type VerificationSuccess struct {
	FunctionID [32]byte
}

type NewUpdater struct {
	Old [32]byte
	New [32]byte
}

func (HeaderUpdate) isEvent()               {}
func (SyncCommitteeUpdate) isEvent()        {}
func (VerificationSetupCompleted) isEvent() {}
func (VerificationSuccess) isEvent()        {}
func (NewUpdater) isEvent()                 {}

func (e HeaderUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind             string         `json:"kind"`
		Slot             uint64         `json:"slot"`
		FinalizationRoot types.HexBytes `json:"finalization_root"`
	}{"header_update", e.Slot, e.FinalizationRoot[:]})
}

func (e SyncCommitteeUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string         `json:"kind"`
		Period uint64         `json:"period"`
		Root   types.HexBytes `json:"root"`
	}{"sync_committee_update", e.Period, e.Root[:]})
}

func (e VerificationSetupCompleted) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Of   string `json:"of"`
	}{"verification_setup_completed", e.Kind})
}

func (e VerificationSuccess) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       string         `json:"kind"`
		FunctionID types.HexBytes `json:"function_id"`
	}{"verification_success", e.FunctionID[:]})
}

func (e NewUpdater) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string         `json:"kind"`
		Old  types.HexBytes `json:"old"`
		New  types.HexBytes `json:"new"`
	}{"new_updater", e.Old[:], e.New[:]})
}

// Emitter collects events raised during a transition. A host runtime
// implements this against its own event transport; Recorder below is a
// simple in-memory implementation used by tests and the demo command.
type Emitter interface {
	Emit(Event)
}

// Recorder is an Emitter that keeps every event in order, for tests and
// for the demo command to print a trace of what happened.
type Recorder struct {
	Events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}
