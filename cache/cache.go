// Package cache implements the Verified-Call Cache: a one-slot record
// per function id that decouples proof verification from state
// application.
package cache

import (
	"github.com/kysee/zk-lightclient/types"
)

// VerifiedStepCall is the cached record written after a successful
// Step proof verification.
type VerifiedStepCall struct {
	FunctionID types.FunctionID
	InputHash  [32]byte
	Output     types.StepOutput
}

// VerifiedRotateCall is the cached record written after a successful
// Rotate proof verification.
type VerifiedRotateCall struct {
	FunctionID types.FunctionID
	InputHash  [32]byte
	Output     types.RotateOutput
}

// Cache holds the single most recent verified Step call and the single
// most recent verified Rotate call. It has no history and no eviction
// policy — each new fulfill_call for the same function id overwrites
// the prior record.
type Cache struct {
	step   *VerifiedStepCall
	rotate *VerifiedRotateCall
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{}
}

// PutStep overwrites the cached Step record.
func (c *Cache) PutStep(rec VerifiedStepCall) {
	c.step = &rec
}

// PutRotate overwrites the cached Rotate record.
func (c *Cache) PutRotate(rec VerifiedRotateCall) {
	c.rotate = &rec
}

// LookupStep returns the cached Step output if and only if the cached
// record's (function_id, input_hash) matches the caller-reconstructed
// pair exactly. The double check — function id AND input hash — guards
// against a Rotate record satisfying a Step lookup that happens to
// share an input hash.
func (c *Cache) LookupStep(functionID types.FunctionID, inputHash [32]byte) (types.StepOutput, bool) {
	if c.step == nil {
		return types.StepOutput{}, false
	}
	if !c.step.FunctionID.Equal(functionID) || c.step.InputHash != inputHash {
		return types.StepOutput{}, false
	}
	return c.step.Output, true
}

// LookupRotate is LookupStep's Rotate counterpart.
func (c *Cache) LookupRotate(functionID types.FunctionID, inputHash [32]byte) (types.RotateOutput, bool) {
	if c.rotate == nil {
		return types.RotateOutput{}, false
	}
	if !c.rotate.FunctionID.Equal(functionID) || c.rotate.InputHash != inputHash {
		return types.RotateOutput{}, false
	}
	return c.rotate.Output, true
}
