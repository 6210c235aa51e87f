package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/zk-lightclient/types"
)

func TestLookupStep_MatchesOnFunctionIDAndInputHash(t *testing.T) {
	c := New()
	ih := [32]byte{1}
	output := types.StepOutput{AttestedSlot: 8200, FinalizedSlot: 8100}

	c.PutStep(VerifiedStepCall{FunctionID: types.StepFunctionID, InputHash: ih, Output: output})

	got, ok := c.LookupStep(types.StepFunctionID, ih)
	require.True(t, ok)
	require.Equal(t, output, got)
}

func TestLookupStep_MissesOnWrongHash(t *testing.T) {
	c := New()
	c.PutStep(VerifiedStepCall{FunctionID: types.StepFunctionID, InputHash: [32]byte{1}, Output: types.StepOutput{}})

	_, ok := c.LookupStep(types.StepFunctionID, [32]byte{2})
	require.False(t, ok)
}

func TestLookupStep_MissesOnWrongFunctionID(t *testing.T) {
	c := New()
	ih := [32]byte{1}
	c.PutStep(VerifiedStepCall{FunctionID: types.StepFunctionID, InputHash: ih, Output: types.StepOutput{}})

	_, ok := c.LookupStep(types.RotateFunctionID, ih)
	require.False(t, ok)
}

func TestLookupStep_EmptyCacheMisses(t *testing.T) {
	c := New()
	_, ok := c.LookupStep(types.StepFunctionID, [32]byte{1})
	require.False(t, ok)
}

func TestPutStep_OverwritesPriorRecord(t *testing.T) {
	c := New()
	c.PutStep(VerifiedStepCall{FunctionID: types.StepFunctionID, InputHash: [32]byte{1}, Output: types.StepOutput{FinalizedSlot: 100}})
	c.PutStep(VerifiedStepCall{FunctionID: types.StepFunctionID, InputHash: [32]byte{2}, Output: types.StepOutput{FinalizedSlot: 200}})

	_, ok := c.LookupStep(types.StepFunctionID, [32]byte{1})
	require.False(t, ok, "the earlier record must no longer be reachable")

	got, ok := c.LookupStep(types.StepFunctionID, [32]byte{2})
	require.True(t, ok)
	require.Equal(t, uint64(200), got.FinalizedSlot)
}

func TestLookupRotate_MatchesOnFunctionIDAndInputHash(t *testing.T) {
	c := New()
	ih := [32]byte{9}
	output := types.RotateOutput{SyncCommitteePoseidon: [32]byte{7}}

	c.PutRotate(VerifiedRotateCall{FunctionID: types.RotateFunctionID, InputHash: ih, Output: output})

	got, ok := c.LookupRotate(types.RotateFunctionID, ih)
	require.True(t, ok)
	require.Equal(t, output, got)
}
