package types

import "encoding/binary"

// StepOutput is the circuit's public output for a Step proof, laid out
// at fixed byte offsets exactly as the verifier receives it off-chain:
//
//	[0:8)   attested_slot   (big-endian u64)
//	[8:16)  finalized_slot  (big-endian u64)
//	[16:18) participation   (big-endian u16, out of 512)
//	[18:50) finalized_header_root (32 bytes)
//	[50:82) execution_state_root  (32 bytes)
const StepOutputLen = 82

type StepOutput struct {
	AttestedSlot        uint64
	FinalizedSlot       uint64
	Participation       uint16
	FinalizedHeaderRoot [32]byte
	ExecutionStateRoot  [32]byte
}

// ParseStepOutput slices a raw output blob into a StepOutput by fixed
// byte offset, the same convention a flat Solidity-calldata proof blob
// uses for its own fixed-width fields. Bytes beyond offset 82 are
// ignored rather than rejected.
func ParseStepOutput(output []byte) (StepOutput, error) {
	if len(output) < StepOutputLen {
		return StepOutput{}, ErrVerificationError
	}

	var out StepOutput
	out.AttestedSlot = binary.BigEndian.Uint64(output[0:8])
	out.FinalizedSlot = binary.BigEndian.Uint64(output[8:16])
	out.Participation = binary.BigEndian.Uint16(output[16:18])
	copy(out.FinalizedHeaderRoot[:], output[18:50])
	copy(out.ExecutionStateRoot[:], output[50:82])
	return out, nil
}

// RotateOutput is the circuit's public output for a Rotate proof: a
// single Poseidon commitment to the next sync committee's public keys.
const RotateOutputLen = 32

type RotateOutput struct {
	SyncCommitteePoseidon [32]byte
}

// ParseRotateOutput slices a raw output blob into a RotateOutput. Bytes
// beyond offset 32 are ignored rather than rejected.
func ParseRotateOutput(output []byte) (RotateOutput, error) {
	if len(output) < RotateOutputLen {
		return RotateOutput{}, ErrVerificationError
	}

	var out RotateOutput
	copy(out.SyncCommitteePoseidon[:], output[:RotateOutputLen])
	return out, nil
}
