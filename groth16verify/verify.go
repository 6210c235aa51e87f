package groth16verify

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/kysee/zk-lightclient/types"
)

// Proof is the parsed A/B/C Groth16 proof over BN254.
type Proof struct {
	A bn254.G1Affine
	B bn254.G2Affine
	C bn254.G1Affine
}

// ProofByteLen is the size of the Solidity-calldata proof layout: a flat blob
// of 32-byte big-endian field elements, A (G1: 2 elements), B (G2: 4
// elements), C (G1: 2 elements) — 8 elements, 256 bytes total.
const (
	fieldElementLen = 32
	proofFieldCount = 8
	ProofByteLen    = fieldElementLen * proofFieldCount
)

// ParseProof slices a flat proof blob into its A/B/C components, the
// same fixed-offset convention Solidity-calldata proof bytes use.
func ParseProof(proof []byte) (Proof, error) {
	if len(proof) > types.MaxProofLen {
		return Proof{}, types.ErrProofTooLong
	}
	if len(proof) != ProofByteLen {
		return Proof{}, types.ErrVerificationError
	}

	elems := make([][]byte, proofFieldCount)
	for i := 0; i < proofFieldCount; i++ {
		elems[i] = proof[i*fieldElementLen : (i+1)*fieldElementLen]
	}

	var p Proof
	p.A.X.SetBytes(elems[0])
	p.A.Y.SetBytes(elems[1])
	// G2 coordinates are stored A0 (real part) first, then A1, the same
	// order decodeG2 reads.
	p.B.X.A0.SetBytes(elems[2])
	p.B.X.A1.SetBytes(elems[3])
	p.B.Y.A0.SetBytes(elems[4])
	p.B.Y.A1.SetBytes(elems[5])
	p.C.X.SetBytes(elems[6])
	p.C.Y.SetBytes(elems[7])

	return p, nil
}

// Verify checks a Groth16 proof against the two public-input hashes.
// The two hashes are reduced modulo the scalar field and used as the
// circuit's two public inputs against vk.IC[1] and vk.IC[2]; vk.IC[0]
// is the constant term, exactly as snarkjs lays out IC.
func Verify(vk *VerifyingKey, inputHash, outputHash [32]byte, proofBytes []byte) (bool, error) {
	if len(vk.IC) != 3 {
		return false, types.ErrVerificationError
	}

	proof, err := ParseProof(proofBytes)
	if err != nil {
		return false, err
	}

	publicInputs := []*big.Int{
		scalarFromHash(inputHash),
		scalarFromHash(outputHash),
	}

	// vk_x = IC[0] + sum(IC[i+1] * public_input[i])
	var vkX bn254.G1Jac
	vkX.FromAffine(&vk.IC[0])
	for i, scalar := range publicInputs {
		var term bn254.G1Jac
		term.FromAffine(&vk.IC[i+1])
		term.ScalarMultiplication(&term, scalar)
		vkX.AddAssign(&term)
	}
	var vkXAffine bn254.G1Affine
	vkXAffine.FromJacobian(&vkX)

	var negAlpha, negVkX, negC bn254.G1Affine
	negAlpha.Neg(&vk.Alpha1)
	negVkX.Neg(&vkXAffine)
	negC.Neg(&proof.C)

	// e(A,B) * e(-alpha,beta) * e(-vk_x,gamma) * e(-C,delta) == 1
	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{proof.A, negAlpha, negVkX, negC},
		[]bn254.G2Affine{proof.B, vk.Beta2, vk.Gamma2, vk.Delta2},
	)
	if err != nil {
		return false, types.ErrVerificationError
	}
	return ok, nil
}
