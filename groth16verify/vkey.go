// Package groth16verify parses a snarkjs-style JSON Groth16 verification
// key over BN254 and checks a proof against two field-element public
// inputs. Proof generation and trusted setup are out of scope; this
// package only ever consumes already-produced keys and proofs.
package groth16verify

import (
	"encoding/json"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/kysee/zk-lightclient/types"
)

// rawVKey mirrors the on-disk JSON shape: string fields for
// curve/protocol, and points given as arrays of base-10 decimal-string
// coordinates (the conventional snarkjs export format).
type rawVKey struct {
	Curve    string     `json:"curve"`
	Protocol string     `json:"protocol"`
	IC       [][]string `json:"IC"`
	Alpha1   []string   `json:"vk_alpha_1"`
	Beta2    [][]string `json:"vk_beta_2"`
	Gamma2   [][]string `json:"vk_gamma_2"`
	Delta2   [][]string `json:"vk_delta_2"`
}

// VerifyingKey is the parsed, curve-typed form of the JSON blob, ready
// for use in pairing checks.
type VerifyingKey struct {
	IC     []bn254.G1Affine
	Alpha1 bn254.G1Affine
	Beta2  bn254.G2Affine
	Gamma2 bn254.G2Affine
	Delta2 bn254.G2Affine
}

// ParseVerifyingKey validates and decodes a JSON verification key. It
// enforces the MaxVerificationKeyLen ceiling before touching the JSON
// decoder.
func ParseVerifyingKey(jsonBytes []byte) (*VerifyingKey, error) {
	if len(jsonBytes) > types.MaxVerificationKeyLen {
		return nil, types.ErrTooLongVerificationKey
	}

	var raw rawVKey
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		return nil, types.ErrMalformedVerificationKey
	}
	if raw.Curve != "bn128" {
		return nil, types.ErrNotSupportedCurve
	}
	if raw.Protocol != "groth16" {
		return nil, types.ErrNotSupportedProtocol
	}
	if len(raw.IC) == 0 || len(raw.Alpha1) < 2 || len(raw.Beta2) < 2 ||
		len(raw.Gamma2) < 2 || len(raw.Delta2) < 2 {
		return nil, types.ErrMalformedVerificationKey
	}

	vk := &VerifyingKey{IC: make([]bn254.G1Affine, len(raw.IC))}

	var err error
	if vk.Alpha1, err = decodeG1(raw.Alpha1); err != nil {
		return nil, err
	}
	if vk.Beta2, err = decodeG2(raw.Beta2); err != nil {
		return nil, err
	}
	if vk.Gamma2, err = decodeG2(raw.Gamma2); err != nil {
		return nil, err
	}
	if vk.Delta2, err = decodeG2(raw.Delta2); err != nil {
		return nil, err
	}
	for i, p := range raw.IC {
		g1, err := decodeG1(p)
		if err != nil {
			return nil, err
		}
		vk.IC[i] = g1
	}

	return vk, nil
}

func decodeDecimal(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, types.ErrMalformedVerificationKey
	}
	return n, nil
}

// decodeG1 reads a [x, y, 1] decimal-string triple into an affine point.
func decodeG1(coords []string) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if len(coords) < 2 {
		return p, types.ErrMalformedVerificationKey
	}
	x, err := decodeDecimal(coords[0])
	if err != nil {
		return p, err
	}
	y, err := decodeDecimal(coords[1])
	if err != nil {
		return p, err
	}
	p.X.SetBigInt(x)
	p.Y.SetBigInt(y)
	return p, nil
}

// decodeG2 reads a [[x0,x1],[y0,y1],[1,0]] pair of decimal-string pairs
// into an affine point. Each quadratic-extension coordinate is read as
// [c0, c1]: the first value goes to A0 (the real part), the second to A1.
func decodeG2(coords [][]string) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if len(coords) < 2 || len(coords[0]) < 2 || len(coords[1]) < 2 {
		return p, types.ErrMalformedVerificationKey
	}
	x0, err := decodeDecimal(coords[0][0])
	if err != nil {
		return p, err
	}
	x1, err := decodeDecimal(coords[0][1])
	if err != nil {
		return p, err
	}
	y0, err := decodeDecimal(coords[1][0])
	if err != nil {
		return p, err
	}
	y1, err := decodeDecimal(coords[1][1])
	if err != nil {
		return p, err
	}
	p.X.A0.SetBigInt(x0)
	p.X.A1.SetBigInt(x1)
	p.Y.A0.SetBigInt(y0)
	p.Y.A1.SetBigInt(y1)
	return p, nil
}

// scalarFieldModulus is the BN254 scalar field (fr) modulus, the field
// the circuit's public inputs live in.
var scalarFieldModulus, _ = new(big.Int).SetString(
	"21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

// scalarFromHash reduces a 32-byte big-endian hash into the BN254
// scalar field the way the proving circuit does for its public inputs.
func scalarFromHash(h [32]byte) *big.Int {
	n := new(big.Int).SetBytes(h[:])
	return n.Mod(n, scalarFieldModulus)
}
