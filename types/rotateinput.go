package types

// EncodeRotateInput reconstructs the canonical Rotate input:
// `abi_encode([FixedBytes(header_root)])`. ABI-encoding a single
// bytes32 tuple element is the 32 bytes themselves, left-padded to
// nothing since they are already word-sized.
func EncodeRotateInput(headerRoot [32]byte) []byte {
	out := make([]byte, 32)
	copy(out, headerRoot[:])
	return out
}
