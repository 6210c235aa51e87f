package types

import (
	"encoding/hex"
)

// HexBytes marshals as a 0x-prefixed hex string, the wire format every
// emitted event uses for its byte fields.
type HexBytes []byte

func (b HexBytes) String() string {
	return hex.EncodeToString(b)
}

func (hb HexBytes) MarshalJSON() ([]byte, error) {
	s := "0x" + hex.EncodeToString(hb)
	jbz := make([]byte, len(s)+2)
	jbz[0] = '"'
	copy(jbz[1:], s)
	jbz[len(jbz)-1] = '"'
	return jbz, nil
}
