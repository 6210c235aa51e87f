package types

// FunctionID selects which verification key and output layout a
// fulfill_call submission belongs to: a 32-byte constant baked into
// the runtime configuration.
type FunctionID [32]byte

// StepFunctionID and RotateFunctionID are the two well-known function
// ids recognised by fulfill_call. They are derived the same way a
// Solidity selector constant would be: keccak256 of a stable ASCII tag,
// giving a fixed, collision-free 32-byte identifier without requiring
// any external configuration step at genesis.
var (
	StepFunctionID   = Keccak256([]byte("zk-lightclient.step"))
	RotateFunctionID = Keccak256([]byte("zk-lightclient.rotate"))
)

// Equal reports whether two function ids are the same.
func (f FunctionID) Equal(other FunctionID) bool {
	return f == other
}
