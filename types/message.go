package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Message is the cross-chain payload the messenger verifies existence
// of and transitions through the execution-status state machine.
type Message struct {
	Version           uint8
	Nonce             uint64
	SourceChainID     uint32
	DestinationChainID uint32
	Sender            common.Address
	Recipient         [32]byte
	Payload           []byte
}

// MessageStatus is the execution-status state machine attached to each
// message root.
type MessageStatus uint8

const (
	MessageNotExecuted MessageStatus = iota
	MessageExecutionFailed
	MessageExecutionSucceeded
)

// messageArguments describes the ABI tuple
// (uint8 version, uint64 nonce, uint32 source, uint32 dest, address
// sender, bytes32 recipient, bytes payload).
var messageArguments = mustMessageArguments()

func mustMessageArguments() abi.Arguments {
	u8, _ := abi.NewType("uint8", "", nil)
	u64, _ := abi.NewType("uint64", "", nil)
	u32, _ := abi.NewType("uint32", "", nil)
	addr, _ := abi.NewType("address", "", nil)
	b32, _ := abi.NewType("bytes32", "", nil)
	dynBytes, _ := abi.NewType("bytes", "", nil)

	return abi.Arguments{
		{Name: "version", Type: u8},
		{Name: "nonce", Type: u64},
		{Name: "source", Type: u32},
		{Name: "dest", Type: u32},
		{Name: "sender", Type: addr},
		{Name: "recipient", Type: b32},
		{Name: "payload", Type: dynBytes},
	}
}

// DecodeMessage ABI-decodes a wire message.
func DecodeMessage(messageBytes []byte) (Message, error) {
	values, err := messageArguments.Unpack(messageBytes)
	if err != nil {
		return Message{}, err
	}

	var m Message
	m.Version = values[0].(uint8)
	m.Nonce = values[1].(uint64)
	m.SourceChainID = values[2].(uint32)
	m.DestinationChainID = values[3].(uint32)
	m.Sender = values[4].(common.Address)
	m.Recipient = values[5].([32]byte)
	m.Payload = values[6].([]byte)
	return m, nil
}

// EncodeMessage ABI-encodes a Message the same way DecodeMessage expects
// to read it back; used by tests to build fixtures.
func EncodeMessage(m Message) ([]byte, error) {
	return messageArguments.Pack(
		m.Version,
		m.Nonce,
		m.SourceChainID,
		m.DestinationChainID,
		m.Sender,
		m.Recipient,
		m.Payload,
	)
}

// MessageMappingSlotKey derives the storage slot key for
// broadcaster.messages[nonce], a Solidity mapping(uint256 => bytes32) at
// storage index MessageMappingStorageIndex: keccak256(abi_encode(uint256
// nonce, uint256 index)).
func MessageMappingSlotKey(nonce uint64, storageIndex uint64) ([32]byte, error) {
	u256, _ := abi.NewType("uint256", "", nil)
	args := abi.Arguments{{Type: u256}, {Type: u256}}
	packed, err := args.Pack(new(big.Int).SetUint64(nonce), new(big.Int).SetUint64(storageIndex))
	if err != nil {
		return [32]byte{}, err
	}
	return Keccak256(packed), nil
}
