package model

import (
	"rose-token-crowdsale/utils/generics/must"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type RecordKind string

const (
	RecordTransfer             RecordKind = "Transfer"
	RecordApproval             RecordKind = "Approval"
	RecordBurn                 RecordKind = "Burn"
	RecordOwnershipTransferred RecordKind = "OwnershipTransferred"
)

// event signatures, solidity style, kept stable so external observers can
// recompute the topics
const (
	TransferEventSig             = "Transfer(address,address,uint256)"
	ApprovalEventSig             = "Approval(address,address,uint256)"
	BurnEventSig                 = "Burn(address,uint256)"
	OwnershipTransferredEventSig = "OwnershipTransferred(address,address)"
)

var (
	TopicTransfer             = "0x" + Keccak256(TransferEventSig)
	TopicApproval             = "0x" + Keccak256(ApprovalEventSig)
	TopicBurn                 = "0x" + Keccak256(BurnEventSig)
	TopicOwnershipTransferred = "0x" + Keccak256(OwnershipTransferredEventSig)

	uint256Type = must.Must(abi.NewType("uint256", "", nil))

	valueArguments = abi.Arguments{{Type: uint256Type}}
)

// Record is one append-only audit entry. Records are emitted on every
// successful mutation and carry no behavioural weight inside the ledger.
// Data holds the ABI-packed non-indexed payload (the value, when present).
type Record struct {
	Kind  RecordKind
	Topic string
	From  common.Address
	To    common.Address
	Value *uint256.Int
	Data  []byte
}

func NewTransferRecord(from, to common.Address, value *uint256.Int) *Record {
	data, _ := valueArguments.Pack(value.ToBig())
	return &Record{
		Kind:  RecordTransfer,
		Topic: TopicTransfer,
		From:  from,
		To:    to,
		Value: value.Clone(),
		Data:  data,
	}
}

func NewApprovalRecord(owner, spender common.Address, value *uint256.Int) *Record {
	data, _ := valueArguments.Pack(value.ToBig())
	return &Record{
		Kind:  RecordApproval,
		Topic: TopicApproval,
		From:  owner,
		To:    spender,
		Value: value.Clone(),
		Data:  data,
	}
}

func NewBurnRecord(holder common.Address, value *uint256.Int) *Record {
	data, _ := valueArguments.Pack(value.ToBig())
	return &Record{
		Kind:  RecordBurn,
		Topic: TopicBurn,
		From:  holder,
		Value: value.Clone(),
		Data:  data,
	}
}

func NewOwnershipTransferredRecord(previous, next common.Address) *Record {
	return &Record{
		Kind:  RecordOwnershipTransferred,
		Topic: TopicOwnershipTransferred,
		From:  previous,
		To:    next,
	}
}
