package model

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type ChainBlock struct {
	Number    uint64
	Txs       []*ChainTransaction
	Timestamp uint64
}

// ChainTransaction is a native value transfer addressed to the sale;
// anything else in the block is dropped during conversion.
type ChainTransaction struct {
	Id        string
	From      common.Address
	To        common.Address
	Value     *uint256.Int
	Block     uint64
	Idx       uint32
	Timestamp uint64
}
