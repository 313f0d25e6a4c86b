package chain

import (
	"context"
	"math/big"
	"rose-token-crowdsale/core/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

type BlockchainClient struct {
	client *ethclient.Client
}

func NewBlockchainClient(ethURL string) (*BlockchainClient, error) {
	client, err := ethclient.Dial(ethURL)
	if err != nil {
		return nil, err
	}
	return &BlockchainClient{client: client}, nil
}

func (bc *BlockchainClient) GetBlock(blockNumber int64) (*types.Block, error) {
	block, err := bc.client.BlockByNumber(context.Background(), big.NewInt(blockNumber))
	if err != nil {
		return nil, err
	}
	return block, nil
}

func (bc *BlockchainClient) GetLatestBlockNumber() (int64, error) {
	header, err := bc.client.HeaderByNumber(context.Background(), nil)
	if err != nil {
		return 0, err
	}
	return header.Number.Int64(), nil
}

// ConvertBlockToChainBlock keeps only the native value transfers addressed
// to the sale; everything else in the block is irrelevant to settlement.
func ConvertBlockToChainBlock(block *types.Block, saleAddress common.Address) *model.ChainBlock {
	chainBlock := &model.ChainBlock{
		Number:    block.Number().Uint64(),
		Timestamp: block.Time(),
	}
	for idx, tx := range block.Transactions() {
		if tx.To() == nil || *tx.To() != saleAddress || tx.Value().Sign() <= 0 {
			continue
		}

		from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
		if err != nil {
			logrus.Errorf("failed to recover sender of %s: %v", tx.Hash(), err)
			continue
		}
		value, overflow := uint256.FromBig(tx.Value())
		if overflow {
			logrus.Errorf("value of %s out of range", tx.Hash())
			continue
		}

		chainTx := &model.ChainTransaction{
			Id:        tx.Hash().Hex(),
			From:      from,
			To:        *tx.To(),
			Value:     value,
			Block:     block.Number().Uint64(),
			Idx:       uint32(idx),
			Timestamp: block.Time(),
		}
		chainBlock.Txs = append(chainBlock.Txs, chainTx)
	}
	return chainBlock
}
