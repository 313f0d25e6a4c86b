package main

import (
	"os"
	"rose-token-crowdsale/chain"
	"rose-token-crowdsale/core"
	"rose-token-crowdsale/core/model"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	EnvChainUrl = "CHAIN_URL"

	defaultChainUrl = "https://emerald.oasis.dev"
)

func main() {
	chainUrl := os.Getenv(EnvChainUrl)
	if chainUrl == "" {
		chainUrl = defaultChainUrl
	}
	bc, err := chain.NewBlockchainClient(chainUrl)
	if err != nil {
		logrus.Fatalf("Failed to create client: %v", err)
	}

	cfg := core.DefaultSaleConfig()
	token, err := core.NewToken(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialise token: %v", err)
	}
	sale := core.NewCrowdsale(cfg, token, core.NewOwned(cfg.Owner))

	var wg sync.WaitGroup

	wg.Add(1)

	go startChainFetcher(bc, cfg, sale, &wg)

	wg.Wait()
}

func getBlockInfo(bc *chain.BlockchainClient, cfg *core.SaleConfig, bcNumber uint64) (*model.ChainBlock, error) {
	blockInfo, err := bc.GetBlock(int64(bcNumber))
	if err != nil {
		logrus.Errorf("GetBlock %d err: %v", bcNumber, err)
		return nil, err
	}
	return chain.ConvertBlockToChainBlock(blockInfo, cfg.SaleHolder), nil
}

func startChainFetcher(bc *chain.BlockchainClient, cfg *core.SaleConfig, sale *core.Crowdsale, wg *sync.WaitGroup) {
	defer wg.Done()

	latestHandled, err := bc.GetLatestBlockNumber()
	if err != nil {
		logrus.Fatalf("GetLatestBlockNumber err: %v", err)
	}

	for {
		bcNumber, err := bc.GetLatestBlockNumber()
		if err != nil {
			logrus.Errorf("GetLatestBlockNumber err: %v", err)
			time.Sleep(3 * time.Second)
			continue
		}
		if latestHandled == bcNumber {
			time.Sleep(3 * time.Second)
			continue
		}

		for i := latestHandled + 1; i <= bcNumber; i++ {
			bcinfo, err := getBlockInfo(bc, cfg, uint64(i))
			if err != nil {
				logrus.Errorf("GetBlock %d err: %v", i, err)
				time.Sleep(1 * time.Second)
				break
			}
			logrus.Infof("handle block %d, contributions %d", i, len(bcinfo.Txs))
			for _, trx := range bcinfo.Txs {
				// rejections stay on chain as plain transfers; the sale
				// just declines to credit them
				if err := sale.Purchase(trx.From, trx.Value, bcinfo.Timestamp); err != nil {
					logrus.Warnf("contribution %s in block %d rejected: %v", trx.Id, i, err)
				}
			}
			latestHandled = i
		}
	}
}
