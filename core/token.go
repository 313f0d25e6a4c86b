package core

import (
	"rose-token-crowdsale/core/safemath"

	"github.com/sirupsen/logrus"
)

// Token is the ledger plus the token's identity, initialised once at
// genesis. The whole supply is split between the sale holder and the
// reserve; no mint path exists after that.
type Token struct {
	*Ledger
	Name     string
	Symbol   string
	Decimals uint8
}

func NewToken(cfg *SaleConfig) (*Token, error) {
	saleAllocation, err := safemath.Sub(cfg.TotalSupply, cfg.Reserve)
	if err != nil {
		return nil, err
	}

	token := &Token{
		Ledger:   NewLedger(),
		Name:     cfg.Name,
		Symbol:   cfg.Symbol,
		Decimals: cfg.Decimals,
	}
	if err := token.genesisCredit(cfg.SaleHolder, saleAllocation); err != nil {
		return nil, err
	}
	if err := token.genesisCredit(cfg.ReserveHolder, cfg.Reserve); err != nil {
		return nil, err
	}

	logrus.Infof("genesis %s (%s): %s to sale holder %s, %s to reserve %s",
		token.Name, token.Symbol, saleAllocation, cfg.SaleHolder, cfg.Reserve, cfg.ReserveHolder)
	return token, nil
}
