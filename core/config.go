package core

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// SaleConfig holds every fixed constant of the token and its sale. All of
// it is decided at build time; nothing here is runtime-configurable.
type SaleConfig struct {
	// Name of the token.
	Name string
	// Short ticker of the token.
	Symbol string
	// Decimal places of the token.
	Decimals uint8
	// The total amount of tokens created at genesis. Fixed forever; burn
	// is the only way supply moves after that.
	TotalSupply *uint256.Int
	// Portion of the genesis supply credited to the reserve holder instead
	// of the sale.
	Reserve *uint256.Int
	// Address holding the sellable supply. The crowdsale debits this
	// balance on every purchase and burns whatever is left at the end.
	SaleHolder common.Address
	// Address receiving the reserve allocation at genesis.
	ReserveHolder common.Address
	// Address receiving the 1% fee cut of every contribution.
	FeeWallet common.Address
	// Address receiving the rest of every contribution.
	Treasury common.Address
	// Sale administrator.
	Owner common.Address

	// Phase windows, unix seconds, inclusive on both ends.
	PreIcoStart uint64
	PreIcoEnd   uint64
	IcoStart    uint64
	IcoEnd      uint64

	// How many tokens one native-currency unit buys, before bonus.
	Price *uint256.Int
	// Smallest contribution the sale accepts, in wei.
	MinimumPurchase *uint256.Int
	// Maximum tokens (bonus included) issuable while in PreICO.
	PreIcoSaleLimit *uint256.Int
	// Maximum cumulative native value the sale accepts, in wei.
	HardCap *uint256.Int
}

// DefaultSaleConfig returns the production constants.
func DefaultSaleConfig() *SaleConfig {
	return &SaleConfig{
		Name:     "Rose Sale Token",
		Symbol:   "RST",
		Decimals: 18,

		TotalSupply: uint256.MustFromDecimal("1200000000000000000000000"), // 1,200,000 * 10^18
		Reserve:     uint256.MustFromDecimal("150000000000000000000000"),  // 150,000 * 10^18

		SaleHolder:    common.HexToAddress("0x70a1b85c53b2f78524cd89b0a5deb761d577d837"),
		ReserveHolder: common.HexToAddress("0x31f1d32bc80113a4b1a5f9ae5bd9b21132f73a37"),
		FeeWallet:     common.HexToAddress("0x9c1f9e8ee834adee1f4f3063cc8b5fa5a61a9c31"),
		Treasury:      common.HexToAddress("0xd3f81ce81c61e0b3a16cf2a976ae4f747b28d66a"),
		Owner:         common.HexToAddress("0xf9f128d9b8ddb66883708ba08a171e9018bed559"),

		PreIcoStart: 1517443200, // 2018-02-01 00:00:00 UTC
		PreIcoEnd:   1522540799, // 2018-03-31 23:59:59 UTC
		IcoStart:    1523836800, // 2018-04-16 00:00:00 UTC
		IcoEnd:      1526428799, // 2018-05-15 23:59:59 UTC

		Price:           uint256.NewInt(15),
		MinimumPurchase: uint256.MustFromDecimal("100000000000000000"),       // 0.1 ether
		PreIcoSaleLimit: uint256.MustFromDecimal("600000000000000000000000"), // 600,000 * 10^18
		HardCap:         uint256.MustFromDecimal("40000000000000000000000"),  // 40,000 ether
	}
}
