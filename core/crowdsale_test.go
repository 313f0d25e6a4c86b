package core_test

import (
	"testing"

	"rose-token-crowdsale/core"
	"rose-token-crowdsale/core/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSale(t *testing.T) (*core.SaleConfig, *core.Crowdsale) {
	t.Helper()
	cfg := core.DefaultSaleConfig()
	token, err := core.NewToken(cfg)
	require.NoError(t, err)
	return cfg, core.NewCrowdsale(cfg, token, core.NewOwned(cfg.Owner))
}

func TestPurchasePreIcoWeekOne(t *testing.T) {
	cfg, sale := newTestSale(t)

	// 1 ether at price 15 with the 50% week-one bonus
	require.NoError(t, sale.Purchase(alice, ether(1), cfg.PreIcoStart))

	expected := uint256.MustFromDecimal("22500000000000000000") // 22.5 * 10^18
	assert.Equal(t, expected, sale.BalanceOf(alice))
	assert.Equal(t, expected, sale.SoldTokens())
	assert.Equal(t, ether(1), sale.TotalRaised())
	assert.Equal(t, ether(1), sale.ContributionOf(alice))
}

func TestPurchaseFeeSplit(t *testing.T) {
	cfg, sale := newTestSale(t)

	require.NoError(t, sale.Purchase(alice, ether(1), cfg.PreIcoStart))

	fee := uint256.MustFromDecimal("10000000000000000")  // 0.01 ether
	net := uint256.MustFromDecimal("990000000000000000") // 0.99 ether
	assert.Equal(t, fee, sale.PayoutOf(cfg.FeeWallet))
	assert.Equal(t, net, sale.PayoutOf(cfg.Treasury))

	require.NoError(t, sale.Purchase(bob, ether(3), cfg.PreIcoStart))
	assert.Equal(t, uint256.MustFromDecimal("40000000000000000"), sale.PayoutOf(cfg.FeeWallet))
}

func TestPurchaseIcoBonus(t *testing.T) {
	cfg, sale := newTestSale(t)

	// 10% bonus during ICO week two: 15 + 1.5 tokens per ether
	require.NoError(t, sale.Purchase(alice, ether(1), cfg.IcoStart+10*day))
	assert.Equal(t, uint256.MustFromDecimal("16500000000000000000"), sale.BalanceOf(alice))
}

func TestPurchaseBelowMinimum(t *testing.T) {
	cfg, sale := newTestSale(t)

	tooSmall := uint256.MustFromDecimal("99999999999999999") // just under 0.1 ether
	err := sale.Purchase(alice, tooSmall, cfg.PreIcoStart)
	assert.ErrorIs(t, err, model.ErrBelowMinimum)

	// exactly the minimum is accepted
	require.NoError(t, sale.Purchase(alice, cfg.MinimumPurchase, cfg.PreIcoStart))
}

func TestPurchaseInvalidContributor(t *testing.T) {
	cfg, sale := newTestSale(t)

	err := sale.Purchase(common.Address{}, ether(1), cfg.PreIcoStart)
	assert.ErrorIs(t, err, model.ErrInvalidContributor)
}

func TestPurchaseOutsidePhases(t *testing.T) {
	cfg, sale := newTestSale(t)

	for _, ts := range []uint64{cfg.PreIcoStart - 1, cfg.PreIcoEnd + 1, cfg.IcoStart - 1, cfg.IcoEnd + 1} {
		err := sale.Purchase(alice, ether(1), ts)
		assert.ErrorIs(t, err, model.ErrPhaseNotPurchasable)
	}
	assert.True(t, sale.TotalRaised().IsZero())
	assert.True(t, sale.BalanceOf(alice).IsZero())
}

func TestPurchaseHardCapExceeded(t *testing.T) {
	cfg, sale := newTestSale(t)
	saleBalanceBefore := sale.BalanceOf(cfg.SaleHolder)

	err := sale.Purchase(alice, ether(40001), cfg.IcoStart+3*week)
	assert.ErrorIs(t, err, model.ErrHardCapExceeded)

	// nothing moved
	assert.True(t, sale.TotalRaised().IsZero())
	assert.True(t, sale.SoldTokens().IsZero())
	assert.True(t, sale.BalanceOf(alice).IsZero())
	assert.True(t, sale.ContributionOf(alice).IsZero())
	assert.True(t, sale.PayoutOf(cfg.Treasury).IsZero())
	assert.Equal(t, saleBalanceBefore, sale.BalanceOf(cfg.SaleHolder))
}

func TestPurchasePreIcoLimitExceeded(t *testing.T) {
	cfg, sale := newTestSale(t)

	// 27,000 ether * 15 * 1.5 = 607,500 tokens > the 600,000 cap
	err := sale.Purchase(alice, ether(27000), cfg.PreIcoStart)
	assert.ErrorIs(t, err, model.ErrPreIcoLimitExceeded)
	assert.True(t, sale.SoldTokens().IsZero())
	assert.True(t, sale.TotalRaised().IsZero())
	assert.True(t, sale.BalanceOf(alice).IsZero())

	// the same issuance is fine once the ICO has no token cap
	require.NoError(t, sale.Purchase(alice, ether(27000), cfg.IcoStart+3*week))
}

func TestCalcTokens(t *testing.T) {
	_, sale := newTestSale(t)

	tokens, err := sale.CalcTokens(ether(2))
	require.NoError(t, err)
	assert.Equal(t, ether(30), tokens)
}

func TestCheckSaleLimit(t *testing.T) {
	cfg, sale := newTestSale(t)

	assert.NoError(t, sale.CheckSaleLimit(core.PhasePreICO, cfg.PreIcoSaleLimit))
	overCap := new(uint256.Int).AddUint64(cfg.PreIcoSaleLimit, 1)
	assert.ErrorIs(t, sale.CheckSaleLimit(core.PhasePreICO, overCap), model.ErrPreIcoLimitExceeded)
	assert.NoError(t, sale.CheckSaleLimit(core.PhaseICO, overCap))
}

func TestManualTransfer(t *testing.T) {
	cfg, sale := newTestSale(t)

	err := sale.ManualTransfer(alice, bob, ether(1), cfg.PreIcoStart)
	assert.ErrorIs(t, err, model.ErrNotAuthorized)

	// the manual path requires strictly more than the minimum
	err = sale.ManualTransfer(cfg.Owner, bob, cfg.MinimumPurchase, cfg.PreIcoStart)
	assert.ErrorIs(t, err, model.ErrBelowMinimum)

	require.NoError(t, sale.ManualTransfer(cfg.Owner, bob, ether(1), cfg.PreIcoStart))
	assert.Equal(t, uint256.MustFromDecimal("22500000000000000000"), sale.BalanceOf(bob))
	assert.Equal(t, ether(1), sale.TotalRaised())
	assert.Equal(t, ether(1), sale.ContributionOf(bob))

	// no native value settles on the manual path
	assert.True(t, sale.PayoutOf(cfg.FeeWallet).IsZero())
	assert.True(t, sale.PayoutOf(cfg.Treasury).IsZero())
}

func TestFinish(t *testing.T) {
	cfg, sale := newTestSale(t)
	require.NoError(t, sale.Purchase(alice, ether(1), cfg.PreIcoStart))

	err := sale.Finish(alice)
	assert.ErrorIs(t, err, model.ErrNotAuthorized)
	assert.False(t, sale.Finished())

	unsold := sale.BalanceOf(cfg.SaleHolder)
	supplyBefore := sale.TotalSupply()
	require.NoError(t, sale.Finish(cfg.Owner))

	assert.True(t, sale.Finished())
	assert.True(t, sale.BalanceOf(cfg.SaleHolder).IsZero())
	expected := new(uint256.Int).Sub(supplyBefore, unsold)
	assert.Equal(t, expected, sale.TotalSupply())

	// purchases are rejected for good
	err = sale.Purchase(bob, ether(1), cfg.PreIcoStart)
	assert.ErrorIs(t, err, model.ErrSaleFinished)
	err = sale.ManualTransfer(cfg.Owner, bob, ether(1), cfg.PreIcoStart)
	assert.ErrorIs(t, err, model.ErrSaleFinished)
}

func TestFinishTwiceRejected(t *testing.T) {
	cfg, sale := newTestSale(t)
	require.NoError(t, sale.Finish(cfg.Owner))

	supply := sale.TotalSupply()
	err := sale.Finish(cfg.Owner)
	assert.ErrorIs(t, err, model.ErrAlreadyFinished)
	assert.Equal(t, supply, sale.TotalSupply())
}

func TestPurchaseKeepsSupplyInvariant(t *testing.T) {
	cfg, sale := newTestSale(t)

	require.NoError(t, sale.Purchase(alice, ether(2), cfg.PreIcoStart))
	require.NoError(t, sale.Purchase(bob, ether(5), cfg.PreIcoStart+4*week))
	require.NoError(t, sale.Finish(cfg.Owner))

	sum := new(uint256.Int)
	for _, account := range []common.Address{cfg.SaleHolder, cfg.ReserveHolder, alice, bob} {
		sum.Add(sum, sale.BalanceOf(account))
	}
	assert.Equal(t, sale.TotalSupply(), sum)
}
