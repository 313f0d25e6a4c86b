package core

import (
	"sync"

	"rose-token-crowdsale/core/model"
	"rose-token-crowdsale/core/safemath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

// Crowdsale converts incoming native value into token credits under the
// phase schedule, the bonus tiers and the caps, and splits the received
// value between the fee wallet and the treasury.
//
// One mutex serialises every operation end to end; validation and all
// arithmetic happen before the first mutation, so a rejected purchase
// leaves ledger, contributions and totals exactly as they were.
type Crowdsale struct {
	mu   sync.Mutex
	cfg  *SaleConfig
	auth Authority

	*Token

	finished      bool
	totalRaised   *uint256.Int
	soldTokens    *uint256.Int
	contributions map[common.Address]*uint256.Int
	payouts       map[common.Address]*uint256.Int
}

func NewCrowdsale(cfg *SaleConfig, token *Token, auth Authority) *Crowdsale {
	return &Crowdsale{
		cfg:           cfg,
		auth:          auth,
		Token:         token,
		totalRaised:   new(uint256.Int),
		soldTokens:    new(uint256.Int),
		contributions: make(map[common.Address]*uint256.Int),
		payouts:       make(map[common.Address]*uint256.Int),
	}
}

func (s *Crowdsale) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

func (s *Crowdsale) TotalRaised() *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalRaised.Clone()
}

func (s *Crowdsale) SoldTokens() *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.soldTokens.Clone()
}

func (s *Crowdsale) ContributionOf(contributor common.Address) *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contributed, ok := s.contributions[contributor]; ok {
		return contributed.Clone()
	}
	return new(uint256.Int)
}

// PayoutOf returns the native value settled to recipient so far. Only the
// fee wallet and the treasury ever accrue payouts.
func (s *Crowdsale) PayoutOf(recipient common.Address) *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payoutLocked(recipient).Clone()
}

// CalcTokens returns value * price, before bonus.
func (s *Crowdsale) CalcTokens(value *uint256.Int) (*uint256.Int, error) {
	return safemath.Mul(value, s.cfg.Price)
}

// CheckSaleLimit rejects an issuance of additional tokens that would push
// the PreICO total past the pre-sale cap. Phases other than PreICO have no
// token cap.
func (s *Crowdsale) CheckSaleLimit(phase Phase, additional *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkSaleLimitLocked(phase, additional)
}

// Purchase settles a contribution of value (wei) from contributor at time
// now (unix seconds): tokens plus the tiered bonus go to the contributor,
// 1% of the value to the fee wallet and the rest to the treasury.
func (s *Crowdsale) Purchase(contributor common.Address, value *uint256.Int, now uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	totalTokens, err := s.validateLocked(contributor, value, now, false)
	if err != nil {
		return s.reject(contributor, value, err)
	}

	fee, err := safemath.Div(value, uint256.NewInt(100))
	if err != nil {
		return err
	}
	net, err := safemath.Sub(value, fee)
	if err != nil {
		return err
	}
	feePaid, err := safemath.Add(s.payoutLocked(s.cfg.FeeWallet), fee)
	if err != nil {
		return err
	}
	netPaid, err := safemath.Add(s.payoutLocked(s.cfg.Treasury), net)
	if err != nil {
		return err
	}

	if err := s.commitLocked(contributor, value, totalTokens); err != nil {
		return s.reject(contributor, value, err)
	}
	s.payouts[s.cfg.FeeWallet] = feePaid
	s.payouts[s.cfg.Treasury] = netPaid

	logrus.Infof("purchase %s value %s tokens %s fee %s net %s", contributor, value, totalTokens, fee, net)
	return nil
}

// ManualTransfer credits tokens for a contribution settled off-channel.
// Validation matches Purchase except the minimum is strict (a value equal
// to the minimum is rejected), no native value moves and nothing is
// fee-split. Owner only.
func (s *Crowdsale) ManualTransfer(caller, recipient common.Address, value *uint256.Int, now uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.auth.IsOwner(caller) {
		return model.ErrNotAuthorized
	}
	totalTokens, err := s.validateLocked(recipient, value, now, true)
	if err != nil {
		return s.reject(recipient, value, err)
	}
	if err := s.commitLocked(recipient, value, totalTokens); err != nil {
		return s.reject(recipient, value, err)
	}

	logrus.Infof("manual transfer %s value %s tokens %s", recipient, value, totalTokens)
	return nil
}

// Finish closes the sale for good and burns whatever the sale holder still
// has. A second call is rejected, not silently accepted. Owner only.
func (s *Crowdsale) Finish(caller common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.auth.IsOwner(caller) {
		return model.ErrNotAuthorized
	}
	if s.finished {
		return model.ErrAlreadyFinished
	}

	s.finished = true
	unsold := s.Token.BalanceOf(s.cfg.SaleHolder)
	if !unsold.IsZero() {
		if err := s.Token.Burn(s.cfg.SaleHolder, unsold); err != nil {
			return err
		}
	}
	logrus.Infof("sale finished, burned unsold %s", unsold)
	return nil
}

// validateLocked runs every check common to Purchase and ManualTransfer
// and returns the token amount, bonus included, the contribution earns.
// No state is touched. strictMinimum rejects a value equal to the minimum
// (the ManualTransfer rule); Purchase accepts it.
func (s *Crowdsale) validateLocked(contributor common.Address, value *uint256.Int, now uint64, strictMinimum bool) (*uint256.Int, error) {
	if s.finished {
		return nil, model.ErrSaleFinished
	}
	if contributor == (common.Address{}) {
		return nil, model.ErrInvalidContributor
	}
	if value.Lt(s.cfg.MinimumPurchase) || (strictMinimum && value.Eq(s.cfg.MinimumPurchase)) {
		return nil, model.ErrBelowMinimum
	}

	phase := s.cfg.PhaseAt(now)
	if !IsPurchasable(phase) {
		return nil, model.ErrPhaseNotPurchasable
	}

	raised, err := safemath.Add(s.totalRaised, value)
	if err != nil {
		return nil, err
	}
	if raised.Gt(s.cfg.HardCap) {
		return nil, model.ErrHardCapExceeded
	}

	tokens, err := safemath.Mul(value, s.cfg.Price)
	if err != nil {
		return nil, err
	}
	scaled, err := safemath.Mul(tokens, uint256.NewInt(s.cfg.BonusPercent(phase, now)))
	if err != nil {
		return nil, err
	}
	bonus, err := safemath.Div(scaled, uint256.NewInt(100))
	if err != nil {
		return nil, err
	}
	totalTokens, err := safemath.Add(tokens, bonus)
	if err != nil {
		return nil, err
	}

	if err := s.checkSaleLimitLocked(phase, totalTokens); err != nil {
		return nil, err
	}
	return totalTokens, nil
}

// commitLocked performs the actual settlement: ledger transfer first, then
// the running totals. The totals are precomputed with checked arithmetic
// before the transfer so nothing can fail once the ledger has moved.
func (s *Crowdsale) commitLocked(contributor common.Address, value, totalTokens *uint256.Int) error {
	sold, err := safemath.Add(s.soldTokens, totalTokens)
	if err != nil {
		return err
	}
	raised, err := safemath.Add(s.totalRaised, value)
	if err != nil {
		return err
	}
	contributed, err := safemath.Add(s.contributionLocked(contributor), value)
	if err != nil {
		return err
	}

	if err := s.Token.Transfer(s.cfg.SaleHolder, contributor, totalTokens); err != nil {
		return err
	}

	s.soldTokens = sold
	s.totalRaised = raised
	s.contributions[contributor] = contributed
	return nil
}

func (s *Crowdsale) checkSaleLimitLocked(phase Phase, additional *uint256.Int) error {
	if phase != PhasePreICO {
		return nil
	}
	sold, err := safemath.Add(s.soldTokens, additional)
	if err != nil {
		return err
	}
	if sold.Gt(s.cfg.PreIcoSaleLimit) {
		return model.ErrPreIcoLimitExceeded
	}
	return nil
}

func (s *Crowdsale) contributionLocked(contributor common.Address) *uint256.Int {
	if contributed, ok := s.contributions[contributor]; ok {
		return contributed
	}
	return new(uint256.Int)
}

func (s *Crowdsale) payoutLocked(recipient common.Address) *uint256.Int {
	if paid, ok := s.payouts[recipient]; ok {
		return paid
	}
	return new(uint256.Int)
}

func (s *Crowdsale) reject(contributor common.Address, value *uint256.Int, err error) error {
	logrus.Warnf("contribution %s value %s rejected: %v", contributor, value, err)
	return err
}
