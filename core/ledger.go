package core

import (
	"sync"

	"rose-token-crowdsale/core/model"
	"rose-token-crowdsale/core/safemath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

// Ledger keeps the account balances, the allowance grid and the total
// supply, and appends an audit record for every successful mutation.
// Every operation validates fully before touching state, so a failure is
// never partially visible. All state hangs off the struct; there are no
// package-level maps.
type Ledger struct {
	mu          sync.Mutex
	balances    map[common.Address]*uint256.Int
	allowances  map[common.Address]map[common.Address]*uint256.Int
	totalSupply *uint256.Int
	journal     []*model.Record
}

func NewLedger() *Ledger {
	return &Ledger{
		balances:    make(map[common.Address]*uint256.Int),
		allowances:  make(map[common.Address]map[common.Address]*uint256.Int),
		totalSupply: new(uint256.Int),
	}
}

func (l *Ledger) TotalSupply() *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalSupply.Clone()
}

func (l *Ledger) BalanceOf(account common.Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceLocked(account).Clone()
}

func (l *Ledger) Allowance(owner, spender common.Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allowanceLocked(owner, spender).Clone()
}

// Journal returns a copy of the audit records emitted so far. The records
// are for external observers only; nothing inside the ledger reads them.
func (l *Ledger) Journal() []*model.Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*model.Record, len(l.journal))
	copy(out, l.journal)
	return out
}

// Transfer moves value from one account to another.
func (l *Ledger) Transfer(from, to common.Address, value *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transferLocked(from, to, value)
}

// TransferFrom moves value out of from's balance on behalf of spender,
// consuming spender's allowance atomically with the balance move.
func (l *Ledger) TransferFrom(spender, from, to common.Address, value *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	allowed := l.allowanceLocked(from, spender)
	if value.Gt(allowed) {
		return model.ErrInsufficientAllowance
	}
	remaining, err := safemath.Sub(allowed, value)
	if err != nil {
		return err
	}
	if err := l.transferLocked(from, to, value); err != nil {
		return err
	}
	l.setAllowanceLocked(from, spender, remaining)
	return nil
}

// Approve overwrites the allowance unconditionally. A spender racing the
// overwrite can spend both the old and the new limit; callers changing a
// non-zero allowance non-atomically should zero it first.
func (l *Ledger) Approve(owner, spender common.Address, value *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.setAllowanceLocked(owner, spender, value.Clone())
	l.journal = append(l.journal, model.NewApprovalRecord(owner, spender, value))
	logrus.Infof("approve %s spender %s value %s", owner, spender, value)
	return nil
}

// IncreaseApproval raises the allowance by addend.
func (l *Ledger) IncreaseApproval(owner, spender common.Address, addend *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := safemath.Add(l.allowanceLocked(owner, spender), addend)
	if err != nil {
		return err
	}
	l.setAllowanceLocked(owner, spender, next)
	l.journal = append(l.journal, model.NewApprovalRecord(owner, spender, next))
	return nil
}

// DecreaseApproval lowers the allowance by subtrahend, flooring at zero
// when the subtrahend exceeds the current limit. The clamp is intentional
// and distinct from the strict underflow policy on balances.
func (l *Ledger) DecreaseApproval(owner, spender common.Address, subtrahend *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.allowanceLocked(owner, spender)
	next := new(uint256.Int)
	if subtrahend.Lt(current) {
		var err error
		next, err = safemath.Sub(current, subtrahend)
		if err != nil {
			return err
		}
	}
	l.setAllowanceLocked(owner, spender, next)
	l.journal = append(l.journal, model.NewApprovalRecord(owner, spender, next))
	return nil
}

// Burn destroys value from holder's balance and shrinks the total supply
// by the same amount. Burn is the only way supply changes after genesis.
func (l *Ledger) Burn(holder common.Address, value *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balanceLocked(holder)
	if value.Gt(balance) {
		return model.ErrInsufficientBalance
	}
	debited, err := safemath.Sub(balance, value)
	if err != nil {
		return err
	}
	supply, err := safemath.Sub(l.totalSupply, value)
	if err != nil {
		return err
	}

	l.balances[holder] = debited
	l.totalSupply = supply
	l.journal = append(l.journal,
		model.NewBurnRecord(holder, value),
		model.NewTransferRecord(holder, common.Address{}, value))
	logrus.Infof("burn %s value %s, supply now %s", holder, value, supply)
	return nil
}

func (l *Ledger) transferLocked(from, to common.Address, value *uint256.Int) error {
	if to == (common.Address{}) {
		return model.ErrInvalidRecipient
	}
	fromBalance := l.balanceLocked(from)
	if value.Gt(fromBalance) {
		logrus.Warnf("transfer %s -> %s value %s: insufficient balance %s", from, to, value, fromBalance)
		return model.ErrInsufficientBalance
	}
	if from == to {
		// self transfer moves nothing
		l.journal = append(l.journal, model.NewTransferRecord(from, to, value))
		return nil
	}
	debited, err := safemath.Sub(fromBalance, value)
	if err != nil {
		return err
	}
	credited, err := safemath.Add(l.balanceLocked(to), value)
	if err != nil {
		return err
	}

	l.balances[from] = debited
	l.balances[to] = credited
	l.journal = append(l.journal, model.NewTransferRecord(from, to, value))
	logrus.Infof("transfer %s -> %s value %s", from, to, value)
	return nil
}

// genesisCredit mints the initial allocation. Only NewToken calls this;
// nothing else may grow the supply.
func (l *Ledger) genesisCredit(to common.Address, value *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	credited, err := safemath.Add(l.balanceLocked(to), value)
	if err != nil {
		return err
	}
	supply, err := safemath.Add(l.totalSupply, value)
	if err != nil {
		return err
	}

	l.balances[to] = credited
	l.totalSupply = supply
	l.journal = append(l.journal, model.NewTransferRecord(common.Address{}, to, value))
	return nil
}

func (l *Ledger) balanceLocked(account common.Address) *uint256.Int {
	if balance, ok := l.balances[account]; ok {
		return balance
	}
	return new(uint256.Int)
}

func (l *Ledger) allowanceLocked(owner, spender common.Address) *uint256.Int {
	if granted, ok := l.allowances[owner]; ok {
		if limit, ok := granted[spender]; ok {
			return limit
		}
	}
	return new(uint256.Int)
}

func (l *Ledger) setAllowanceLocked(owner, spender common.Address, value *uint256.Int) {
	if _, ok := l.allowances[owner]; !ok {
		l.allowances[owner] = make(map[common.Address]*uint256.Int)
	}
	l.allowances[owner][spender] = value
}
