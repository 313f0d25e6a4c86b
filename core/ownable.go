package core

import (
	"sync"

	"rose-token-crowdsale/core/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

// Authority answers whether a caller holds the admin capability. The
// crowdsale checks it as an explicit precondition on every admin-gated
// operation, never as an ambient assumption.
type Authority interface {
	IsOwner(caller common.Address) bool
}

// Owned is the single-owner Authority.
type Owned struct {
	mu      sync.Mutex
	owner   common.Address
	journal []*model.Record
}

func NewOwned(owner common.Address) *Owned {
	return &Owned{owner: owner}
}

func (o *Owned) IsOwner(caller common.Address) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return caller == o.owner
}

// TransferOwnership hands the capability to next. Only the current owner
// may call it, and the zero address is not a valid owner.
func (o *Owned) TransferOwnership(caller, next common.Address) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if caller != o.owner {
		return model.ErrNotAuthorized
	}
	if next == (common.Address{}) {
		return model.ErrInvalidRecipient
	}

	previous := o.owner
	o.owner = next
	o.journal = append(o.journal, model.NewOwnershipTransferredRecord(previous, next))
	logrus.Infof("ownership transferred %s -> %s", previous, next)
	return nil
}

func (o *Owned) Journal() []*model.Record {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*model.Record, len(o.journal))
	copy(out, o.journal)
	return out
}
