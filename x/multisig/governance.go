package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Owner set and requirement can be modified only by the wallet itself, as
// an action of an executed transaction.

// AddOwner appends an owner to the owner list.
func (c *Controller) AddOwner(ctx quorum.Context, db quorum.KVStore, wallet, sender, owner quorum.Address) error {
	w, err := c.governed(db, wallet, sender)
	if err != nil {
		return err
	}
	if owner.IsZero() || owner.Validate() != nil {
		return ErrInvalidOwner.Newf("owner %s", owner)
	}
	if w.IsOwner(owner) {
		return ErrInvalidOwner.Newf("%s is already an owner", owner)
	}
	conf, err := loadConf(db)
	if err != nil {
		return errors.Wrap(err, "configuration")
	}
	if len(w.Owners)+1 > int(conf.MaxOwners) {
		return ErrInvalidRequirement.Newf("%d owners allowed", conf.MaxOwners)
	}
	w.Owners = append(w.Owners, owner.Clone())
	if err := c.wallets.Put(db, wallet, w); err != nil {
		return errors.Wrap(err, "save wallet")
	}
	quorum.Emit(ctx, OwnerAdditionEvent{Owner: owner})
	return nil
}

// RemoveOwner removes an owner, keeping the order of the remaining ones.
// The requirement is lowered to the number of remaining owners if needed.
func (c *Controller) RemoveOwner(ctx quorum.Context, db quorum.KVStore, wallet, sender, owner quorum.Address) error {
	w, err := c.governed(db, wallet, sender)
	if err != nil {
		return err
	}
	idx := w.ownerIndex(owner)
	if idx < 0 {
		return ErrInvalidOwner.Newf("%s is not an owner", owner)
	}
	if len(w.Owners) == 1 {
		return ErrInvalidRequirement.New("cannot remove the last owner")
	}
	w.Owners = append(w.Owners[:idx], w.Owners[idx+1:]...)
	clamped := int(w.Required) > len(w.Owners)
	if clamped {
		w.Required = uint32(len(w.Owners))
	}
	if err := c.wallets.Put(db, wallet, w); err != nil {
		return errors.Wrap(err, "save wallet")
	}
	quorum.Emit(ctx, OwnerRemovalEvent{Owner: owner})
	if clamped {
		quorum.Emit(ctx, RequirementChangeEvent{Required: w.Required})
	}
	return nil
}

// ReplaceOwner puts a new owner in place of an existing one.
func (c *Controller) ReplaceOwner(ctx quorum.Context, db quorum.KVStore, wallet, sender, owner, newOwner quorum.Address) error {
	w, err := c.governed(db, wallet, sender)
	if err != nil {
		return err
	}
	idx := w.ownerIndex(owner)
	if idx < 0 {
		return ErrInvalidOwner.Newf("%s is not an owner", owner)
	}
	if newOwner.IsZero() || newOwner.Validate() != nil {
		return ErrInvalidOwner.Newf("new owner %s", newOwner)
	}
	if w.IsOwner(newOwner) {
		return ErrInvalidOwner.Newf("%s is already an owner", newOwner)
	}
	w.Owners[idx] = newOwner.Clone()
	if err := c.wallets.Put(db, wallet, w); err != nil {
		return errors.Wrap(err, "save wallet")
	}
	quorum.Emit(ctx, OwnerRemovalEvent{Owner: owner})
	quorum.Emit(ctx, OwnerAdditionEvent{Owner: newOwner})
	return nil
}

// ChangeRequirement sets the number of confirmations a transaction needs
// to be executed. Existing confirmations are kept.
func (c *Controller) ChangeRequirement(ctx quorum.Context, db quorum.KVStore, wallet, sender quorum.Address, required uint32) error {
	w, err := c.governed(db, wallet, sender)
	if err != nil {
		return err
	}
	if required == 0 || int(required) > len(w.Owners) {
		return ErrInvalidRequirement.Newf("%d of %d owners required", required, len(w.Owners))
	}
	w.Required = required
	if err := c.wallets.Put(db, wallet, w); err != nil {
		return errors.Wrap(err, "save wallet")
	}
	quorum.Emit(ctx, RequirementChangeEvent{Required: required})
	return nil
}

// governed returns the wallet state if the sender is the wallet itself.
func (c *Controller) governed(db quorum.KVStore, wallet, sender quorum.Address) (*Wallet, error) {
	if !sender.Equals(wallet) {
		return nil, errors.Wrap(ErrOnlyWallet, sender.String())
	}
	return c.Wallet(db, wallet)
}
