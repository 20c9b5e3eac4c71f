package registry

import (
	"math"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/nameaction"
	"github.com/ScottyPoi/stellar-name-service/params"
	"github.com/ScottyPoi/stellar-name-service/state"
	"github.com/ScottyPoi/stellar-name-service/types"
)

// SetOwner assigns ownership of node to newOwner. An unregistered node is
// claimed by proving authorization from newOwner itself; there is no prior
// owner to ask. A registered node requires authorization from the current
// owner. Emits a transfer event; From is the zero address on first claim.
func SetOwner(ctx *nameaction.Context, node common.Hash, newOwner common.Address) error {
	if newOwner.IsZero() {
		return ErrZeroAddress
	}
	db := ctx.State
	prev := getOwner(db, node)
	required := prev
	if prev.IsZero() {
		required = newOwner
	}
	if err := ctx.RequireAuth(required); err != nil {
		return err
	}
	setOwner(db, node, newOwner)
	db.AddEvent(types.NewEvent(params.RegistryAddress, types.EventTransfer, node,
		&types.TransferData{From: prev, To: newOwner}))
	return nil
}

// Claim assigns ownership of node proving authorization from newOwner
// only, regardless of any current owner. This is the registrar's
// registration entry point: a name past its expiry and grace period
// changes hands without the lapsed owner's signature, and the registrar
// has already enforced that availability policy before calling here.
// Emits the same transfer event as SetOwner.
func Claim(ctx *nameaction.Context, node common.Hash, newOwner common.Address) error {
	if newOwner.IsZero() {
		return ErrZeroAddress
	}
	if err := ctx.RequireAuth(newOwner); err != nil {
		return err
	}
	prev := getOwner(ctx.State, node)
	setOwner(ctx.State, node, newOwner)
	ctx.State.AddEvent(types.NewEvent(params.RegistryAddress, types.EventTransfer, node,
		&types.TransferData{From: prev, To: newOwner}))
	return nil
}

// Owner returns the current owner of node.
func Owner(db state.StateDB, node common.Hash) (common.Address, error) {
	owner := getOwner(db, node)
	if owner.IsZero() {
		return common.Address{}, ErrNotFound
	}
	return owner, nil
}

// Transfer reassigns ownership of an already registered node. Unlike
// SetOwner it has no bootstrap arm: an unregistered node cannot be
// transferred, and a name cannot be released by transferring to the zero
// address.
func Transfer(ctx *nameaction.Context, node common.Hash, to common.Address) error {
	if to.IsZero() {
		return ErrZeroAddress
	}
	prev := getOwner(ctx.State, node)
	if prev.IsZero() {
		return ErrNotFound
	}
	if err := ctx.RequireAuth(prev); err != nil {
		return err
	}
	setOwner(ctx.State, node, to)
	ctx.State.AddEvent(types.NewEvent(params.RegistryAddress, types.EventTransfer, node,
		&types.TransferData{From: prev, To: to}))
	return nil
}

// SetResolver points node at a resolver contract. Requires current-owner
// authorization.
func SetResolver(ctx *nameaction.Context, node common.Hash, resolver common.Address) error {
	if resolver.IsZero() {
		return ErrZeroAddress
	}
	owner := getOwner(ctx.State, node)
	if owner.IsZero() {
		return ErrNotFound
	}
	if err := ctx.RequireAuth(owner); err != nil {
		return err
	}
	setResolver(ctx.State, node, resolver)
	ctx.State.AddEvent(types.NewEvent(params.RegistryAddress, types.EventResolverChanged, node,
		&types.ResolverChangedData{Resolver: resolver}))
	return nil
}

// Resolver returns the resolver address of node.
func Resolver(db state.StateDB, node common.Hash) (common.Address, error) {
	resolver := getResolver(db, node)
	if resolver.IsZero() {
		return common.Address{}, ErrNotFound
	}
	return resolver, nil
}

// Renew extends the expiry of node by the fixed registry renewal interval.
// Requires current-owner authorization. Returns the new expiry.
func Renew(ctx *nameaction.Context, node common.Hash) (uint64, error) {
	return RenewBy(ctx, node, params.RenewExtensionSeconds)
}

// RenewBy extends the expiry of node by interval seconds starting from
// whichever of the stored expiry and the ledger time is later. Anchoring
// at max(expiry, now) keeps a long-expired name from renewing into the
// past and keeps a live name from stacking renewals faster than real
// time: every renewal lands at least one full interval beyond now.
func RenewBy(ctx *nameaction.Context, node common.Hash, interval uint64) (uint64, error) {
	db := ctx.State
	owner := getOwner(db, node)
	if owner.IsZero() {
		return 0, ErrNotFound
	}
	if err := ctx.RequireAuth(owner); err != nil {
		return 0, err
	}
	base := getExpires(db, node)
	if ctx.Time > base {
		base = ctx.Time
	}
	if interval > math.MaxUint64-base {
		return 0, ErrOverflow
	}
	newExpiry := base + interval
	setExpires(db, node, newExpiry)
	db.AddEvent(types.NewEvent(params.RegistryAddress, types.EventRenew, node,
		&types.RenewData{ExpiresAt: newExpiry}))
	return newExpiry, nil
}

// Expires returns the expiry timestamp of node. A node that was claimed
// but never had an expiry established reports ErrNotFound; valid
// expiries are always nonzero, so the zero slot means unset.
func Expires(db state.StateDB, node common.Hash) (uint64, error) {
	if getOwner(db, node).IsZero() {
		return 0, ErrNotFound
	}
	at := getExpires(db, node)
	if at == 0 {
		return 0, ErrNotFound
	}
	return at, nil
}

// SetExpires writes an absolute expiry for node without the renewal
// formula. The registrar uses it when a registration establishes the
// first expiry; there is no prior value to take the max against. Callers
// are expected to have verified authorization already.
func SetExpires(db state.StateDB, node common.Hash, at uint64) {
	setExpires(db, node, at)
}
