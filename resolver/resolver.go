package resolver

import (
	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/nameaction"
	"github.com/ScottyPoi/stellar-name-service/params"
	"github.com/ScottyPoi/stellar-name-service/registry"
	"github.com/ScottyPoi/stellar-name-service/state"
	"github.com/ScottyPoi/stellar-name-service/types"
)

// MaxTextKeyLength bounds text record keys.
const MaxTextKeyLength = params.MaxTextKeyLength

// Init wires the resolver to its registry. One-time.
func Init(ctx *nameaction.Context, registryAddr common.Address) error {
	if registryAddr.IsZero() {
		return ErrInvalidInput
	}
	if !getRegistry(ctx.State).IsZero() {
		return ErrAlreadyInitialized
	}
	setRegistry(ctx.State, registryAddr)
	return nil
}

// Registry returns the wired registry address.
func Registry(db state.StateDB) (common.Address, error) {
	reg := getRegistry(db)
	if reg.IsZero() {
		return common.Address{}, ErrNotInitialized
	}
	return reg, nil
}

// requireOwner re-derives write authorization from the registry on every
// call instead of caching it. A NotFound from the registry means nobody
// owns the name, which for a write is the same failure as not owning it.
func requireOwner(ctx *nameaction.Context, node common.Hash) error {
	if getRegistry(ctx.State).IsZero() {
		return ErrNotInitialized
	}
	owner, err := registry.Owner(ctx.State, node)
	if err != nil {
		return ErrNotOwner
	}
	if err := ctx.RequireAuth(owner); err != nil {
		return ErrNotOwner
	}
	return nil
}

// SetAddr sets the address record of node. Owner-gated.
func SetAddr(ctx *nameaction.Context, node common.Hash, addr common.Address) error {
	if addr.IsZero() {
		return ErrInvalidInput
	}
	if err := requireOwner(ctx, node); err != nil {
		return err
	}
	setAddr(ctx.State, node, addr)
	ctx.State.AddEvent(types.NewEvent(params.ResolverAddress, types.EventAddressChanged, node,
		&types.AddressChangedData{Addr: addr}))
	return nil
}

// Addr returns the address record of node.
func Addr(db state.StateDB, node common.Hash) (common.Address, error) {
	addr := getAddr(db, node)
	if addr.IsZero() {
		return common.Address{}, ErrNotFound
	}
	return addr, nil
}

// SetText sets the text record of node under key. Owner-gated. The key
// must be 1..256 bytes; an empty value is stored as such, it does not
// delete the record.
func SetText(ctx *nameaction.Context, node common.Hash, key string, value []byte) error {
	if len(key) == 0 || len(key) > MaxTextKeyLength {
		return ErrInvalidInput
	}
	if err := requireOwner(ctx, node); err != nil {
		return err
	}
	writeText(ctx.State, textSlot(node, []byte(key)), value)
	ctx.State.AddEvent(types.NewEvent(params.ResolverAddress, types.EventTextChanged, node,
		&types.TextChangedData{Key: key, Value: string(value)}))
	return nil
}

// Text returns the text record of node under key.
func Text(db state.StateDB, node common.Hash, key string) ([]byte, error) {
	if len(key) == 0 || len(key) > MaxTextKeyLength {
		return nil, ErrInvalidInput
	}
	base := textSlot(node, []byte(key))
	if !readBool(db, textMetaSlot(base, "exists")) {
		return nil, ErrNotFound
	}
	return readText(db, base), nil
}
