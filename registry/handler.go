package registry

import (
	"fmt"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/nameaction"
)

func init() {
	nameaction.DefaultRegistry.Register(&registryHandler{})
}

// registryHandler implements nameaction.Handler for the registry actions.
type registryHandler struct{}

func (h *registryHandler) CanHandle(kind nameaction.ActionKind) bool {
	switch kind {
	case nameaction.ActionRegistrySetOwner,
		nameaction.ActionRegistryTransfer,
		nameaction.ActionRegistrySetResolver,
		nameaction.ActionRegistryRenew:
		return true
	}
	return false
}

func (h *registryHandler) Handle(ctx *nameaction.Context, act *nameaction.Action) error {
	switch act.Action {
	case nameaction.ActionRegistrySetOwner:
		var p nameaction.SetOwnerPayload
		if err := nameaction.DecodePayload(act, &p); err != nil {
			return fmt.Errorf("set owner: %w", err)
		}
		if !common.IsHexAddress(p.NewOwner) {
			return fmt.Errorf("set owner: invalid address: %s", p.NewOwner)
		}
		return SetOwner(ctx, common.HexToHash(p.Namehash), common.HexToAddress(p.NewOwner))

	case nameaction.ActionRegistryTransfer:
		var p nameaction.TransferPayload
		if err := nameaction.DecodePayload(act, &p); err != nil {
			return fmt.Errorf("transfer: %w", err)
		}
		if !common.IsHexAddress(p.To) {
			return fmt.Errorf("transfer: invalid address: %s", p.To)
		}
		return Transfer(ctx, common.HexToHash(p.Namehash), common.HexToAddress(p.To))

	case nameaction.ActionRegistrySetResolver:
		var p nameaction.SetResolverPayload
		if err := nameaction.DecodePayload(act, &p); err != nil {
			return fmt.Errorf("set resolver: %w", err)
		}
		if !common.IsHexAddress(p.Resolver) {
			return fmt.Errorf("set resolver: invalid address: %s", p.Resolver)
		}
		return SetResolver(ctx, common.HexToHash(p.Namehash), common.HexToAddress(p.Resolver))

	case nameaction.ActionRegistryRenew:
		var p nameaction.RegistryRenewPayload
		if err := nameaction.DecodePayload(act, &p); err != nil {
			return fmt.Errorf("renew: %w", err)
		}
		_, err := Renew(ctx, common.HexToHash(p.Namehash))
		return err
	}
	return fmt.Errorf("registry handler: unsupported action %q", act.Action)
}
