package resolver

import (
	"fmt"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/nameaction"
)

func init() {
	nameaction.DefaultRegistry.Register(&resolverHandler{})
}

// resolverHandler implements nameaction.Handler for the resolver actions.
type resolverHandler struct{}

func (h *resolverHandler) CanHandle(kind nameaction.ActionKind) bool {
	switch kind {
	case nameaction.ActionResolverInit,
		nameaction.ActionResolverSetAddr,
		nameaction.ActionResolverSetText:
		return true
	}
	return false
}

func (h *resolverHandler) Handle(ctx *nameaction.Context, act *nameaction.Action) error {
	switch act.Action {
	case nameaction.ActionResolverInit:
		var p nameaction.ResolverInitPayload
		if err := nameaction.DecodePayload(act, &p); err != nil {
			return fmt.Errorf("resolver init: %w", err)
		}
		if !common.IsHexAddress(p.Registry) {
			return fmt.Errorf("resolver init: invalid address: %s", p.Registry)
		}
		return Init(ctx, common.HexToAddress(p.Registry))

	case nameaction.ActionResolverSetAddr:
		var p nameaction.SetAddrPayload
		if err := nameaction.DecodePayload(act, &p); err != nil {
			return fmt.Errorf("set addr: %w", err)
		}
		if !common.IsHexAddress(p.Addr) {
			return fmt.Errorf("set addr: invalid address: %s", p.Addr)
		}
		return SetAddr(ctx, common.HexToHash(p.Namehash), common.HexToAddress(p.Addr))

	case nameaction.ActionResolverSetText:
		var p nameaction.SetTextPayload
		if err := nameaction.DecodePayload(act, &p); err != nil {
			return fmt.Errorf("set text: %w", err)
		}
		return SetText(ctx, common.HexToHash(p.Namehash), p.Key, []byte(p.Value))
	}
	return fmt.Errorf("resolver handler: unsupported action %q", act.Action)
}
