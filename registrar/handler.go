package registrar

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/nameaction"
)

func init() {
	nameaction.DefaultRegistry.Register(&registrarHandler{})
}

// registrarHandler implements nameaction.Handler for the registrar
// actions.
type registrarHandler struct{}

func (h *registrarHandler) CanHandle(kind nameaction.ActionKind) bool {
	switch kind {
	case nameaction.ActionRegistrarInit,
		nameaction.ActionNameCommit,
		nameaction.ActionNameRegister,
		nameaction.ActionNameRenew,
		nameaction.ActionRegistrarSetParams:
		return true
	}
	return false
}

func (h *registrarHandler) Handle(ctx *nameaction.Context, act *nameaction.Action) error {
	switch act.Action {
	case nameaction.ActionRegistrarInit:
		var p nameaction.RegistrarInitPayload
		if err := nameaction.DecodePayload(act, &p); err != nil {
			return fmt.Errorf("registrar init: %w", err)
		}
		if !common.IsHexAddress(p.Registry) {
			return fmt.Errorf("registrar init: invalid registry address: %s", p.Registry)
		}
		if !common.IsHexAddress(p.Admin) {
			return fmt.Errorf("registrar init: invalid admin address: %s", p.Admin)
		}
		return Init(ctx, common.HexToAddress(p.Registry), p.TLD, common.HexToAddress(p.Admin), p.Params)

	case nameaction.ActionNameCommit:
		var p nameaction.CommitPayload
		if err := nameaction.DecodePayload(act, &p); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return Commit(ctx, common.HexToHash(p.Commitment), p.LabelLen)

	case nameaction.ActionNameRegister:
		var p nameaction.RegisterPayload
		if err := nameaction.DecodePayload(act, &p); err != nil {
			return fmt.Errorf("register: %w", err)
		}
		if !common.IsHexAddress(p.Owner) {
			return fmt.Errorf("register: invalid owner address: %s", p.Owner)
		}
		secret, err := hex.DecodeString(strings.TrimPrefix(p.Secret, "0x"))
		if err != nil {
			return fmt.Errorf("register: invalid secret: %v", err)
		}
		var resolverAddr common.Address
		if p.Resolver != "" {
			if !common.IsHexAddress(p.Resolver) {
				return fmt.Errorf("register: invalid resolver address: %s", p.Resolver)
			}
			resolverAddr = common.HexToAddress(p.Resolver)
		}
		_, err = Register(ctx, p.Label, common.HexToAddress(p.Owner), secret, resolverAddr)
		return err

	case nameaction.ActionNameRenew:
		var p nameaction.NameRenewPayload
		if err := nameaction.DecodePayload(act, &p); err != nil {
			return fmt.Errorf("renew: %w", err)
		}
		_, err := Renew(ctx, p.Label)
		return err

	case nameaction.ActionRegistrarSetParams:
		var p nameaction.SetParamsPayload
		if err := nameaction.DecodePayload(act, &p); err != nil {
			return fmt.Errorf("set params: %w", err)
		}
		return SetParams(ctx, p.Params)
	}
	return fmt.Errorf("registrar handler: unsupported action %q", act.Action)
}
