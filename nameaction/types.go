// Package nameaction implements the name service action protocol.
//
// An action is a JSON envelope {action, payload} carried in a host
// transaction. The executor never interprets payloads itself; it snapshots
// the state, dispatches to the contract package registered for the action
// kind, and reverts the snapshot if the handler fails, so a failed action
// leaves no storage writes and no events behind.
package nameaction

import (
	"encoding/json"
	"errors"

	"github.com/ScottyPoi/stellar-name-service/params"
)

// ActionKind identifies the type of action.
type ActionKind string

const (
	// Registry operations
	ActionRegistrySetOwner    ActionKind = "REGISTRY_SET_OWNER"
	ActionRegistryTransfer    ActionKind = "REGISTRY_TRANSFER"
	ActionRegistrySetResolver ActionKind = "REGISTRY_SET_RESOLVER"
	ActionRegistryRenew       ActionKind = "REGISTRY_RENEW"

	// Resolver operations
	ActionResolverInit    ActionKind = "RESOLVER_INIT"
	ActionResolverSetAddr ActionKind = "RESOLVER_SET_ADDR"
	ActionResolverSetText ActionKind = "RESOLVER_SET_TEXT"

	// Registrar operations
	ActionRegistrarInit      ActionKind = "REGISTRAR_INIT"
	ActionNameCommit         ActionKind = "NAME_COMMIT"
	ActionNameRegister       ActionKind = "NAME_REGISTER"
	ActionNameRenew          ActionKind = "NAME_RENEW"
	ActionRegistrarSetParams ActionKind = "REGISTRAR_SET_PARAMS"
)

// Action is the top-level envelope stored in a transaction's data field.
type Action struct {
	Action  ActionKind      `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrInvalidAction is returned when transaction data cannot be decoded as
// an Action.
var ErrInvalidAction = errors.New("nameaction: invalid action payload")

// ErrNotAuthorized is the failure of the host's authorization primitive:
// the required address did not authorize the transaction.
var ErrNotAuthorized = errors.New("nameaction: required address did not authorize call")

// SetOwnerPayload is the payload for REGISTRY_SET_OWNER.
type SetOwnerPayload struct {
	Namehash string `json:"namehash"`
	NewOwner string `json:"new_owner"`
}

// TransferPayload is the payload for REGISTRY_TRANSFER.
type TransferPayload struct {
	Namehash string `json:"namehash"`
	To       string `json:"to"`
}

// SetResolverPayload is the payload for REGISTRY_SET_RESOLVER.
type SetResolverPayload struct {
	Namehash string `json:"namehash"`
	Resolver string `json:"resolver"`
}

// RegistryRenewPayload is the payload for REGISTRY_RENEW.
type RegistryRenewPayload struct {
	Namehash string `json:"namehash"`
}

// ResolverInitPayload is the payload for RESOLVER_INIT.
type ResolverInitPayload struct {
	Registry string `json:"registry"`
}

// SetAddrPayload is the payload for RESOLVER_SET_ADDR.
type SetAddrPayload struct {
	Namehash string `json:"namehash"`
	Addr     string `json:"addr"`
}

// SetTextPayload is the payload for RESOLVER_SET_TEXT.
type SetTextPayload struct {
	Namehash string `json:"namehash"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

// RegistrarInitPayload is the payload for REGISTRAR_INIT. A nil Params
// applies params.DefaultRegistrarParams.
type RegistrarInitPayload struct {
	Registry string                  `json:"registry"`
	TLD      string                  `json:"tld"`
	Admin    string                  `json:"admin"`
	Params   *params.RegistrarParams `json:"params,omitempty"`
}

// CommitPayload is the payload for NAME_COMMIT.
type CommitPayload struct {
	Commitment string `json:"commitment"`
	LabelLen   uint32 `json:"label_len"`
}

// RegisterPayload is the payload for NAME_REGISTER. Secret is hex encoded;
// Resolver is optional.
type RegisterPayload struct {
	Label    string `json:"label"`
	Owner    string `json:"owner"`
	Secret   string `json:"secret"`
	Resolver string `json:"resolver,omitempty"`
}

// NameRenewPayload is the payload for NAME_RENEW.
type NameRenewPayload struct {
	Label string `json:"label"`
}

// SetParamsPayload is the payload for REGISTRAR_SET_PARAMS.
type SetParamsPayload struct {
	Params params.RegistrarParams `json:"params"`
}
