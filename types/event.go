// Package types contains data types shared between the contract packages
// and off-chain consumers of the event log.
package types

import (
	"encoding/json"

	"github.com/ScottyPoi/stellar-name-service/common"
)

// Event names emitted by the contract packages. Off-chain indexers key on
// these together with Topics[0] (the namehash, or the commitment hash for
// EventCommitMade).
const (
	EventTransfer        = "transfer"
	EventResolverChanged = "resolver_changed"
	EventRenew           = "renew"
	EventAddressChanged  = "address_changed"
	EventTextChanged     = "text_changed"
	EventCommitMade      = "commit_made"
	EventNameRegistered  = "name_registered"
	EventNameRenewed     = "name_renewed"
)

// Event is one entry of the append-only contract event log. Events are
// written during action execution and discarded together with all other
// state mutations when the action fails.
type Event struct {
	// Contract is the address of the emitting contract.
	Contract common.Address `json:"contract"`
	// Name identifies the event type.
	Name string `json:"name"`
	// Topics carry the indexable identifiers; Topics[0] is always the
	// namehash (or commitment hash) the event concerns.
	Topics []common.Hash `json:"topics"`
	// Data is the JSON-encoded structured payload.
	Data json.RawMessage `json:"data"`
}

// TransferData is the payload of a transfer event. From is the zero
// address for the initial ownership assignment.
type TransferData struct {
	From common.Address `json:"from"`
	To   common.Address `json:"to"`
}

// ResolverChangedData is the payload of a resolver_changed event.
type ResolverChangedData struct {
	Resolver common.Address `json:"resolver"`
}

// RenewData is the payload of a renew event.
type RenewData struct {
	ExpiresAt uint64 `json:"expires_at"`
}

// AddressChangedData is the payload of an address_changed event.
type AddressChangedData struct {
	Addr common.Address `json:"addr"`
}

// TextChangedData is the payload of a text_changed event. The value is
// included so indexers need not follow up with a state read.
type TextChangedData struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CommitMadeData is the payload of a commit_made event.
type CommitMadeData struct {
	Commitment common.Hash `json:"commitment"`
	At         uint64      `json:"at"`
	LabelLen   uint32      `json:"label_len"`
}

// NameRegisteredData is the payload of a name_registered event.
type NameRegisteredData struct {
	Namehash  common.Hash    `json:"namehash"`
	Owner     common.Address `json:"owner"`
	ExpiresAt uint64         `json:"expires_at"`
}

// NameRenewedData is the payload of a name_renewed event.
type NameRenewedData struct {
	Namehash  common.Hash `json:"namehash"`
	ExpiresAt uint64      `json:"expires_at"`
}

// NewEvent marshals payload and assembles an Event. Marshaling a payload
// struct cannot fail; an error here means a programming bug, so it panics.
func NewEvent(contract common.Address, name string, topic common.Hash, payload interface{}) *Event {
	data, err := json.Marshal(payload)
	if err != nil {
		panic("types: unmarshalable event payload: " + err.Error())
	}
	return &Event{
		Contract: contract,
		Name:     name,
		Topics:   []common.Hash{topic},
		Data:     data,
	}
}
