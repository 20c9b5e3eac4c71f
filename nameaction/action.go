package nameaction

import (
	"encoding/json"
	"fmt"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/state"
)

// Decode parses transaction data into an Action. Data that is not a JSON
// object with a non-empty action field is rejected.
func Decode(data []byte) (*Action, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidAction)
	}
	var act Action
	if err := json.Unmarshal(data, &act); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	if act.Action == "" {
		return nil, fmt.Errorf("%w: missing action field", ErrInvalidAction)
	}
	return &act, nil
}

// DecodePayload unmarshals the action's payload into dst.
func DecodePayload(act *Action, dst interface{}) error {
	if len(act.Payload) == 0 {
		return fmt.Errorf("%w: missing payload", ErrInvalidAction)
	}
	if err := json.Unmarshal(act.Payload, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	return nil
}

// MakeAction encodes an action envelope with the given payload.
func MakeAction(kind ActionKind, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Action{Action: kind, Payload: raw})
}

// Context carries everything a handler needs to apply an action: the
// transaction source, the set of addresses that authorized the
// transaction, the ledger timestamp and the mutable state.
type Context struct {
	From       common.Address
	Authorized []common.Address
	Time       uint64
	State      state.StateDB
}

// RequireAuth returns nil if addr authorized the current transaction.
// The transaction source always counts as authorized.
func (ctx *Context) RequireAuth(addr common.Address) error {
	if addr == ctx.From {
		return nil
	}
	for _, a := range ctx.Authorized {
		if a == addr {
			return nil
		}
	}
	return ErrNotAuthorized
}
