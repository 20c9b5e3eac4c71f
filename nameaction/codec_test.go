package nameaction

import (
	"errors"
	"testing"

	"github.com/ScottyPoi/stellar-name-service/common"
)

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{},
		[]byte("not json"),
		[]byte(`{"payload":{}}`),
		[]byte(`{"action":""}`),
	} {
		if _, err := Decode(data); !errors.Is(err, ErrInvalidAction) {
			t.Errorf("Decode(%q): err = %v, want ErrInvalidAction", data, err)
		}
	}
}

func TestActionRoundTrip(t *testing.T) {
	data, err := MakeAction(ActionNameCommit, &CommitPayload{
		Commitment: common.Hash{0xaa}.Hex(),
		LabelLen:   5,
	})
	if err != nil {
		t.Fatalf("MakeAction: %v", err)
	}
	act, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if act.Action != ActionNameCommit {
		t.Fatalf("action = %q, want %q", act.Action, ActionNameCommit)
	}
	var p CommitPayload
	if err := DecodePayload(act, &p); err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if p.LabelLen != 5 {
		t.Fatalf("label_len = %d, want 5", p.LabelLen)
	}
}

func TestDecodePayloadMissing(t *testing.T) {
	act := &Action{Action: ActionNameRenew}
	var p NameRenewPayload
	if err := DecodePayload(act, &p); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("err = %v, want ErrInvalidAction", err)
	}
}

func TestRequireAuth(t *testing.T) {
	from := common.BytesToAddress([]byte{1})
	other := common.BytesToAddress([]byte{2})
	third := common.BytesToAddress([]byte{3})

	ctx := &Context{From: from, Authorized: []common.Address{other}}
	if err := ctx.RequireAuth(from); err != nil {
		t.Fatalf("from: %v", err)
	}
	if err := ctx.RequireAuth(other); err != nil {
		t.Fatalf("authorized: %v", err)
	}
	if err := ctx.RequireAuth(third); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("third: err = %v, want ErrNotAuthorized", err)
	}
}
