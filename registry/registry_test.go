package registry

import (
	"errors"
	"math"
	"testing"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/nameaction"
	"github.com/ScottyPoi/stellar-name-service/params"
	"github.com/ScottyPoi/stellar-name-service/state"
	"github.com/ScottyPoi/stellar-name-service/types"
)

var (
	testNode  = common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111")
	testAlice = common.HexToAddress("0xe8b0087eec10090b15f4fc4bc96aaa54e2d44c299564da76e1cd3184a2386b8d")
	testBob   = common.HexToAddress("0xd0c8d1bb01b01528cd7fa3145d46ac553a974ef992a08eeef0a05990802f01f6")
	testRes   = common.HexToAddress("0xbb0b8ebfca3f41857d18ed477357589f8e367c2c31f51242fb77b350a11830f3")
)

func newTestContext(from common.Address, now uint64) *nameaction.Context {
	return &nameaction.Context{From: from, Time: now, State: state.New(nil)}
}

func TestSetOwnerBootstrap(t *testing.T) {
	ctx := newTestContext(testAlice, 100)
	if err := SetOwner(ctx, testNode, testAlice); err != nil {
		t.Fatalf("bootstrap set owner: %v", err)
	}
	owner, err := Owner(ctx.State, testNode)
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	if owner != testAlice {
		t.Fatalf("owner = %v, want %v", owner, testAlice)
	}
}

func TestSetOwnerBootstrapRequiresNewOwnerAuth(t *testing.T) {
	// Bob tries to assign an unregistered name to Alice without her
	// authorization.
	ctx := newTestContext(testBob, 100)
	err := SetOwner(ctx, testNode, testAlice)
	if !errors.Is(err, nameaction.ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
	if _, err := Owner(ctx.State, testNode); !errors.Is(err, ErrNotFound) {
		t.Fatalf("owner after failed claim: %v, want ErrNotFound", err)
	}

	// With Alice in the authorizer set it goes through.
	ctx.Authorized = []common.Address{testAlice}
	if err := SetOwner(ctx, testNode, testAlice); err != nil {
		t.Fatalf("authorized claim: %v", err)
	}
}

func TestSetOwnerRejectsNonOwner(t *testing.T) {
	ctx := newTestContext(testAlice, 100)
	if err := SetOwner(ctx, testNode, testAlice); err != nil {
		t.Fatalf("claim: %v", err)
	}
	ctx2 := newTestContext(testBob, 100)
	ctx2.State = ctx.State
	if err := SetOwner(ctx2, testNode, testBob); !errors.Is(err, nameaction.ErrNotAuthorized) {
		t.Fatalf("takeover err = %v, want ErrNotAuthorized", err)
	}
}

func TestSetOwnerZeroAddress(t *testing.T) {
	ctx := newTestContext(testAlice, 100)
	if err := SetOwner(ctx, testNode, common.Address{}); !errors.Is(err, ErrZeroAddress) {
		t.Fatalf("err = %v, want ErrZeroAddress", err)
	}
}

func TestTransfer(t *testing.T) {
	ctx := newTestContext(testAlice, 100)
	if err := SetOwner(ctx, testNode, testAlice); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := Transfer(ctx, testNode, testBob); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	owner, _ := Owner(ctx.State, testNode)
	if owner != testBob {
		t.Fatalf("owner = %v, want %v", owner, testBob)
	}

	// Alice lost ownership with the transfer.
	if err := Transfer(ctx, testNode, testAlice); !errors.Is(err, nameaction.ErrNotAuthorized) {
		t.Fatalf("transfer back err = %v, want ErrNotAuthorized", err)
	}
}

func TestTransferUnregistered(t *testing.T) {
	ctx := newTestContext(testAlice, 100)
	if err := Transfer(ctx, testNode, testAlice); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestTransferZeroAddress(t *testing.T) {
	ctx := newTestContext(testAlice, 100)
	if err := SetOwner(ctx, testNode, testAlice); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := Transfer(ctx, testNode, common.Address{}); !errors.Is(err, ErrZeroAddress) {
		t.Fatalf("err = %v, want ErrZeroAddress", err)
	}
}

func TestSetResolver(t *testing.T) {
	ctx := newTestContext(testAlice, 100)
	if _, err := Resolver(ctx.State, testNode); !errors.Is(err, ErrNotFound) {
		t.Fatalf("resolver pre-claim err = %v, want ErrNotFound", err)
	}
	if err := SetResolver(ctx, testNode, testRes); !errors.Is(err, ErrNotFound) {
		t.Fatalf("set resolver pre-claim err = %v, want ErrNotFound", err)
	}
	if err := SetOwner(ctx, testNode, testAlice); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := SetResolver(ctx, testNode, common.Address{}); !errors.Is(err, ErrZeroAddress) {
		t.Fatalf("zero resolver err = %v, want ErrZeroAddress", err)
	}
	if err := SetResolver(ctx, testNode, testRes); err != nil {
		t.Fatalf("set resolver: %v", err)
	}
	resolver, err := Resolver(ctx.State, testNode)
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	if resolver != testRes {
		t.Fatalf("resolver = %v, want %v", resolver, testRes)
	}
}

func TestRenewFormula(t *testing.T) {
	ctx := newTestContext(testAlice, 1000)
	if err := SetOwner(ctx, testNode, testAlice); err != nil {
		t.Fatalf("claim: %v", err)
	}

	// First renewal: no stored expiry, anchored at now.
	exp, err := Renew(ctx, testNode)
	if err != nil {
		t.Fatalf("renew: %v", err)
	}
	if want := uint64(1000) + params.RenewExtensionSeconds; exp != want {
		t.Fatalf("expiry = %d, want %d", exp, want)
	}

	// Second renewal while the expiry is still in the future: anchored at
	// the stored expiry, not at now.
	ctx.Time = 2000
	exp2, err := Renew(ctx, testNode)
	if err != nil {
		t.Fatalf("renew: %v", err)
	}
	if want := exp + params.RenewExtensionSeconds; exp2 != want {
		t.Fatalf("stacked expiry = %d, want %d", exp2, want)
	}

	// Renewal long after expiry: anchored at now again, so the result is
	// a full interval beyond the call time.
	ctx.Time = exp2 + 10_000_000
	exp3, err := Renew(ctx, testNode)
	if err != nil {
		t.Fatalf("renew: %v", err)
	}
	if want := ctx.Time + params.RenewExtensionSeconds; exp3 != want {
		t.Fatalf("lapsed expiry = %d, want %d", exp3, want)
	}
}

func TestRenewMonotonic(t *testing.T) {
	ctx := newTestContext(testAlice, 1)
	if err := SetOwner(ctx, testNode, testAlice); err != nil {
		t.Fatalf("claim: %v", err)
	}
	var last uint64
	for _, now := range []uint64{1, 1, 50, 1_000_000, 40_000_000, 100_000_000} {
		ctx.Time = now
		exp, err := Renew(ctx, testNode)
		if err != nil {
			t.Fatalf("renew at %d: %v", now, err)
		}
		if exp < last {
			t.Fatalf("expiry decreased: %d -> %d", last, exp)
		}
		if exp < now+params.RenewExtensionSeconds {
			t.Fatalf("expiry %d < now %d + interval", exp, now)
		}
		last = exp
	}
}

func TestRenewOverflow(t *testing.T) {
	ctx := newTestContext(testAlice, math.MaxUint64-10)
	if err := SetOwner(ctx, testNode, testAlice); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if _, err := Renew(ctx, testNode); !errors.Is(err, ErrOverflow) {
		t.Fatalf("err = %v, want ErrOverflow", err)
	}
}

func TestRenewAuth(t *testing.T) {
	ctx := newTestContext(testAlice, 100)
	if err := SetOwner(ctx, testNode, testAlice); err != nil {
		t.Fatalf("claim: %v", err)
	}
	ctx2 := newTestContext(testBob, 100)
	ctx2.State = ctx.State
	if _, err := Renew(ctx2, testNode); !errors.Is(err, nameaction.ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
	if _, err := Renew(ctx2, common.HexToHash("0x02")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unregistered err = %v, want ErrNotFound", err)
	}
}

func TestExpiresUnregistered(t *testing.T) {
	db := state.New(nil)
	if _, err := Expires(db, testNode); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestExpiresUnsetOnOwnedNode(t *testing.T) {
	ctx := newTestContext(testAlice, 100)
	if err := SetOwner(ctx, testNode, testAlice); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if got, err := Expires(ctx.State, testNode); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got (%d, %v), want ErrNotFound", got, err)
	}
	if _, err := Renew(ctx, testNode); err != nil {
		t.Fatalf("renew: %v", err)
	}
	got, err := Expires(ctx.State, testNode)
	if err != nil {
		t.Fatalf("expires after renew: %v", err)
	}
	if want := ctx.Time + params.RenewExtensionSeconds; got != want {
		t.Fatalf("expiry = %d, want %d", got, want)
	}
}

func TestEvents(t *testing.T) {
	ctx := newTestContext(testAlice, 100)
	db := ctx.State.(*state.DB)
	if err := SetOwner(ctx, testNode, testAlice); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := SetResolver(ctx, testNode, testRes); err != nil {
		t.Fatalf("set resolver: %v", err)
	}
	if _, err := Renew(ctx, testNode); err != nil {
		t.Fatalf("renew: %v", err)
	}
	events := db.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	names := []string{types.EventTransfer, types.EventResolverChanged, types.EventRenew}
	for i, ev := range events {
		if ev.Name != names[i] {
			t.Errorf("event %d = %q, want %q", i, ev.Name, names[i])
		}
		if ev.Contract != params.RegistryAddress {
			t.Errorf("event %d contract = %v", i, ev.Contract)
		}
		if len(ev.Topics) != 1 || ev.Topics[0] != testNode {
			t.Errorf("event %d topics = %v", i, ev.Topics)
		}
	}
}

func TestHandlerDispatch(t *testing.T) {
	ctx := newTestContext(testAlice, 100)
	data, err := nameaction.MakeAction(nameaction.ActionRegistrySetOwner, &nameaction.SetOwnerPayload{
		Namehash: testNode.Hex(),
		NewOwner: testAlice.Hex(),
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := nameaction.Execute(ctx, data); err != nil {
		t.Fatalf("execute: %v", err)
	}
	owner, err := Owner(ctx.State, testNode)
	if err != nil || owner != testAlice {
		t.Fatalf("owner = %v, %v", owner, err)
	}
}

func TestHandlerRevertsFailedAction(t *testing.T) {
	ctx := newTestContext(testAlice, 100)
	db := ctx.State.(*state.DB)
	data, err := nameaction.MakeAction(nameaction.ActionRegistryTransfer, &nameaction.TransferPayload{
		Namehash: testNode.Hex(),
		To:       testBob.Hex(),
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := nameaction.Execute(ctx, data); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if got := len(db.Events()); got != 0 {
		t.Fatalf("failed action left %d events", got)
	}
}
