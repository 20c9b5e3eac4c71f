package registrar

import (
	"math"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/crypto"
	"github.com/ScottyPoi/stellar-name-service/nameaction"
	"github.com/ScottyPoi/stellar-name-service/namehash"
	"github.com/ScottyPoi/stellar-name-service/params"
	"github.com/ScottyPoi/stellar-name-service/registry"
	"github.com/ScottyPoi/stellar-name-service/resolver"
	"github.com/ScottyPoi/stellar-name-service/state"
	"github.com/ScottyPoi/stellar-name-service/types"
)

// MakeCommitment computes the commitment hash binding a pending
// registration to (label, owner, secret). The owner enters in its
// canonical 32-byte form, not a printable encoding, so the commitment is
// tied to the exact on-chain address.
func MakeCommitment(label []byte, owner common.Address, secret []byte) common.Hash {
	return crypto.Sha256Hash(label, owner.Bytes(), secret)
}

// Init configures the registrar for one top-level namespace. One-time.
// A nil policy applies params.DefaultRegistrarParams.
func Init(ctx *nameaction.Context, registryAddr common.Address, tld string, admin common.Address, policy *params.RegistrarParams) error {
	if !getRegistryAddr(ctx.State).IsZero() {
		return ErrAlreadyInitialized
	}
	if registryAddr.IsZero() || admin.IsZero() {
		return ErrInvalidParams
	}
	// The TLD is itself a label and obeys the label rules.
	if _, err := namehash.Hash([][]byte{[]byte(tld)}); err != nil {
		return ErrInvalidLabel
	}
	p := params.DefaultRegistrarParams()
	if policy != nil {
		p = *policy
	}
	if !p.Valid() {
		return ErrInvalidParams
	}
	setRegistryAddr(ctx.State, registryAddr)
	setAdmin(ctx.State, admin)
	setTLD(ctx.State, []byte(tld))
	setParams(ctx.State, p)
	return nil
}

// Commit stores a registration commitment. The label stays hidden; only
// its claimed length is checked against the policy bounds here, the full
// preimage is proven at Register time.
func Commit(ctx *nameaction.Context, commitment common.Hash, labelLen uint32) error {
	db := ctx.State
	if getRegistryAddr(db).IsZero() {
		return ErrNotInitialized
	}
	p := getParams(db)
	if labelLen < p.MinLabelLen || labelLen > p.MaxLabelLen {
		return ErrInvalidLabel
	}
	if _, ok := getCommitment(db, commitment); ok {
		return ErrCommitmentExists
	}
	putCommitment(db, commitment, Commitment{CreatedAt: ctx.Time, LabelLen: labelLen})
	db.AddEvent(types.NewEvent(params.RegistrarAddress, types.EventCommitMade, commitment,
		&types.CommitMadeData{Commitment: commitment, At: ctx.Time, LabelLen: labelLen}))
	return nil
}

// Register reveals a commitment preimage and completes the registration.
// On success the registry owns the bookkeeping: ownership goes to owner,
// the expiry is set one renewal interval from now, and when resolverAddr
// is non-zero the name is wired to it. The consumed commitment is deleted
// so the same commitment can never register twice. Returns the namehash
// of the registered name.
func Register(ctx *nameaction.Context, label string, owner common.Address, secret []byte, resolverAddr common.Address) (common.Hash, error) {
	db := ctx.State
	if getRegistryAddr(db).IsZero() {
		return common.Hash{}, ErrNotInitialized
	}
	p := getParams(db)
	if uint32(len(label)) < p.MinLabelLen || uint32(len(label)) > p.MaxLabelLen {
		return common.Hash{}, ErrInvalidLabel
	}

	commitment := MakeCommitment([]byte(label), owner, secret)
	c, ok := getCommitment(db, commitment)
	if !ok {
		return common.Hash{}, ErrCommitmentMissing
	}
	if ctx.Time < c.CreatedAt+p.CommitMinAgeSecs {
		return common.Hash{}, ErrCommitmentTooFresh
	}
	if ctx.Time > c.CreatedAt+p.CommitMaxAgeSecs {
		return common.Hash{}, ErrCommitmentTooOld
	}
	if !Available(db, label, ctx.Time) {
		return common.Hash{}, ErrNameNotAvailable
	}

	node, err := namehash.Hash([][]byte{getTLD(db), []byte(label)})
	if err != nil {
		return common.Hash{}, ErrInvalidLabel
	}
	if err := registry.Claim(ctx, node, owner); err != nil {
		return common.Hash{}, err
	}
	// Registration sets an absolute expiry. There is no prior expiry to
	// take the max against, so the renewal formula does not apply.
	if p.RenewExtensionSecs > math.MaxUint64-ctx.Time {
		return common.Hash{}, registry.ErrOverflow
	}
	expiresAt := ctx.Time + p.RenewExtensionSecs
	registry.SetExpires(db, node, expiresAt)

	// Resolver wiring was explicitly requested; a failure aborts the
	// whole registration rather than firing name_registered with the
	// resolver silently unset.
	if !resolverAddr.IsZero() {
		if err := registry.SetResolver(ctx, node, resolverAddr); err != nil {
			return common.Hash{}, err
		}
		if err := resolver.SetAddr(ctx, node, owner); err != nil {
			return common.Hash{}, err
		}
	}

	deleteCommitment(db, commitment)
	db.AddEvent(types.NewEvent(params.RegistrarAddress, types.EventNameRegistered, node,
		&types.NameRegisteredData{Namehash: node, Owner: owner, ExpiresAt: expiresAt}))
	return node, nil
}

// Renew extends the registration of label by the configured renewal
// extension. Only the current registry owner may renew. Returns the new
// expiry.
func Renew(ctx *nameaction.Context, label string) (uint64, error) {
	db := ctx.State
	if getRegistryAddr(db).IsZero() {
		return 0, ErrNotInitialized
	}
	node, err := namehash.Hash([][]byte{getTLD(db), []byte(label)})
	if err != nil {
		return 0, ErrInvalidLabel
	}
	owner, err := registry.Owner(db, node)
	if err != nil {
		return 0, err
	}
	if err := ctx.RequireAuth(owner); err != nil {
		return 0, ErrNotOwner
	}
	p := getParams(db)
	expiresAt, err := registry.RenewBy(ctx, node, p.RenewExtensionSecs)
	if err != nil {
		return 0, err
	}
	db.AddEvent(types.NewEvent(params.RegistrarAddress, types.EventNameRenewed, node,
		&types.NameRenewedData{Namehash: node, ExpiresAt: expiresAt}))
	return expiresAt, nil
}

// Available reports whether label can be registered right now: it has no
// owner, or its expiry plus the grace period has passed. During the grace
// period only the lapsed owner may renew, so the name stays unavailable
// to everyone else. Never fails; names that cannot exist are simply not
// available.
func Available(db state.StateDB, label string, now uint64) bool {
	if getRegistryAddr(db).IsZero() {
		return false
	}
	p := getParams(db)
	if uint32(len(label)) < p.MinLabelLen || uint32(len(label)) > p.MaxLabelLen {
		return false
	}
	node, err := namehash.Hash([][]byte{getTLD(db), []byte(label)})
	if err != nil {
		return false
	}
	if _, err := registry.Owner(db, node); err != nil {
		return true
	}
	expiresAt, err := registry.Expires(db, node)
	if err != nil {
		return true
	}
	// now > expiresAt + grace, without overflowing the sum.
	return now > p.GracePeriodSecs && now-p.GracePeriodSecs > expiresAt
}

// SetParams replaces the registrar policy. Admin only.
func SetParams(ctx *nameaction.Context, p params.RegistrarParams) error {
	db := ctx.State
	if getRegistryAddr(db).IsZero() {
		return ErrNotInitialized
	}
	if err := ctx.RequireAuth(getAdmin(db)); err != nil {
		return ErrNotAdmin
	}
	if !p.Valid() {
		return ErrInvalidParams
	}
	setParams(db, p)
	return nil
}

// Params returns the current registrar policy.
func Params(db state.StateDB) (params.RegistrarParams, error) {
	if getRegistryAddr(db).IsZero() {
		return params.RegistrarParams{}, ErrNotInitialized
	}
	return getParams(db), nil
}

// Registry returns the wired registry address.
func Registry(db state.StateDB) (common.Address, error) {
	reg := getRegistryAddr(db)
	if reg.IsZero() {
		return common.Address{}, ErrNotInitialized
	}
	return reg, nil
}

// TLD returns the namespace this registrar administers.
func TLD(db state.StateDB) (string, error) {
	if getRegistryAddr(db).IsZero() {
		return "", ErrNotInitialized
	}
	return string(getTLD(db)), nil
}

// Admin returns the policy admin address.
func Admin(db state.StateDB) (common.Address, error) {
	if getRegistryAddr(db).IsZero() {
		return common.Address{}, ErrNotInitialized
	}
	return getAdmin(db), nil
}

// Node returns the namehash of label under this registrar's TLD.
func Node(db state.StateDB, label string) (common.Hash, error) {
	if getRegistryAddr(db).IsZero() {
		return common.Hash{}, ErrNotInitialized
	}
	return namehash.Hash([][]byte{getTLD(db), []byte(label)})
}
