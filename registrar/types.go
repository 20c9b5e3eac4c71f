// Package registrar implements the commit-reveal registration policy for
// one top-level namespace.
//
// Registration takes two transactions. A registrant first commits to a
// hash of (label, owner, secret) without revealing the label, waits at
// least the configured minimum age, then reveals the preimage to
// register. An observer of the pending commit cannot extract the label
// and register it first; the maximum age bound keeps stale commitments
// from squatting indefinitely.
//
// The registrar owns no naming state. It writes ownership and expiry
// through the registry's entry points and keeps only the commitment pool
// and its policy parameters here.
package registrar

import "errors"

var (
	// ErrAlreadyInitialized is returned by a second Init call.
	ErrAlreadyInitialized = errors.New("registrar: already initialized")

	// ErrNotInitialized is returned when the registrar is used before
	// Init.
	ErrNotInitialized = errors.New("registrar: not initialized")

	// ErrInvalidLabel is returned when a label length is outside the
	// configured bounds.
	ErrInvalidLabel = errors.New("registrar: invalid label")

	// ErrCommitmentExists is returned by Commit when the commitment hash
	// is already stored. A collision is a conflict with another party's
	// pending intent, never an update.
	ErrCommitmentExists = errors.New("registrar: commitment exists")

	// ErrCommitmentMissing is returned by Register when no commitment
	// matches the revealed preimage, including one already consumed by an
	// earlier registration.
	ErrCommitmentMissing = errors.New("registrar: commitment missing")

	// ErrCommitmentTooFresh is returned by Register before the minimum
	// commitment age has elapsed.
	ErrCommitmentTooFresh = errors.New("registrar: commitment too fresh")

	// ErrCommitmentTooOld is returned by Register after the maximum
	// commitment age has passed.
	ErrCommitmentTooOld = errors.New("registrar: commitment too old")

	// ErrNameNotAvailable is returned by Register when the name is owned
	// and not past its grace period.
	ErrNameNotAvailable = errors.New("registrar: name not available")

	// ErrNotOwner is returned by Renew when the caller does not own the
	// name.
	ErrNotOwner = errors.New("registrar: caller does not own name")

	// ErrNotAdmin is returned by SetParams for any caller but the stored
	// admin.
	ErrNotAdmin = errors.New("registrar: caller is not admin")

	// ErrInvalidParams is returned when a parameter update violates the
	// policy invariants.
	ErrInvalidParams = errors.New("registrar: invalid params")
)

// Commitment is the stored record of one pending registration intent.
type Commitment struct {
	CreatedAt uint64
	LabelLen  uint32
}
