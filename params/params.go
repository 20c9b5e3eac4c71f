// Package params holds the protocol constants and the well-known contract
// addresses of the name service deployment.
package params

import "github.com/ScottyPoi/stellar-name-service/common"

// Well-known contract addresses. Contract state is stored under these, the
// way system-contract state lives under fixed addresses on the host chain.
var (
	// RegistryAddress stores the canonical owner/resolver/expiry triple per
	// namehash.
	RegistryAddress = common.HexToAddress("0x00000000000000000000000000000000000000000000000000000000534E5331") // "SNS1"

	// ResolverAddress stores address and text records per namehash.
	ResolverAddress = common.HexToAddress("0x00000000000000000000000000000000000000000000000000000000534E5332") // "SNS2"

	// RegistrarAddress stores the commit-reveal registrar state for the TLD.
	RegistrarAddress = common.HexToAddress("0x00000000000000000000000000000000000000000000000000000000534E5333") // "SNS3"
)

const (
	// RenewExtensionSeconds is the registry renewal interval: every renewal
	// pushes the expiry at least this far past the current ledger time.
	RenewExtensionSeconds uint64 = 31_536_000 // 365 days

	// MaxLabelLength is the longest label (in bytes) accepted anywhere a
	// label enters the system.
	MaxLabelLength = 63

	// MaxTextKeyLength bounds resolver text record keys.
	MaxTextKeyLength = 256
)

// RegistrarParams is the registrar's tunable policy, mutable only by the
// stored admin address.
type RegistrarParams struct {
	MinLabelLen        uint32 `json:"min_label_len" toml:"min_label_len"`
	MaxLabelLen        uint32 `json:"max_label_len" toml:"max_label_len"`
	CommitMinAgeSecs   uint64 `json:"commit_min_age_secs" toml:"commit_min_age_secs"`
	CommitMaxAgeSecs   uint64 `json:"commit_max_age_secs" toml:"commit_max_age_secs"`
	RenewExtensionSecs uint64 `json:"renew_extension_secs" toml:"renew_extension_secs"`
	GracePeriodSecs    uint64 `json:"grace_period_secs" toml:"grace_period_secs"`
}

// Valid reports whether the parameter invariants hold: ordered bounds and
// strictly positive durations.
func (p RegistrarParams) Valid() bool {
	if p.MinLabelLen == 0 || p.MinLabelLen > p.MaxLabelLen || p.MaxLabelLen > MaxLabelLength {
		return false
	}
	if p.CommitMinAgeSecs == 0 || p.CommitMinAgeSecs > p.CommitMaxAgeSecs {
		return false
	}
	return p.RenewExtensionSecs > 0 && p.GracePeriodSecs > 0
}

// DefaultRegistrarParams returns the registrar policy used when an init
// action supplies none.
func DefaultRegistrarParams() RegistrarParams {
	return RegistrarParams{
		MinLabelLen:        1,
		MaxLabelLen:        MaxLabelLength,
		CommitMinAgeSecs:   60,
		CommitMaxAgeSecs:   86_400,
		RenewExtensionSecs: RenewExtensionSeconds,
		GracePeriodSecs:    2_592_000, // 30 days
	}
}
