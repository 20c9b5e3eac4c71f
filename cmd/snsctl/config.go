package main

import (
	"fmt"
	"os"

	"github.com/naoina/toml"

	"github.com/ScottyPoi/stellar-name-service/params"
)

// registrarConfig is the TOML layout consumed by `snsctl init`.
//
//	registry = "0x...5331"
//	tld      = "stellar"
//	admin    = "0x..."
//
//	[params]
//	min_label_len       = 1
//	max_label_len       = 63
//	commit_min_age_secs = 60
//	commit_max_age_secs = 86400
//	renew_extension_secs = 31536000
//	grace_period_secs   = 2592000
type registrarConfig struct {
	Registry string                  `toml:"registry"`
	TLD      string                  `toml:"tld"`
	Admin    string                  `toml:"admin"`
	Params   *params.RegistrarParams `toml:"params"`
}

func loadRegistrarConfig(path string) (*registrarConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg registrarConfig
	if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.TLD == "" {
		return nil, fmt.Errorf("%s: missing tld", path)
	}
	if cfg.Admin == "" {
		return nil, fmt.Errorf("%s: missing admin", path)
	}
	if cfg.Registry == "" {
		cfg.Registry = params.RegistryAddress.Hex()
	}
	return &cfg, nil
}
