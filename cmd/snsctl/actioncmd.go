package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/internal/flags"
	"github.com/ScottyPoi/stellar-name-service/nameaction"
	"github.com/ScottyPoi/stellar-name-service/namehash"
	"github.com/ScottyPoi/stellar-name-service/registrar"
)

var (
	labelFlag = &cli.StringFlag{
		Name:     "label",
		Usage:    "Label to act on, without the TLD (e.g. `alice`)",
		Category: flags.ActionCategory,
	}
	nameFlag = &cli.StringFlag{
		Name:     "name",
		Usage:    "Full name, labels joined by dots (e.g. `alice.stellar`)",
		Category: flags.ActionCategory,
	}
	ownerFlag = &cli.StringFlag{
		Name:     "owner",
		Usage:    "Owner address for the registration (default: --from)",
		Category: flags.ActionCategory,
	}
	secretFlag = &cli.StringFlag{
		Name:     "secret",
		Usage:    "Commitment secret, 0x-prefixed hex or a raw string",
		Category: flags.ActionCategory,
	}
	resolverFlag = &cli.StringFlag{
		Name:     "resolver",
		Usage:    "Resolver address to wire at registration",
		Category: flags.ActionCategory,
	}
	configFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML file with the registrar deployment settings",
		Value:    "registrar.toml",
		Category: flags.StateCategory,
	}
)

var initCommand = &cli.Command{
	Name:   "init",
	Usage:  "Initialize the resolver and registrar contracts",
	Flags:  []cli.Flag{fromFlag, authFlag, nowFlag, configFlag},
	Action: initContracts,
}

var commitCommand = &cli.Command{
	Name:   "commit",
	Usage:  "Store a registration commitment for a label",
	Flags:  []cli.Flag{fromFlag, authFlag, nowFlag, labelFlag, ownerFlag, secretFlag},
	Action: commitName,
}

var registerCommand = &cli.Command{
	Name:   "register",
	Usage:  "Reveal a commitment and register the label",
	Flags:  []cli.Flag{fromFlag, authFlag, nowFlag, labelFlag, ownerFlag, secretFlag, resolverFlag},
	Action: registerName,
}

var renewCommand = &cli.Command{
	Name:   "renew",
	Usage:  "Extend a registration by the renewal interval",
	Flags:  []cli.Flag{fromFlag, authFlag, nowFlag, labelFlag},
	Action: renewName,
}

var transferCommand = &cli.Command{
	Name:  "transfer",
	Usage: "Transfer ownership of a name",
	Flags: []cli.Flag{fromFlag, authFlag, nowFlag, nameFlag,
		&cli.StringFlag{Name: "to", Usage: "New owner address", Category: flags.ActionCategory}},
	Action: transferName,
}

var setResolverCommand = &cli.Command{
	Name:  "set-resolver",
	Usage: "Point a name at a resolver contract",
	Flags: []cli.Flag{fromFlag, authFlag, nowFlag, nameFlag, resolverFlag},
	Action: func(ctx *cli.Context) error {
		node, err := nodeArg(ctx)
		if err != nil {
			return err
		}
		return runAction(ctx, nameaction.ActionRegistrySetResolver, &nameaction.SetResolverPayload{
			Namehash: node.Hex(),
			Resolver: ctx.String(resolverFlag.Name),
		})
	},
}

var setAddrCommand = &cli.Command{
	Name:  "set-addr",
	Usage: "Set the address record of a name",
	Flags: []cli.Flag{fromFlag, authFlag, nowFlag, nameFlag,
		&cli.StringFlag{Name: "addr", Usage: "Address the name resolves to", Category: flags.ActionCategory}},
	Action: func(ctx *cli.Context) error {
		node, err := nodeArg(ctx)
		if err != nil {
			return err
		}
		return runAction(ctx, nameaction.ActionResolverSetAddr, &nameaction.SetAddrPayload{
			Namehash: node.Hex(),
			Addr:     ctx.String("addr"),
		})
	},
}

var setTextCommand = &cli.Command{
	Name:  "set-text",
	Usage: "Set a text record of a name",
	Flags: []cli.Flag{fromFlag, authFlag, nowFlag, nameFlag,
		&cli.StringFlag{Name: "key", Usage: "Text record key", Category: flags.ActionCategory},
		&cli.StringFlag{Name: "value", Usage: "Text record value", Category: flags.ActionCategory}},
	Action: func(ctx *cli.Context) error {
		node, err := nodeArg(ctx)
		if err != nil {
			return err
		}
		return runAction(ctx, nameaction.ActionResolverSetText, &nameaction.SetTextPayload{
			Namehash: node.Hex(),
			Key:      ctx.String("key"),
			Value:    ctx.String("value"),
		})
	},
}

var setParamsCommand = &cli.Command{
	Name:  "set-params",
	Usage: "Replace the registrar policy parameters (admin only)",
	Flags: []cli.Flag{fromFlag, authFlag, nowFlag, configFlag},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadRegistrarConfig(ctx.String(configFlag.Name))
		if err != nil {
			return err
		}
		if cfg.Params == nil {
			return fmt.Errorf("%s: missing [params] section", ctx.String(configFlag.Name))
		}
		return runAction(ctx, nameaction.ActionRegistrarSetParams, &nameaction.SetParamsPayload{
			Params: *cfg.Params,
		})
	},
}

func initContracts(ctx *cli.Context) error {
	cfg, err := loadRegistrarConfig(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	if err := runAction(ctx, nameaction.ActionResolverInit, &nameaction.ResolverInitPayload{
		Registry: cfg.Registry,
	}); err != nil {
		return err
	}
	return runAction(ctx, nameaction.ActionRegistrarInit, &nameaction.RegistrarInitPayload{
		Registry: cfg.Registry,
		TLD:      cfg.TLD,
		Admin:    cfg.Admin,
		Params:   cfg.Params,
	})
}

func commitName(ctx *cli.Context) error {
	label, owner, secret, err := commitmentArgs(ctx)
	if err != nil {
		return err
	}
	commitment := registrar.MakeCommitment([]byte(label), owner, secret)
	fmt.Printf("Commitment: %s\n", commitment.Hex())
	return runAction(ctx, nameaction.ActionNameCommit, &nameaction.CommitPayload{
		Commitment: commitment.Hex(),
		LabelLen:   uint32(len(label)),
	})
}

func registerName(ctx *cli.Context) error {
	label, owner, secret, err := commitmentArgs(ctx)
	if err != nil {
		return err
	}
	return runAction(ctx, nameaction.ActionNameRegister, &nameaction.RegisterPayload{
		Label:    label,
		Owner:    owner.Hex(),
		Secret:   "0x" + hex.EncodeToString(secret),
		Resolver: ctx.String(resolverFlag.Name),
	})
}

func renewName(ctx *cli.Context) error {
	label := ctx.String(labelFlag.Name)
	if label == "" {
		return fmt.Errorf("--label is required")
	}
	return runAction(ctx, nameaction.ActionNameRenew, &nameaction.NameRenewPayload{Label: label})
}

func transferName(ctx *cli.Context) error {
	node, err := nodeArg(ctx)
	if err != nil {
		return err
	}
	return runAction(ctx, nameaction.ActionRegistryTransfer, &nameaction.TransferPayload{
		Namehash: node.Hex(),
		To:       ctx.String("to"),
	})
}

// nodeArg resolves --name into its namehash.
func nodeArg(ctx *cli.Context) (common.Hash, error) {
	name := ctx.String(nameFlag.Name)
	if name == "" {
		return common.Hash{}, fmt.Errorf("--name is required")
	}
	node, err := namehash.HashName(name)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid name %q: %w", name, err)
	}
	return node, nil
}

// commitmentArgs gathers the (label, owner, secret) commitment preimage
// from the flags. The owner falls back to --from.
func commitmentArgs(ctx *cli.Context) (string, common.Address, []byte, error) {
	label := ctx.String(labelFlag.Name)
	if label == "" {
		return "", common.Address{}, nil, fmt.Errorf("--label is required")
	}
	owner := ctx.String(ownerFlag.Name)
	if owner == "" {
		owner = ctx.String(fromFlag.Name)
	}
	if !common.IsHexAddress(owner) {
		return "", common.Address{}, nil, fmt.Errorf("invalid owner address: %q", owner)
	}
	secret, err := parseSecret(ctx.String(secretFlag.Name))
	if err != nil {
		return "", common.Address{}, nil, err
	}
	return label, common.HexToAddress(owner), secret, nil
}

// parseSecret accepts a 0x-prefixed hex secret or uses the raw string
// bytes.
func parseSecret(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("--secret is required")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		secret, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, fmt.Errorf("invalid hex secret: %v", err)
		}
		return secret, nil
	}
	return []byte(s), nil
}
