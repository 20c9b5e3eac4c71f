package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/ScottyPoi/stellar-name-service/internal/flags"
	"github.com/ScottyPoi/stellar-name-service/namehash"
	"github.com/ScottyPoi/stellar-name-service/registrar"
	"github.com/ScottyPoi/stellar-name-service/registry"
	"github.com/ScottyPoi/stellar-name-service/resolver"
)

var namehashCommand = &cli.Command{
	Name:      "namehash",
	Usage:     "Print the namehash of a full name",
	ArgsUsage: "<name>",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("one name argument required")
		}
		node, err := namehash.HashName(ctx.Args().First())
		if err != nil {
			return err
		}
		fmt.Println(node.Hex())
		return nil
	},
}

var commitmentCommand = &cli.Command{
	Name:  "commitment",
	Usage: "Print the commitment hash for a (label, owner, secret) tuple",
	Flags: []cli.Flag{labelFlag, ownerFlag, fromFlag, secretFlag},
	Action: func(ctx *cli.Context) error {
		label, owner, secret, err := commitmentArgs(ctx)
		if err != nil {
			return err
		}
		fmt.Println(registrar.MakeCommitment([]byte(label), owner, secret).Hex())
		return nil
	},
}

var availableCommand = &cli.Command{
	Name:  "available",
	Usage: "Check whether a label can be registered",
	Flags: []cli.Flag{labelFlag, nowFlag},
	Action: func(ctx *cli.Context) error {
		db, closer, err := openState(ctx)
		if err != nil {
			return err
		}
		defer closer()

		now := ctx.Uint64(nowFlag.Name)
		if !ctx.IsSet(nowFlag.Name) {
			now = uint64(time.Now().Unix())
		}
		label := ctx.String(labelFlag.Name)
		if registrar.Available(db, label, now) {
			color.Green("%s is available", label)
		} else {
			color.Red("%s is not available", label)
		}
		return nil
	},
}

var resolveCommand = &cli.Command{
	Name:   "resolve",
	Usage:  "Show the registry and resolver state of a name",
	Flags:  []cli.Flag{nameFlag},
	Action: resolveName,
}

var recordsCommand = &cli.Command{
	Name:  "records",
	Usage: "Show text records of a name",
	Flags: []cli.Flag{nameFlag,
		&cli.StringSliceFlag{Name: "key", Usage: "Text record key to look up (repeatable)", Category: flags.ActionCategory}},
	Action: showRecords,
}

var eventsCommand = &cli.Command{
	Name:   "events",
	Usage:  "Dump the committed contract event log",
	Action: showEvents,
}

func resolveName(ctx *cli.Context) error {
	node, err := nodeArg(ctx)
	if err != nil {
		return err
	}
	db, closer, err := openState(ctx)
	if err != nil {
		return err
	}
	defer closer()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"namehash", node.Hex()})

	if owner, err := registry.Owner(db, node); err == nil {
		table.Append([]string{"owner", owner.Hex()})
	} else {
		table.Append([]string{"owner", "(unregistered)"})
	}
	if res, err := registry.Resolver(db, node); err == nil {
		table.Append([]string{"resolver", res.Hex()})
	} else {
		table.Append([]string{"resolver", "(none)"})
	}
	if expiresAt, err := registry.Expires(db, node); err == nil {
		table.Append([]string{"expires", formatTimestamp(expiresAt)})
	}
	if addr, err := resolver.Addr(db, node); err == nil {
		table.Append([]string{"addr", addr.Hex()})
	}
	table.Render()
	return nil
}

func showRecords(ctx *cli.Context) error {
	node, err := nodeArg(ctx)
	if err != nil {
		return err
	}
	db, closer, err := openState(ctx)
	if err != nil {
		return err
	}
	defer closer()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Value"})
	for _, key := range ctx.StringSlice("key") {
		value, err := resolver.Text(db, node, key)
		if err != nil {
			table.Append([]string{key, "(unset)"})
			continue
		}
		table.Append([]string{key, string(value)})
	}
	table.Render()
	return nil
}

func showEvents(ctx *cli.Context) error {
	db, closer, err := openState(ctx)
	if err != nil {
		return err
	}
	defer closer()

	events, err := db.StoredEvents()
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Contract", "Event", "Topic", "Data"})
	for i, ev := range events {
		topic := ""
		if len(ev.Topics) > 0 {
			topic = ev.Topics[0].Hex()
		}
		table.Append([]string{strconv.Itoa(i), ev.Contract.Hex(), ev.Name, topic, string(ev.Data)})
	}
	table.Render()
	return nil
}

func formatTimestamp(ts uint64) string {
	return fmt.Sprintf("%d (%s)", ts, time.Unix(int64(ts), 0).UTC().Format(time.RFC3339))
}
