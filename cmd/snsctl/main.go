// snsctl is a command line client for the stellar name service contracts.
// It keeps a local copy of the contract state in a leveldb directory and
// applies name actions to it the way the on-chain executor would, which
// makes it a faithful offline simulator for wallets, indexer development
// and policy experiments.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ScottyPoi/stellar-name-service/common"
	"github.com/ScottyPoi/stellar-name-service/internal/flags"
	"github.com/ScottyPoi/stellar-name-service/log"
	"github.com/ScottyPoi/stellar-name-service/nameaction"
	"github.com/ScottyPoi/stellar-name-service/nsdb/leveldb"
	"github.com/ScottyPoi/stellar-name-service/state"
)

var gitCommit = ""
var gitDate = ""

var app = flags.NewApp(gitCommit, gitDate, "a stellar name service state tool")

var (
	dataDirFlag = &cli.StringFlag{
		Name:     "datadir",
		Usage:    "Directory holding the name service state database",
		Value:    defaultDataDir(),
		Category: flags.StateCategory,
	}
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    3,
		Category: flags.LoggingCategory,
	}
	fromFlag = &cli.StringFlag{
		Name:     "from",
		Usage:    "Address sending the action",
		Category: flags.ActionCategory,
	}
	authFlag = &cli.StringSliceFlag{
		Name:     "auth",
		Usage:    "Additional addresses that authorized the action",
		Category: flags.ActionCategory,
	}
	nowFlag = &cli.Uint64Flag{
		Name:     "now",
		Usage:    "Ledger timestamp to execute at (default: wall clock)",
		Category: flags.ActionCategory,
	}
)

func init() {
	app.Flags = []cli.Flag{dataDirFlag, verbosityFlag}
	app.Commands = []*cli.Command{
		initCommand,
		commitCommand,
		registerCommand,
		renewCommand,
		transferCommand,
		setResolverCommand,
		setAddrCommand,
		setTextCommand,
		setParamsCommand,
		namehashCommand,
		commitmentCommand,
		availableCommand,
		resolveCommand,
		recordsCommand,
		eventsCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		handler := log.NewTerminalHandler(os.Stderr)
		log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(ctx.Int(verbosityFlag.Name)), handler))
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".snsctl"
	}
	return filepath.Join(home, ".snsctl")
}

// openState opens the leveldb-backed contract state under datadir.
func openState(ctx *cli.Context) (*state.DB, func(), error) {
	dir := filepath.Join(ctx.String(dataDirFlag.Name), "statedb")
	backend, err := leveldb.New(dir, 16, 16)
	if err != nil {
		return nil, nil, fmt.Errorf("open state database: %w", err)
	}
	closer := func() {
		if err := backend.Close(); err != nil {
			log.Error("Failed to close state database", "err", err)
		}
	}
	return state.New(backend), closer, nil
}

// actionContext assembles the execution context from the action flags.
func actionContext(ctx *cli.Context, db *state.DB) (*nameaction.Context, error) {
	from := ctx.String(fromFlag.Name)
	if !common.IsHexAddress(from) {
		return nil, fmt.Errorf("invalid --from address: %q", from)
	}
	var authorized []common.Address
	for _, a := range ctx.StringSlice(authFlag.Name) {
		if !common.IsHexAddress(a) {
			return nil, fmt.Errorf("invalid --auth address: %q", a)
		}
		authorized = append(authorized, common.HexToAddress(a))
	}
	now := ctx.Uint64(nowFlag.Name)
	if !ctx.IsSet(nowFlag.Name) {
		now = uint64(time.Now().Unix())
	}
	return &nameaction.Context{
		From:       common.HexToAddress(from),
		Authorized: authorized,
		Time:       now,
		State:      db,
	}, nil
}

// runAction executes one encoded action against the stored state and
// persists the result.
func runAction(cliCtx *cli.Context, kind nameaction.ActionKind, payload interface{}) error {
	db, closer, err := openState(cliCtx)
	if err != nil {
		return err
	}
	defer closer()

	ctx, err := actionContext(cliCtx, db)
	if err != nil {
		return err
	}
	data, err := nameaction.MakeAction(kind, payload)
	if err != nil {
		return err
	}
	if err := nameaction.Execute(ctx, data); err != nil {
		return err
	}
	if err := db.Commit(); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	log.Info("Action applied", "action", kind, "from", ctx.From, "time", ctx.Time)
	return nil
}
