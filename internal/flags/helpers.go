package flags

import (
	"os"
	"path/filepath"

	"github.com/ScottyPoi/stellar-name-service/params"
	"github.com/urfave/cli/v2"
)

// NewApp creates an app with sane defaults.
func NewApp(gitCommit, gitDate, usage string) *cli.App {
	app := cli.NewApp()
	app.EnableBashCompletion = true
	app.Name = filepath.Base(os.Args[0])
	app.Version = params.VersionWithCommit(gitCommit, gitDate)
	app.Usage = usage
	app.Copyright = "Copyright 2024-2026 The stellar-name-service Authors"
	return app
}

// Merge concatenates flag slices for a command definition.
func Merge(groups ...[]cli.Flag) []cli.Flag {
	var ret []cli.Flag
	for _, group := range groups {
		ret = append(ret, group...)
	}
	return ret
}
