// Package app assembles the node's command-line interface.
package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/zecd-io/zecd/cli/server"
	"github.com/zecd-io/zecd/cli/util"
	"github.com/zecd-io/zecd/pkg/config"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "zecd\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates the zecd cli.App with every command registered.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "zecd"
	ctl.Version = config.Version
	ctl.Usage = "A transparent-pool node"
	ctl.ErrWriter = os.Stdout
	ctl.Commands = append(ctl.Commands, server.NewCommands()...)
	ctl.Commands = append(ctl.Commands, util.NewCommands()...)
	return ctl
}
