// SPDX-License-Identifier: GPL-3.0-or-later

// Command netprobed implements the network-measurement probe.
package main

import (
	_ "embed"
	"os"

	"github.com/netprobe-project/netprobe/cmd/netprobed/internal/run"
	"github.com/netprobe-project/netprobe/cmd/netprobed/internal/serve"
	"github.com/netprobe-project/netprobe/internal/markdown"
	"github.com/netprobe-project/netprobe/pkg/common/cliutils"
	"github.com/netprobe-project/netprobe/pkg/common/climain"
)

var mainArgs = os.Args

func main() {
	climain.Run(newCommand(), os.Exit, mainArgs...)
}

//go:embed README.md
var readme string

// newCommand constructs a new [cliutils.Command] for the `netprobed` command.
func newCommand() cliutils.Command {
	return cliutils.NewCommandWithSubCommands("netprobed", markdown.LazyMaybeRender(readme), map[string]cliutils.Command{
		"serve": serve.NewCommand(),
		"run":   run.NewCommand(),
	})
}
