// SPDX-License-Identifier: GPL-3.0-or-later

// Package run implements the `netprobed run` command: a debug entry
// point that drives a single measurement without a control channel.
package run

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/netprobe-project/netprobe/internal/config"
	"github.com/netprobe-project/netprobe/internal/controlchannel"
	"github.com/netprobe-project/netprobe/internal/dispatch"
	"github.com/netprobe-project/netprobe/internal/markdown"
	"github.com/netprobe-project/netprobe/internal/measurement"
	"github.com/netprobe-project/netprobe/pkg/common/cliutils"
	"github.com/spf13/pflag"
)

//go:embed README.md
var readme string

// NewCommand creates the `netprobed run` [cliutils.Command].
func NewCommand() cliutils.Command {
	return command{}
}

type command struct{}

var _ cliutils.Command = command{}

// Help implements [cliutils.Command].
func (cmd command) Help(env cliutils.Environment, argv ...string) error {
	fmt.Fprintf(env.Stdout(), "%s\n", markdown.MaybeRender(readme))
	return nil
}

// Main implements [cliutils.Command].
func (cmd command) Main(ctx context.Context, env cliutils.Environment, argv ...string) error {
	if cliutils.HelpRequested(argv...) {
		return cmd.Help(env, argv...)
	}

	clip := pflag.NewFlagSet("netprobed run", pflag.ContinueOnError)
	query := clip.StringArray("query", nil, "key=value pair to set in the query bundle, repeatable")
	packets := clip.Int("packets", 0, "packet count, for ping/mtr")
	protocol := clip.String("protocol", "", "protocol override, for traceroute/mtr (dns uses --query protocol=...)")
	port := clip.String("port", "", "port override, for traceroute/mtr (dns uses --query port=...)")
	trace := clip.Bool("trace", false, "enable +trace, for dns")

	if err := clip.Parse(argv[1:]); err != nil {
		fmt.Fprintf(env.Stderr(), "netprobed run: %s\n", err.Error())
		return err
	}

	args := clip.Args()
	if len(args) < 2 {
		err := errors.New("expected a measurement kind and a target")
		fmt.Fprintf(env.Stderr(), "netprobed run: %s\n", err.Error())
		fmt.Fprintf(env.Stderr(), "Run `netprobed run --help` for usage.\n")
		return err
	}
	kind, target := args[0], args[1]

	options := map[string]any{"type": kind, "target": target}
	queryBundle := map[string]any{}
	for _, kv := range *query {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			err := fmt.Errorf("malformed --query value %q, expected key=value", kv)
			fmt.Fprintf(env.Stderr(), "netprobed run: %s\n", err.Error())
			return err
		}
		queryBundle[k] = v
	}
	if len(queryBundle) > 0 {
		options["query"] = queryBundle
	}
	if *packets > 0 {
		options["packets"] = *packets
	}
	if *protocol != "" {
		options["protocol"] = *protocol
	}
	if *port != "" {
		options["port"] = *port
	}
	if *trace {
		options["trace"] = true
	}

	req := &measurement.Request{
		MeasurementID: uuid.NewString(),
		TestID:        uuid.NewString(),
		Options:       options,
	}

	logger := slog.New(slog.NewJSONHandler(env.Stderr(), nil))
	emit := controlchannel.EmitterFunc(func(name string, payload any) error {
		return printEvent(env, name, payload)
	})
	d := dispatch.New(emit, config.FromEnv(), logger)
	d.Dispatch(ctx, req)
	return nil
}

func printEvent(env cliutils.Environment, name string, payload any) error {
	encoded, err := json.MarshalIndent(struct {
		Event   string `json:"event"`
		Payload any    `json:"payload"`
	}{Event: name, Payload: payload}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.Stdout(), "%s\n", encoded)
	return err
}
