package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/threefoldtech/natroute/pkg/app"
	"github.com/threefoldtech/natroute/pkg/config"
	"github.com/threefoldtech/natroute/pkg/nat"
	"github.com/threefoldtech/natroute/pkg/network/ifaceutil"
	"github.com/threefoldtech/natroute/pkg/network/options"
	"github.com/threefoldtech/natroute/pkg/version"
)

const (
	// exitFailure is used when a host command failed
	exitFailure = 1
	// exitUsage is used for invalid arguments or configuration
	exitUsage = 2
)

// progress of every step is reported on stdout
var logOutput io.Writer = os.Stdout

func main() {
	app.Initialize(logOutput)

	// cancellation only follows an operator signal, there are no timeouts
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := newApp(ifaceutil.Names).RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("exiting")
	}

	cancel()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}

	// flag parsing and missing required flags
	return exitUsage
}

func newApp(lister nat.Lister, opts ...nat.Option) *cli.App {
	return &cli.App{
		Name:    "natroute",
		Usage:   "route a network through this host by masquerading its traffic",
		Version: version.Current().String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "net_interface",
				Aliases:  []string{"n"},
				Usage:    "the network `INTERFACE` the whole network goes out through",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "ip_address",
				Aliases:  []string{"i"},
				Usage:    "the ipv4 `ADDRESS` the whole network comes in from",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "yaml `FILE` describing the host commands to run",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "validate the arguments and print the commands without running them",
			},
		},
		Before: func(c *cli.Context) error {
			app.SetDebug(c.Bool("debug"))
			return nil
		},
		// exit codes are handled by main
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			return action(c, lister, opts...)
		},
	}
}

func action(c *cli.Context, lister nat.Lister, opts ...nat.Option) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cli.Exit(err.Error(), exitUsage)
		}
	}

	req, err := nat.NewRequest(c.String("net_interface"), c.String("ip_address"), lister)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	gw, err := nat.New(cfg, opts...)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	if c.Bool("dry-run") {
		return dryRun(c, gw, req)
	}

	if err := gw.Setup(c.Context, req); err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	return nil
}

func dryRun(c *cli.Context, gw *nat.Gateway, req nat.Request) error {
	if enabled, err := options.IPv4Forwarding(); err != nil {
		log.Warn().Err(err).Msg("could not read current forwarding state")
	} else {
		log.Info().Bool("enabled", enabled).Msg("current ipv4 forwarding state")
	}

	for _, cmd := range gw.Plan(req) {
		fmt.Fprintln(c.App.Writer, cmd)
	}

	return nil
}
