// Package nat turns a linux host into a nat gateway for a single source
// address. It installs the firewall tooling, enables ipv4 forwarding then
// appends a masquerade rule to the nat POSTROUTING chain. Every change is
// made by invoking the host tools, nothing is tracked or rolled back.
package nat

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/threefoldtech/natroute/pkg/config"
	"github.com/threefoldtech/natroute/pkg/network/options"
)

// Names of the setup steps
const (
	StepInstall    = "install"
	StepForwarding = "forwarding"
	StepRoute      = "route"
)

// StepError is returned when a setup step fails
type StepError struct {
	Step  string
	Fatal bool
	Err   error
}

func (e *StepError) Error() string {
	return errors.Wrapf(e.Err, "%s step failed", e.Step).Error()
}

// Cause implements the pkg/errors causer
func (e *StepError) Cause() error { return e.Err }

func (e *StepError) Unwrap() error { return e.Err }

// Option configures a Gateway
type Option func(*Gateway)

// WithExecuter sets the executer used to run host commands
func WithExecuter(exe Executer) Option {
	return func(g *Gateway) {
		g.exe = exe
	}
}

// WithForwardingProbe overrides how the current forwarding flag is read
func WithForwardingProbe(probe func() (bool, error)) Option {
	return func(g *Gateway) {
		g.probe = probe
	}
}

// Gateway runs the setup steps with the configured host commands
type Gateway struct {
	cmds  config.Commands
	exe   Executer
	probe func() (bool, error)
}

// New creates a Gateway from cfg
func New(cfg config.Config, opts ...Option) (*Gateway, error) {
	cmds, err := cfg.Commands()
	if err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	g := &Gateway{
		cmds:  cmds,
		exe:   ExecuterFunc(run),
		probe: options.IPv4Forwarding,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Plan returns the commands Setup runs for req, in order
func (g *Gateway) Plan(req Request) []Command {
	return []Command{
		g.installCommand(),
		g.forwardingCommand(),
		g.ruleCommand(req),
	}
}

// Setup runs the three steps in order. A failed install is logged and
// ignored. A failed forwarding step aborts before the rule is added.
// Nothing already applied is reverted on failure.
func (g *Gateway) Setup(ctx context.Context, req Request) error {
	if err := g.InstallDependencies(ctx); err != nil {
		log.Error().Err(err).Msg("failed to install packages, continuing")
	}

	if err := g.EnableForwarding(ctx); err != nil {
		return err
	}

	return g.Masquerade(ctx, req)
}

// InstallDependencies installs the firewall packages
func (g *Gateway) InstallDependencies(ctx context.Context) error {
	log.Info().Msgf("Installing packages: %s...", strings.Join(g.cmds.Packages, ", "))

	if err := g.execute(ctx, g.installCommand()); err != nil {
		return &StepError{Step: StepInstall, Err: err}
	}

	log.Info().Msg("Packages installed successfully.")
	return nil
}

// EnableForwarding sets the kernel ipv4 forwarding flag
func (g *Gateway) EnableForwarding(ctx context.Context) error {
	if enabled, err := g.probe(); err != nil {
		log.Debug().Err(err).Msg("could not read current forwarding state")
	} else {
		log.Debug().Bool("enabled", enabled).Msg("current ipv4 forwarding state")
	}

	log.Info().Msg("Enabling packet forwarding...")

	if err := g.execute(ctx, g.forwardingCommand()); err != nil {
		return &StepError{Step: StepForwarding, Fatal: true, Err: err}
	}

	log.Info().Msg("Packet forwarding enabled successfully...")
	return nil
}

// Masquerade appends the masquerade rule for req. Running it twice appends
// the rule twice.
func (g *Gateway) Masquerade(ctx context.Context, req Request) error {
	log.Info().Msgf("Routing whole network from %s to %s...", req.Address, req.Interface)

	if err := g.execute(ctx, g.ruleCommand(req)); err != nil {
		return &StepError{Step: StepRoute, Fatal: true, Err: err}
	}

	log.Info().Msg("Routing network done successfully...")
	return nil
}

func (g *Gateway) execute(ctx context.Context, cmd Command) error {
	log.Debug().Str("command", cmd.String()).Msg("executing")

	err := g.exe.Run(ctx, cmd.Name, cmd.Args...)
	if err == nil {
		return nil
	}

	var cerr *CommandError
	if errors.As(err, &cerr) {
		if len(cerr.Output) != 0 {
			log.Error().Str("output", cerr.Output).Str("command", cmd.String()).Msg("command failed")
		}
		return err
	}

	return &CommandError{Command: cmd, Err: err}
}
