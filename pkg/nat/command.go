package nat

import (
	"strings"

	"github.com/threefoldtech/natroute/pkg/network/options"
)

// Masquerade target and the chain it lives in
const (
	TableNAT         = "nat"
	ChainPostRouting = "POSTROUTING"
	TargetMasquerade = "MASQUERADE"
)

// Command is a host command and its arguments
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Argv returns the command name followed by its arguments
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	return append(argv, c.Args...)
}

// newCommand joins argv parts into a Command. The result never shares
// memory with the input slices.
func newCommand(parts ...[]string) Command {
	var argv []string
	for _, part := range parts {
		argv = append(argv, part...)
	}

	return Command{Name: argv[0], Args: argv[1:]}
}

// Rule is a single iptables rule appended to a chain
type Rule struct {
	Table        string
	Chain        string
	OutInterface string
	Source       string
	Target       string
}

// MasqueradeRule returns the rule that masquerades traffic coming from the
// request address and leaving through the request interface
func MasqueradeRule(req Request) Rule {
	return Rule{
		Table:        TableNAT,
		Chain:        ChainPostRouting,
		OutInterface: req.Interface,
		Source:       req.Address.String(),
		Target:       TargetMasquerade,
	}
}

// Args returns the iptables arguments to append the rule. The order is
// table, chain, out interface, source then target.
func (r Rule) Args() []string {
	return []string{
		"-t", r.Table,
		"-A", r.Chain,
		"-o", r.OutInterface,
		"-s", r.Source,
		"-j", r.Target,
	}
}

func (g *Gateway) installCommand() Command {
	return newCommand(g.cmds.Privilege, g.cmds.PackageManager, g.cmds.Packages)
}

func (g *Gateway) forwardingCommand() Command {
	return newCommand(g.cmds.Privilege, g.cmds.Sysctl, []string{"-w", options.IPv4ForwardingAssignment(true)})
}

func (g *Gateway) ruleCommand(req Request) Command {
	return newCommand(g.cmds.Privilege, g.cmds.IPTables, MasqueradeRule(req).Args())
}
