/*
Package options reads the kernel networking flags natroute depends on
*/
package options

import (
	"strings"

	"github.com/containernetworking/plugins/pkg/utils/sysctl"
	"github.com/pkg/errors"
)

// IPv4ForwardingKey is the sysctl key controlling ipv4 packet forwarding
const IPv4ForwardingKey = "net.ipv4.ip_forward"

// IPv4Forwarding reports if the kernel currently forwards ipv4 packets
func IPv4Forwarding() (bool, error) {
	value, err := sysctl.Sysctl(IPv4ForwardingKey)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", IPv4ForwardingKey)
	}

	return parseFlag(value)
}

func parseFlag(value string) (bool, error) {
	switch strings.TrimSpace(value) {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, errors.Errorf("unexpected flag value '%s'", value)
	}
}

// IPv4ForwardingAssignment is the key=value argument of `sysctl -w` that
// sets ipv4 forwarding to f
func IPv4ForwardingAssignment(f bool) string {
	return IPv4ForwardingKey + "=" + flag(f)
}

func flag(f bool) string {
	if f {
		return "1"
	}
	return "0"
}
