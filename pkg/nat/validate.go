package nat

import (
	"fmt"
	"net/netip"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidAddress is returned for a source address that is not a dotted quad ipv4
	ErrInvalidAddress = errors.New("invalid IP address")
	// ErrInvalidInterface is returned for an interface that does not exist on the host
	ErrInvalidInterface = errors.New("invalid network interface name")
)

// Lister returns the names of the network interfaces present on the host
type Lister func() ([]string, error)

// ArgumentError reports which user supplied value failed validation
type ArgumentError struct {
	Value string
	Err   error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Value)
}

// Cause implements the pkg/errors causer
func (e *ArgumentError) Cause() error { return e.Err }

func (e *ArgumentError) Unwrap() error { return e.Err }

// Request holds the validated egress interface and source address
type Request struct {
	Interface string
	Address   netip.Addr
}

// NewRequest validates the address then the interface, in that order, and
// returns a Request built from them. The interface list is queried once.
func NewRequest(iface, address string, lister Lister) (Request, error) {
	addr, err := ValidateAddress(address)
	if err != nil {
		return Request{}, err
	}

	if err := ValidateInterface(iface, lister); err != nil {
		return Request{}, err
	}

	return Request{Interface: iface, Address: addr}, nil
}

// ValidateAddress accepts only the dotted quad form of an ipv4 address.
// ipv6, ipv4 mapped ipv6 and octets with leading zeros are rejected.
func ValidateAddress(address string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(address)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, &ArgumentError{Value: address, Err: ErrInvalidAddress}
	}

	return addr, nil
}

// ValidateInterface makes sure name is one of the interfaces returned by lister
func ValidateInterface(name string, lister Lister) error {
	names, err := lister()
	if err != nil {
		return errors.Wrap(err, "failed to list network interfaces")
	}

	for _, n := range names {
		if n == name {
			return nil
		}
	}

	return &ArgumentError{Value: name, Err: ErrInvalidInterface}
}
