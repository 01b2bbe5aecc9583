package ifaceutil

import (
	"github.com/pkg/errors"
	"github.com/vishvananda/netlink"
)

// Names returns the names of all the links currently present on the host
func Names() ([]string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list network links")
	}

	return linkNames(links), nil
}

func linkNames(links []netlink.Link) []string {
	names := make([]string, 0, len(links))
	for _, link := range links {
		names = append(names, link.Attrs().Name)
	}
	return names
}
