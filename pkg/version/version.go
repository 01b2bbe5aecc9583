package version

import "fmt"

/*
The variables in this file are set at link time, for example

	go build -ldflags "-X github.com/threefoldtech/natroute/pkg/version.Branch=v0.1.0"
*/

var (
	// Branch (or tag) the binary was built from
	Branch = "{branch}"
	// Revision is the commit hash
	Revision = "{revision}"
	// Dirty is non empty when built from a tree with uncommitted changes
	Dirty = ""
)

// Version of the running binary
type Version struct {
	Branch   string
	Revision string
	Dirty    bool
}

// Current returns the version natroute was built with
func Current() Version {
	return Version{
		Branch:   Branch,
		Revision: Revision,
		Dirty:    Dirty != "",
	}
}

func (v Version) String() string {
	s := fmt.Sprintf("%s@%s", v.Branch, v.short())
	if v.Dirty {
		s += " (dirty-repo)"
	}
	return s
}

func (v Version) short() string {
	if len(v.Revision) > 7 {
		return v.Revision[:7]
	}
	return v.Revision
}
