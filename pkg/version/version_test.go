package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionString(t *testing.T) {
	v := Version{Branch: "v0.1.0", Revision: "2e021307bc4b"}
	require.Equal(t, "v0.1.0@2e02130", v.String())

	v.Dirty = true
	require.Equal(t, "v0.1.0@2e02130 (dirty-repo)", v.String())

	v = Version{Branch: "main", Revision: "abc"}
	require.Equal(t, "main@abc", v.String())
}

func TestCurrent(t *testing.T) {
	require.Equal(t, Branch, Current().Branch)
	require.Equal(t, Revision, Current().Revision)
	require.False(t, Current().Dirty)
}
