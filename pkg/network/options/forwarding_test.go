package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFlag(t *testing.T) {
	f, err := parseFlag("1\n")
	require.NoError(t, err)
	require.True(t, f)

	f, err = parseFlag("0")
	require.NoError(t, err)
	require.False(t, f)

	_, err = parseFlag("")
	require.Error(t, err)

	_, err = parseFlag("2")
	require.Error(t, err)
}

func TestFlagRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		f, err := parseFlag(flag(v))
		require.NoError(t, err)
		require.Equal(t, v, f)
	}
}

func TestIPv4ForwardingAssignment(t *testing.T) {
	require.Equal(t, "net.ipv4.ip_forward=1", IPv4ForwardingAssignment(true))
	require.Equal(t, "net.ipv4.ip_forward=0", IPv4ForwardingAssignment(false))
}
