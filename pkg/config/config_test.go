package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCommands(t *testing.T) {
	cmds, err := Default().Commands()
	require.NoError(t, err)

	require.Equal(t, []string{"sudo"}, cmds.Privilege)
	require.Equal(t, []string{"apt", "install"}, cmds.PackageManager)
	require.Equal(t, []string{"iptables"}, cmds.Packages)
	require.Equal(t, []string{"sysctl"}, cmds.Sysctl)
	require.Equal(t, []string{"iptables"}, cmds.IPTables)
}

func TestParse(t *testing.T) {
	t.Run("empty document keeps defaults", func(t *testing.T) {
		cfg, err := Parse(strings.NewReader("\n"))
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("partial document", func(t *testing.T) {
		cfg, err := Parse(strings.NewReader(`
package_manager: "apt-get install -y"
packages: [iptables, conntrack]
`))
		require.NoError(t, err)
		require.Equal(t, "sudo", cfg.Privilege)
		require.Equal(t, []string{"iptables", "conntrack"}, cfg.Packages)

		cmds, err := cfg.Commands()
		require.NoError(t, err)
		require.Equal(t, []string{"apt-get", "install", "-y"}, cmds.PackageManager)
	})

	t.Run("empty privilege runs commands directly", func(t *testing.T) {
		cfg, err := Parse(strings.NewReader(`privilege: ""`))
		require.NoError(t, err)

		cmds, err := cfg.Commands()
		require.NoError(t, err)
		require.Empty(t, cmds.Privilege)
	})

	t.Run("quoted arguments", func(t *testing.T) {
		cfg, err := Parse(strings.NewReader(`privilege: "sudo -u 'root'"`))
		require.NoError(t, err)

		cmds, err := cfg.Commands()
		require.NoError(t, err)
		require.Equal(t, []string{"sudo", "-u", "root"}, cmds.Privilege)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`firewall: nft`))
		require.Error(t, err)
	})

	t.Run("no packages", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`packages: []`))
		require.Error(t, err)
	})

	t.Run("empty iptables command", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`iptables: ""`))
		require.Error(t, err)
	})

	t.Run("unterminated quote", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`sysctl: "sysctl 'broken"`))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "natroute.yaml")
		require.NoError(t, os.WriteFile(path, []byte("iptables: /usr/sbin/iptables\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "/usr/sbin/iptables", cfg.IPTables)
		require.Equal(t, "sysctl", cfg.Sysctl)
	})
}
