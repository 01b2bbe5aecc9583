// Package config loads the description of the host commands natroute invokes.
//
// Every field is optional. A missing file or a missing key falls back to the
// defaults, which run `sudo apt install iptables`, `sudo sysctl` and
// `sudo iptables`.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	defaultPrivilege      = "sudo"
	defaultPackageManager = "apt install"
	defaultSysctl         = "sysctl"
	defaultIPTables       = "iptables"
	defaultPackage        = "iptables"
)

// Config is the on disk (yaml) configuration
type Config struct {
	// Privilege is prepended to every command. An empty value runs the
	// commands directly, which requires natroute itself to run as root
	Privilege string `yaml:"privilege"`
	// PackageManager is the install command, the packages are appended to it
	PackageManager string   `yaml:"package_manager"`
	Packages       []string `yaml:"packages"`
	Sysctl         string   `yaml:"sysctl"`
	IPTables       string   `yaml:"iptables"`
}

// Commands is the validated argv form of a Config
type Commands struct {
	Privilege      []string
	PackageManager []string
	Packages       []string
	Sysctl         []string
	IPTables       []string
}

// Default returns the configuration matching a debian like host
func Default() Config {
	return Config{
		Privilege:      defaultPrivilege,
		PackageManager: defaultPackageManager,
		Packages:       []string{defaultPackage},
		Sysctl:         defaultSysctl,
		IPTables:       defaultIPTables,
	}
}

// Load reads configuration from path. Keys not present in the file keep
// their default value.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to open config file '%s'", path)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid config file '%s'", path)
	}

	return cfg, nil
}

// Parse decodes a yaml document on top of the default configuration
func Parse(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config")
	}

	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	if _, err := cfg.Commands(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Commands splits the configured command lines into argv slices
func (c Config) Commands() (Commands, error) {
	var (
		cmds Commands
		err  error
	)

	// privilege is the only command that is allowed to be empty
	if cmds.Privilege, err = shlex.Split(c.Privilege); err != nil {
		return cmds, errors.Wrap(err, "invalid privilege command")
	}

	for _, field := range []struct {
		name  string
		value string
		argv  *[]string
	}{
		{"package_manager", c.PackageManager, &cmds.PackageManager},
		{"sysctl", c.Sysctl, &cmds.Sysctl},
		{"iptables", c.IPTables, &cmds.IPTables},
	} {
		argv, err := shlex.Split(field.value)
		if err != nil {
			return cmds, errors.Wrapf(err, "invalid %s command", field.name)
		}
		if len(argv) == 0 {
			return cmds, errors.Errorf("%s command is required", field.name)
		}
		*field.argv = argv
	}

	if len(c.Packages) == 0 {
		return cmds, errors.New("at least one package is required")
	}

	for _, pkg := range c.Packages {
		if len(pkg) == 0 {
			return cmds, errors.New("package name cannot be empty")
		}
	}

	cmds.Packages = append([]string(nil), c.Packages...)
	return cmds, nil
}
