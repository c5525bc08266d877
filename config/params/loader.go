package params

import (
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ByName returns the named preset config.
func ByName(name string) (*ServiceConfig, error) {
	switch strings.ToLower(name) {
	case MainnetName:
		return MainnetConfig(), nil
	case SepoliaName:
		return SepoliaConfig(), nil
	case DevName:
		return DevConfig(), nil
	default:
		return nil, errors.Errorf("unknown config name %q", name)
	}
}

// ConfigFromYAML unmarshals a config from yaml. Fields not present in the
// document keep their mainnet defaults.
func ConfigFromYAML(b []byte) (*ServiceConfig, error) {
	cfg := MainnetConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal config yaml")
	}
	return cfg, nil
}

// LoadConfigFile reads a yaml config from the given filesystem.
func LoadConfigFile(fsys afero.Fs, path string) (*ServiceConfig, error) {
	b, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config file %s", path)
	}
	return ConfigFromYAML(b)
}
