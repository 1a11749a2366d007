package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// shellConfig is the static configuration file the shell reads before
// parsing flags, the way cognicore-io-korel's config.Loader loads its YAML
// settings. Flags override whatever the config file sets.
type shellConfig struct {
	Samples              int     `yaml:"samples"`
	ConvergenceThreshold float64 `yaml:"convergence_threshold"`
	Seed                 *int64  `yaml:"seed"`
	ExtensionPath        string  `yaml:"extension_path"`
	ModulePath           string  `yaml:"module_path"`
}

func defaultConfig() shellConfig {
	return shellConfig{Samples: 10000}
}

func loadConfig(path string) (shellConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
