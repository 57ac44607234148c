// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// envPrefix is the environment-variable prefix config layering accepts,
// e.g. IAMCHECK_ACTION overrides the "action" key.
const envPrefix = "IAMCHECK_"

// checkConfig is the resolved set of inputs to one evaluation, layered
// from (lowest to highest precedence) built-in defaults, an optional YAML
// file given by --config, the IAMCHECK_ environment prefix, and command
// flags.
type checkConfig struct {
	PolicyPath             string `koanf:"policy"`
	ContextPath            string `koanf:"context"`
	Action                 string `koanf:"action"`
	Resource               string `koanf:"resource"`
	PrincipalAWS           string `koanf:"principal-aws"`
	PrincipalFederated     string `koanf:"principal-federated"`
	PrincipalService       string `koanf:"principal-service"`
	PrincipalCanonicalUser string `koanf:"principal-canonical-user"`
	JSONOutput             bool   `koanf:"json"`
}

// loadConfig layers configuration as described above and unmarshals it
// into a checkConfig.
func loadConfig(flags *pflag.FlagSet) (checkConfig, error) {
	k := koanf.New(".")

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return checkConfig{}, err
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", "-")
	}), nil); err != nil {
		return checkConfig{}, err
	}

	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return checkConfig{}, err
	}

	var cfg checkConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return checkConfig{}, err
	}
	return cfg, nil
}
