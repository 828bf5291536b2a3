package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix namespaces the environment variables, e.g. CONTACTS_STORE_BACKEND.
const EnvPrefix = "CONTACTS"

// parseEnv overlays Config with CONTACTS_* environment variables. Unset
// variables leave the current value untouched. Panics on malformed values,
// like the other loaders.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		panic(err)
	}
}
