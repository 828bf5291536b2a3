// Package config loads runtime configuration for the contact book CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. CONTACTS_* environment variables (envconfig).
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds. Keys that are absent keep their previous value:
//
//	{
//	  "store_backend": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "key_prefix": "contactbook:",
//	  "store_timeout": "3s"
//	}
package config
