// Package config manages user-level settings stored at ~/.modforge/config.yaml.
// It loads the file and MODFORGE_* environment overrides through Viper and
// exposes typed accessors for the discovery and logging keys.
package config
