// Package cli defines the Cobra command tree for the modforge CLI. Each file
// in this package registers one top-level command (types, detect, requires,
// etc.) with the root command. Command implementations delegate to internal
// packages for discovery and matching and only handle flag parsing and output.
package cli
