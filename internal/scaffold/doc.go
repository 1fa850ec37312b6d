// Package scaffold generates new script-type providers from embedded
// templates. It powers the "modforge new" command, producing a provider
// directory with a scripttype.yaml manifest, a README, and for scripted
// providers an identify entry point that reads the archive listing on stdin.
package scaffold
