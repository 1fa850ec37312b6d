// Package registry discovers script types. It scans provider sources (the
// directory next to the executable and the user's provider directory) for
// scripttype.yaml manifests, loads each provider behind the ScriptType
// interface, and returns an ordered, immutable Registry snapshot. Providers
// that fail to load are skipped and reported as diagnostics; only failures
// to read a required source abort discovery.
package registry
