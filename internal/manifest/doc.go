// Package manifest handles parsing and validation of script-type provider
// manifests (scripttype.yaml). A manifest declares the type id, the archive
// root convention the type installs from, the filename patterns that
// identify it, and an optional external identify entry point. Manifests are
// validated against an embedded JSON Schema and checked for compatibility
// with the running host version.
package manifest
