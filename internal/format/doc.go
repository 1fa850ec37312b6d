// Package format decides which script type governs a mod archive and which
// archive entries that script type needs before installation can run.
//
// Script types are tried in registry order. The first type with at least
// one filename pattern that matches an entry under its root folder wins
// outright; every pattern of that winning type is still evaluated so all of
// its required files are collected. Later types are never consulted, even
// if they would match more entries.
package format
