// Package userdata manages the ~/.modforge/ directory: the user provider
// directory, the config file, links to providers under development, and the
// doctor checks that report on every provider source.
package userdata
