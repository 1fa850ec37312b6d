// Package listing reads archive file listings: the member paths of a mod
// archive, without extracting anything.
//
// A listing comes from one of:
//   - a .zip archive (central directory names)
//   - a .tar.gz or .tgz archive (header names)
//   - a text file or stdin, one path per line, blank and # lines skipped
package listing
